package mongodb

import (
	"context"
	"fmt"

	domainRepo "ai-calling-agent/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewStore builds the document Entity Store over one database.
func NewStore(db *mongo.Database) *domainRepo.Store {
	return &domainRepo.Store{
		Companies:        NewCompanyStore(db),
		Doctors:          NewDoctorStore(db),
		Vacancies:        NewVacancyStore(db),
		Orders:           NewOrderStore(db),
		Appointments:     NewAppointmentStore(db),
		Feedback:         NewFeedbackStore(db),
		Users:            NewUserStore(db),
		ConversationLogs: NewConversationLogStore(db),
	}
}

// EnsureIndexes creates the indexes the relational schema declares, including
// the unique index on users.email.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		companiesCollection: {
			{Keys: bson.D{{Key: "industry", Value: 1}}},
		},
		doctorsCollection: {
			{Keys: bson.D{{Key: "hospital_id", Value: 1}, {Key: "is_available", Value: 1}}},
		},
		vacanciesCollection: {
			{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "company_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_email", Value: 1}}},
		},
		appointmentsCollection: {
			{Keys: bson.D{{Key: "entity_id", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}}},
			{Keys: bson.D{{Key: "user_email", Value: 1}}},
		},
		feedbackCollection: {
			{Keys: bson.D{{Key: "entity_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		conversationLogsCollection: {
			{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "created_at", Value: 1}}},
			{Keys: bson.D{{Key: "company_id", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
