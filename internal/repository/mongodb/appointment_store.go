package mongodb

import (
	"context"
	"time"

	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type appointmentStore struct {
	c *mongo.Collection
}

func NewAppointmentStore(db *mongo.Database) domainRepo.AppointmentRepository {
	return &appointmentStore{c: db.Collection(appointmentsCollection)}
}

func (s *appointmentStore) List(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	q := bson.M{}
	if filter.EntityID != "" {
		q["entity_id"] = filter.EntityID
	}
	if filter.UserEmail != "" {
		q["user_email"] = filter.UserEmail
	}
	if filter.Date != "" {
		q["date"] = filter.Date
	}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	return findAll[entity.Appointment](ctx, s.c, q, bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
}

func (s *appointmentStore) FindByID(ctx context.Context, id entity.AppointmentID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	if err := findOne(ctx, s.c, bson.M{"_id": id}, &appointment, "appointment", id.String()); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (s *appointmentStore) Create(ctx context.Context, appointment *entity.Appointment) error {
	appointment.ApplyDefaults()
	if err := appointment.Validate(); err != nil {
		return err
	}
	if appointment.ID == "" {
		appointment.ID = entity.AppointmentID(newID())
	}
	appointment.CreatedAt = time.Now().UTC()
	return insert(ctx, s.c, appointment, "appointment", "id", appointment.ID.String())
}

func (s *appointmentStore) UpdateStatus(ctx context.Context, id entity.AppointmentID, status entity.AppointmentStatus) (*entity.Appointment, error) {
	if !status.Valid() {
		return nil, apperr.Invalid("status", "must be one of scheduled, completed, cancelled")
	}
	if err := setFields(ctx, s.c, id.String(), bson.M{"status": status}, "appointment"); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *appointmentStore) Delete(ctx context.Context, id entity.AppointmentID) (bool, error) {
	return deleteByID(ctx, s.c, id.String())
}
