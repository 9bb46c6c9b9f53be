package mongodb

import (
	"context"
	"time"

	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type feedbackStore struct {
	c *mongo.Collection
}

func NewFeedbackStore(db *mongo.Database) domainRepo.FeedbackRepository {
	return &feedbackStore{c: db.Collection(feedbackCollection)}
}

func (s *feedbackStore) List(ctx context.Context, filter entity.FeedbackFilter) ([]entity.Feedback, error) {
	q := bson.M{}
	if filter.EntityID != "" {
		q["entity_id"] = filter.EntityID
	}
	if filter.UserEmail != "" {
		q["user_email"] = filter.UserEmail
	}
	return findAll[entity.Feedback](ctx, s.c, q, bson.D{{Key: "created_at", Value: -1}})
}

func (s *feedbackStore) FindByID(ctx context.Context, id entity.FeedbackID) (*entity.Feedback, error) {
	var feedback entity.Feedback
	if err := findOne(ctx, s.c, bson.M{"_id": id}, &feedback, "feedback", id.String()); err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (s *feedbackStore) Create(ctx context.Context, feedback *entity.Feedback) error {
	feedback.ApplyDefaults()
	if err := feedback.Validate(); err != nil {
		return err
	}
	if feedback.ID == "" {
		feedback.ID = entity.FeedbackID(newID())
	}
	feedback.CreatedAt = time.Now().UTC()
	return insert(ctx, s.c, feedback, "feedback", "id", feedback.ID.String())
}

func (s *feedbackStore) Delete(ctx context.Context, id entity.FeedbackID) (bool, error) {
	return deleteByID(ctx, s.c, id.String())
}
