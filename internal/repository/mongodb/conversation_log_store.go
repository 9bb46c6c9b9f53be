package mongodb

import (
	"context"
	"time"

	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type conversationLogStore struct {
	c *mongo.Collection
}

func NewConversationLogStore(db *mongo.Database) domainRepo.ConversationLogRepository {
	return &conversationLogStore{c: db.Collection(conversationLogsCollection)}
}

func (s *conversationLogStore) List(ctx context.Context, filter entity.ConversationLogFilter) ([]entity.ConversationLog, error) {
	q := bson.M{}
	if filter.CompanyID != "" {
		q["company_id"] = filter.CompanyID
	}
	if filter.SessionID != "" {
		q["session_id"] = filter.SessionID
	}
	return findAll[entity.ConversationLog](ctx, s.c, q, bson.D{{Key: "created_at", Value: 1}})
}

func (s *conversationLogStore) Create(ctx context.Context, log *entity.ConversationLog) error {
	if err := log.Validate(); err != nil {
		return err
	}
	if log.ID == "" {
		log.ID = entity.LogID(newID())
	}
	log.CreatedAt = time.Now().UTC()
	return insert(ctx, s.c, log, "conversation log", "id", log.ID.String())
}
