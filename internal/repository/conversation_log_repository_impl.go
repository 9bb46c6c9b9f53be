package repository

import (
	"context"

	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"gorm.io/gorm"
)

type conversationLogRepository struct {
	db *gorm.DB
}

func NewConversationLogRepository(db *gorm.DB) domainRepo.ConversationLogRepository {
	return &conversationLogRepository{db: db}
}

func (r *conversationLogRepository) List(ctx context.Context, filter entity.ConversationLogFilter) ([]entity.ConversationLog, error) {
	var logs []entity.ConversationLog
	query := r.db.WithContext(ctx)
	if filter.CompanyID != "" {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.SessionID != "" {
		query = query.Where("session_id = ?", filter.SessionID)
	}
	if err := query.Order("created_at ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *conversationLogRepository) Create(ctx context.Context, log *entity.ConversationLog) error {
	if err := log.Validate(); err != nil {
		return err
	}
	if log.ID == "" {
		log.ID = entity.LogID(newID())
	}
	return r.db.WithContext(ctx).Create(log).Error
}
