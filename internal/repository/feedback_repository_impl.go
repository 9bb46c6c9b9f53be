package repository

import (
	"context"

	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"gorm.io/gorm"
)

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) domainRepo.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) List(ctx context.Context, filter entity.FeedbackFilter) ([]entity.Feedback, error) {
	var feedback []entity.Feedback
	query := r.db.WithContext(ctx)
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.UserEmail != "" {
		query = query.Where("user_email = ?", filter.UserEmail)
	}
	if err := query.Order("created_at DESC").Find(&feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

func (r *feedbackRepository) FindByID(ctx context.Context, id entity.FeedbackID) (*entity.Feedback, error) {
	var feedback entity.Feedback
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&feedback).Error; err != nil {
		return nil, notFound(err, "feedback", id.String())
	}
	return &feedback, nil
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	feedback.ApplyDefaults()
	if err := feedback.Validate(); err != nil {
		return err
	}
	if feedback.ID == "" {
		feedback.ID = entity.FeedbackID(newID())
	}
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) Delete(ctx context.Context, id entity.FeedbackID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Feedback{})
	return result.RowsAffected > 0, result.Error
}
