package repository

import (
	"context"

	"ai-calling-agent/internal/domain/entity"
)

type FeedbackRepository interface {
	List(ctx context.Context, filter entity.FeedbackFilter) ([]entity.Feedback, error)
	FindByID(ctx context.Context, id entity.FeedbackID) (*entity.Feedback, error)
	Create(ctx context.Context, feedback *entity.Feedback) error
	Delete(ctx context.Context, id entity.FeedbackID) (bool, error)
}
