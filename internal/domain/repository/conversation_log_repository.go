package repository

import (
	"context"

	"ai-calling-agent/internal/domain/entity"
)

type ConversationLogRepository interface {
	List(ctx context.Context, filter entity.ConversationLogFilter) ([]entity.ConversationLog, error)
	Create(ctx context.Context, log *entity.ConversationLog) error
}
