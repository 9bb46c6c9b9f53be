package repository

import (
	"context"
	"time"

	"ai-calling-agent/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id entity.UserID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	TouchLastLogin(ctx context.Context, id entity.UserID, at time.Time) error
}
