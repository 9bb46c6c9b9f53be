package repository

import (
	"context"
	"time"

	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	user.ApplyDefaults()
	if err := user.Validate(); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = entity.UserID(newID())
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return apperr.Duplicate("user", "email", user.Email)
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id entity.UserID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err, "user", id.String())
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err, "user", email)
	}
	return &user, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id entity.UserID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("last_login", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("user", id.String())
	}
	return nil
}
