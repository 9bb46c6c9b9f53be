package mongodb

import (
	"context"
	"time"

	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userStore struct {
	c *mongo.Collection
}

func NewUserStore(db *mongo.Database) domainRepo.UserRepository {
	return &userStore{c: db.Collection(usersCollection)}
}

func (s *userStore) Create(ctx context.Context, user *entity.User) error {
	user.ApplyDefaults()
	if err := user.Validate(); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = entity.UserID(newID())
	}
	user.CreatedAt = time.Now().UTC()
	return insert(ctx, s.c, user, "user", "email", user.Email)
}

func (s *userStore) FindByID(ctx context.Context, id entity.UserID) (*entity.User, error) {
	var user entity.User
	if err := findOne(ctx, s.c, bson.M{"_id": id}, &user, "user", id.String()); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail relies on emails being stored normalized.
func (s *userStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	var user entity.User
	if err := findOne(ctx, s.c, bson.M{"email": email}, &user, "user", email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userStore) TouchLastLogin(ctx context.Context, id entity.UserID, at time.Time) error {
	return setFields(ctx, s.c, id.String(), bson.M{"last_login": at.UTC()}, "user")
}
