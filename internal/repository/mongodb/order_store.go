package mongodb

import (
	"context"
	"strings"
	"time"

	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type orderStore struct {
	c *mongo.Collection
}

func NewOrderStore(db *mongo.Database) domainRepo.OrderRepository {
	return &orderStore{c: db.Collection(ordersCollection)}
}

func (s *orderStore) List(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error) {
	q := bson.M{}
	if filter.CompanyID != "" {
		q["company_id"] = filter.CompanyID
	}
	if filter.UserEmail != "" {
		q["user_email"] = filter.UserEmail
	}
	return findAll[entity.Order](ctx, s.c, q, bson.D{{Key: "created_at", Value: -1}})
}

func (s *orderStore) FindByID(ctx context.Context, id entity.OrderID) (*entity.Order, error) {
	var order entity.Order
	if err := findOne(ctx, s.c, bson.M{"_id": id}, &order, "order", id.String()); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderStore) FindByIDFold(ctx context.Context, id string) (*entity.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.MissingField("order_id")
	}
	var order entity.Order
	if err := findOne(ctx, s.c, bson.M{"_id": equalFold(id)}, &order, "order", id); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderStore) Create(ctx context.Context, order *entity.Order) error {
	order.ApplyDefaults()
	if err := order.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	return insert(ctx, s.c, order, "order", "id", order.ID.String())
}

func (s *orderStore) UpdateStatus(ctx context.Context, id entity.OrderID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.Valid() {
		return nil, apperr.Invalid("status", "must be one of completed, pending, cancelled")
	}
	set := bson.M{"status": status, "updated_at": time.Now().UTC()}
	if err := setFields(ctx, s.c, id.String(), set, "order"); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *orderStore) Delete(ctx context.Context, id entity.OrderID) (bool, error) {
	return deleteByID(ctx, s.c, id.String())
}
