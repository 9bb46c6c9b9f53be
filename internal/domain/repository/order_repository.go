package repository

import (
	"context"

	"ai-calling-agent/internal/domain/entity"
)

type OrderRepository interface {
	List(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error)
	FindByID(ctx context.Context, id entity.OrderID) (*entity.Order, error)
	// FindByIDFold matches the order id case-insensitively.
	FindByIDFold(ctx context.Context, id string) (*entity.Order, error)
	Create(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id entity.OrderID, status entity.OrderStatus) (*entity.Order, error)
	Delete(ctx context.Context, id entity.OrderID) (bool, error)
}
