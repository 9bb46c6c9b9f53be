package usecase

import (
	"context"

	"ai-calling-agent/internal/agent/tools"
	"ai-calling-agent/internal/converter"
	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	"ai-calling-agent/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type OrderUsecase interface {
	Create(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	List(ctx context.Context, query dto.OrderQuery) ([]dto.OrderResponse, error)
	// Trace looks an order up by id, ignoring case.
	Trace(ctx context.Context, id string) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
	Delete(ctx context.Context, id string) error
}

type orderUsecase struct {
	log       *logrus.Logger
	orderRepo repository.OrderRepository
	guard     GuardedWriter
}

func NewOrderUsecase(log *logrus.Logger, orderRepo repository.OrderRepository, guard GuardedWriter) OrderUsecase {
	return &orderUsecase{
		log:       log,
		orderRepo: orderRepo,
		guard:     guard,
	}
}

func (u *orderUsecase) Create(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	order := converter.OrderFromRequest(req)
	order.ApplyDefaults()
	if err := order.Validate(); err != nil {
		return nil, err
	}

	created, err := guardedCreate(ctx, u.guard, u.log, tools.OrderKey(order), "orders", order,
		func() (string, error) {
			if err := u.orderRepo.Create(ctx, order); err != nil {
				return "", err
			}
			return order.ID.String(), nil
		},
		func(id string) { order.ID = entity.OrderID(id) },
		func(id string) (*entity.Order, error) { return u.orderRepo.FindByID(ctx, entity.OrderID(id)) },
	)
	if err != nil {
		u.log.Warnf("Failed to create order: %+v", err)
		return nil, err
	}
	return converter.OrderToResponse(created), nil
}

func (u *orderUsecase) List(ctx context.Context, query dto.OrderQuery) ([]dto.OrderResponse, error) {
	orders, err := u.orderRepo.List(ctx, entity.OrderFilter{
		CompanyID: entity.CompanyID(query.CompanyID),
		UserEmail: entity.NormalizeEmail(query.UserEmail),
	})
	if err != nil {
		u.log.Warnf("Failed to list orders: %+v", err)
		return nil, err
	}
	return converter.OrdersToResponse(orders), nil
}

func (u *orderUsecase) Trace(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := u.orderRepo.FindByIDFold(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.OrderToResponse(order), nil
}

func (u *orderUsecase) UpdateStatus(ctx context.Context, id string, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	status := entity.OrderStatus(req.Status)
	if !status.Valid() {
		return nil, apperr.Invalid("status", "must be one of completed, pending, cancelled")
	}

	current, err := u.orderRepo.FindByIDFold(ctx, id)
	if err != nil {
		return nil, err
	}

	order, err := u.orderRepo.UpdateStatus(ctx, current.ID, status)
	if err != nil {
		u.log.Warnf("Failed to update order %s status: %+v", current.ID, err)
		return nil, err
	}
	return converter.OrderToResponse(order), nil
}

func (u *orderUsecase) Delete(ctx context.Context, id string) error {
	current, err := u.orderRepo.FindByIDFold(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := u.orderRepo.Delete(ctx, current.ID)
	if err != nil {
		u.log.Warnf("Failed to delete order %s: %+v", current.ID, err)
		return err
	}
	if !deleted {
		return apperr.NotFound("order", id)
	}
	return nil
}
