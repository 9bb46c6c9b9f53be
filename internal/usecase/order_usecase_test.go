package usecase

import (
	"context"
	"strings"
	"testing"

	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderUsecase_CreateTraceUpdateDelete(t *testing.T) {
	ctx := context.Background()
	uc := NewOrderUsecase(quietLogger(), newTestStore(t).Orders, newTestGuard(t))

	created, err := uc.Create(ctx, &dto.CreateOrderRequest{
		CompanyID: "spice-route",
		Item:      "Paneer Tikka",
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("249.50"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, "ORD-"))
	assert.Equal(t, "499.00", created.TotalPrice)
	assert.Equal(t, "INR", created.Currency)
	assert.Equal(t, "pending", created.Status)

	traced, err := uc.Trace(ctx, strings.ToLower(created.ID))
	require.NoError(t, err)
	assert.Equal(t, created.ID, traced.ID)

	updated, err := uc.UpdateStatus(ctx, strings.ToLower(created.ID), &dto.UpdateOrderStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)

	listed, err := uc.List(ctx, dto.OrderQuery{CompanyID: "spice-route"})
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.Trace(ctx, created.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), apperr.ErrNotFound)
}

func TestOrderUsecase_CreateRequiresCompany(t *testing.T) {
	uc := NewOrderUsecase(quietLogger(), newTestStore(t).Orders, nil)

	_, err := uc.Create(context.Background(), &dto.CreateOrderRequest{Item: "Tea"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestOrderUsecase_DoubleSubmitWithinWindow(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	uc := NewOrderUsecase(quietLogger(), store.Orders, newTestGuard(t))
	req := &dto.CreateOrderRequest{CompanyID: "spice-route", Item: "Masala Dosa", Quantity: 1, UserEmail: "Asha@Example.com"}

	first, err := uc.Create(ctx, req)
	require.NoError(t, err)
	second, err := uc.Create(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	orders, err := store.Orders.List(ctx, entity.OrderFilter{CompanyID: "spice-route"})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
