package converter

import (
	"testing"
	"time"

	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUserToResponse(t *testing.T) {
	assert.Nil(t, UserToResponse(nil))

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	got := UserToResponse(&entity.User{ID: "u1", Email: "a@b.com", Password: "hash", Role: entity.RoleAdmin, CreatedAt: created})

	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "admin", got.Role)
	assert.Equal(t, created, got.CreatedAt)
}

func TestDoctorFromRequest_DefaultsAvailable(t *testing.T) {
	off := false

	assert.True(t, DoctorFromRequest(&dto.CreateDoctorRequest{Name: "Dr. Rao"}).IsAvailable)
	assert.False(t, DoctorFromRequest(&dto.CreateDoctorRequest{Name: "Dr. Rao", IsAvailable: &off}).IsAvailable)
}

func TestOrderToResponse_FormatsMoney(t *testing.T) {
	order := &entity.Order{
		ID:         "ORD-00AA11",
		Quantity:   3,
		UnitPrice:  decimal.RequireFromString("12.5"),
		TotalPrice: decimal.RequireFromString("37.5"),
		Status:     entity.OrderStatusPending,
	}

	got := OrderToResponse(order)

	assert.Equal(t, "12.50", got.UnitPrice)
	assert.Equal(t, "37.50", got.TotalPrice)
	assert.Equal(t, "pending", got.Status)
	assert.Len(t, OrdersToResponse([]entity.Order{*order, *order}), 2)
}

func TestRequestConverters_NormalizeEmail(t *testing.T) {
	assert.Equal(t, "asha@example.com", OrderFromRequest(&dto.CreateOrderRequest{UserEmail: " Asha@Example.com"}).UserEmail)
	assert.Equal(t, "asha@example.com", AppointmentFromRequest(&dto.CreateAppointmentRequest{UserEmail: "ASHA@example.com"}).UserEmail)
	assert.Equal(t, "asha@example.com", FeedbackFromRequest(&dto.CreateFeedbackRequest{UserEmail: "Asha@example.COM"}).UserEmail)
}
