package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	CompanyID    string          `json:"company_id" validate:"required"`
	Item         string          `json:"item"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Currency     string          `json:"currency" validate:"omitempty,len=3"`
	CustomerName string          `json:"customer_name"`
	UserEmail    string          `json:"user_email" validate:"omitempty,email"`
	Status       string          `json:"status" validate:"omitempty,oneof=completed pending cancelled"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed pending cancelled"`
}

type OrderQuery struct {
	CompanyID string
	UserEmail string
}

// OrderResponse renders money as fixed two-decimal strings.
type OrderResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	Item         string    `json:"item"`
	Quantity     int       `json:"quantity"`
	UnitPrice    string    `json:"unit_price"`
	TotalPrice   string    `json:"total_price"`
	Currency     string    `json:"currency"`
	CustomerName string    `json:"customer_name,omitempty"`
	UserEmail    string    `json:"user_email,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
