package entity

import (
	"strings"
	"time"

	"ai-calling-agent/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCancelled OrderStatus = "cancelled"
)

const (
	DefaultOrderItem     = "Product"
	DefaultOrderQuantity = 1
	DefaultCurrency      = "INR"
)

// Order is identified by a human readable id (ORD-XXXXXX), unique across tenants.
type Order struct {
	ID           OrderID         `gorm:"type:varchar(32);primaryKey" bson:"_id" json:"id"`
	CompanyID    CompanyID       `gorm:"type:varchar(64);index" bson:"company_id" json:"company_id"`
	Item         string          `gorm:"type:varchar(255);not null" bson:"item" json:"item"`
	Quantity     int             `gorm:"not null" bson:"quantity" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2)" bson:"unit_price" json:"unit_price"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(12,2)" bson:"total_price" json:"total_price"`
	Currency     string          `gorm:"type:varchar(8)" bson:"currency" json:"currency"`
	CustomerName string          `gorm:"type:varchar(255)" bson:"customer_name" json:"customer_name,omitempty"`
	UserEmail    string          `gorm:"type:varchar(255);index" bson:"user_email" json:"user_email,omitempty"`
	Status       OrderStatus     `gorm:"type:varchar(20);not null;index" bson:"status" json:"status"`
	CreatedAt    time.Time       `gorm:"autoCreateTime;index" bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" bson:"updated_at" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// ApplyDefaults fills the fields a caller may omit and derives the total.
func (o *Order) ApplyDefaults() {
	if o.ID == "" {
		o.ID = NewOrderID()
	}
	if strings.TrimSpace(o.Item) == "" {
		o.Item = DefaultOrderItem
	}
	if o.Quantity == 0 {
		o.Quantity = DefaultOrderQuantity
	}
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	if o.TotalPrice.IsZero() && !o.UnitPrice.IsZero() {
		o.TotalPrice = o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
	}
}

func (o *Order) Validate() error {
	if err := ValidateRef("id", string(o.ID)); err != nil {
		return err
	}
	if err := ValidateRef("company_id", string(o.CompanyID)); err != nil {
		return err
	}
	if o.Quantity < 1 {
		return apperr.Invalid("quantity", "must be at least 1")
	}
	if o.UnitPrice.IsNegative() || o.TotalPrice.IsNegative() {
		return apperr.Invalid("price", "must not be negative")
	}
	if !o.Status.Valid() {
		return apperr.Invalid("status", "must be one of completed, pending, cancelled")
	}
	return nil
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusPending, OrderStatusCancelled:
		return true
	}
	return false
}
