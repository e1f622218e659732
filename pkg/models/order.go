package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string          `gorm:"type:varchar(36);not null;index" json:"user_id"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// All lists every model in foreign-key dependency order.
func All() []interface{} {
	return []interface{}{&User{}, &Product{}, &Cart{}, &CartItem{}, &Order{}}
}
