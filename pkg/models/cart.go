package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string     `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Items     []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CartID    string    `gorm:"type:varchar(36);not null;index" json:"cart_id"`
	ProductID string    `gorm:"type:varchar(36);not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// LineItem is a cart item joined with the product's current name and price.
type LineItem struct {
	ItemID      string          `json:"item_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
