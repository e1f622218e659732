package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name          string          `gorm:"type:varchar(200);not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	CategoryID    *string         `gorm:"type:varchar(36);index" json:"category_id"`
	BrandID       *string         `gorm:"type:varchar(36);index" json:"brand_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	CartItems []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
