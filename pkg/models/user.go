package models

import (
	"time"
)

type User struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FirstName  string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName   string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"type:varchar(255);not null" json:"-"`
	Phone      string    `gorm:"type:varchar(20)" json:"phone"`
	Address    string    `gorm:"type:varchar(255)" json:"address"`
	City       string    `gorm:"type:varchar(100)" json:"city"`
	PostalCode string    `gorm:"type:varchar(20)" json:"postal_code"`
	Country    string    `gorm:"type:varchar(100)" json:"country"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Carts  []Cart  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Orders []Order `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

func (User) TableName() string {
	return "users"
}
