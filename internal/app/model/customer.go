package model

import (
	"time"

	"gorm.io/gorm"
)

// Customer is created by the Google login flow. Customers are optional:
// the cart, wishlist and checkout paths are keyed by the anonymous session
// and never require an account.
type Customer struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"type:varchar(200);uniqueIndex;not null" json:"email"`
	Picture   string         `json:"picture"`
	Provider  string         `gorm:"type:varchar(50)" json:"provider"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}
