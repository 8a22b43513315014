package model

import (
	"time"
)

// CartItem associates an anonymous browser session with a painting and a
// quantity. One row per (session, painting) pair; repeated adds merge into
// the existing row.
type CartItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	SessionID  string    `gorm:"type:varchar(100);not null;index;uniqueIndex:idx_cart_session_painting" json:"session_id"`
	PaintingID uint      `gorm:"not null;index;uniqueIndex:idx_cart_session_painting" json:"painting_id"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Painting Painting `gorm:"foreignKey:PaintingID" json:"painting,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
