package model

import (
	"time"
)

// WishlistItem is a presence-only (session, painting) membership. Unlike
// CartItem there is no quantity; toggling is idempotent both ways.
type WishlistItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	SessionID  string    `gorm:"type:varchar(100);not null;index;uniqueIndex:idx_wishlist_session_painting" json:"session_id"`
	PaintingID uint      `gorm:"not null;index;uniqueIndex:idx_wishlist_session_painting" json:"painting_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Painting Painting `gorm:"foreignKey:PaintingID" json:"painting,omitempty"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
