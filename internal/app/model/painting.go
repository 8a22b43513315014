package model

import (
	"time"

	"gorm.io/gorm"
)

type PaintingCategory string

const (
	CategoryAbstract     PaintingCategory = "Abstract"
	CategoryLandscape    PaintingCategory = "Landscape"
	CategoryPortrait     PaintingCategory = "Portrait"
	CategoryDrawings     PaintingCategory = "Drawings"
	CategorySemiAbstract PaintingCategory = "Semi-abstract"
)

// Categories lists every valid painting category.
func Categories() []PaintingCategory {
	return []PaintingCategory{
		CategoryAbstract,
		CategoryLandscape,
		CategoryPortrait,
		CategoryDrawings,
		CategorySemiAbstract,
	}
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c PaintingCategory) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

type Painting struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	Title       string           `gorm:"not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	Category    PaintingCategory `gorm:"type:varchar(100);not null" json:"category"`
	Price       float64          `gorm:"not null" json:"price"`
	Size        string           `json:"size"`
	Medium      string           `json:"medium"`
	Year        int              `json:"year"`
	ImageURL    string           `json:"image_url"`
	Available   bool             `gorm:"default:true" json:"available"`
	Featured    bool             `gorm:"default:false" json:"featured"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	OrderItems    []OrderItem    `gorm:"foreignKey:PaintingID" json:"-"`
	CartItems     []CartItem     `gorm:"foreignKey:PaintingID" json:"-"`
	WishlistItems []WishlistItem `gorm:"foreignKey:PaintingID" json:"-"`
}

func (Painting) TableName() string {
	return "paintings"
}
