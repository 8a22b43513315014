package model

import (
	"time"

	"gorm.io/gorm"
)

type Exhibition struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Venue       string         `json:"venue"`
	DateLabel   string         `gorm:"column:date_label" json:"date"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `json:"image_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Exhibition) TableName() string {
	return "exhibitions"
}
