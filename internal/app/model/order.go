package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is created atomically with its items at checkout. TotalAmount is the
// client-submitted total, stored verbatim; see OrderItem.Price for the
// per-unit snapshot.
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	OrderNumber     string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"order_number"`
	CustomerName    string         `gorm:"not null" json:"customer_name"`
	CustomerEmail   string         `gorm:"not null" json:"customer_email"`
	CustomerPhone   string         `gorm:"type:varchar(50)" json:"customer_phone"`
	ShippingAddress string         `gorm:"type:text" json:"shipping_address"`
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`
	Status          OrderStatus    `gorm:"type:varchar(50);default:'pending'" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem records the quantity and unit price of one painting at checkout
// time. Price is a snapshot, intentionally decoupled from the live painting.
type OrderItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	PaintingID uint      `gorm:"not null;index" json:"painting_id"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	Price      float64   `gorm:"not null" json:"price"`
	CreatedAt  time.Time `json:"created_at"`

	Order    Order    `gorm:"foreignKey:OrderID" json:"-"`
	Painting Painting `gorm:"foreignKey:PaintingID" json:"painting,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
