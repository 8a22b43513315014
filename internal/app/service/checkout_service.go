package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"github.com/mirakh/gallery-backend/pkg/util"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidCheckout     = errors.New("invalid checkout payload")
	ErrOrderNumberConflict = errors.New("could not allocate a unique order number")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
)

// orderNumberAttempts bounds the collision retry loop. Collisions on an
// 8-hex-digit space are vanishingly rare; hitting the bound means something
// is wrong with the generator, not bad luck.
const orderNumberAttempts = 5

// OrderNotifier receives committed orders for real-time fan-out. A nil
// notifier is valid and means no live feed is attached.
type OrderNotifier interface {
	BroadcastOrder(order *model.Order)
}

type CheckoutItemInput struct {
	PaintingID uint    `json:"painting_id" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required"`
	Price      float64 `json:"price"`
}

// CheckoutInput carries the client-submitted order snapshot. Totals and unit
// prices are stored as received; the storefront computes them and the server
// does not re-derive them.
type CheckoutInput struct {
	CustomerName    string              `json:"customer_name" binding:"required"`
	CustomerEmail   string              `json:"customer_email" binding:"required,email"`
	CustomerPhone   string              `json:"customer_phone"`
	ShippingAddress string              `json:"shipping_address"`
	TotalAmount     float64             `json:"total_amount"`
	Items           []CheckoutItemInput `json:"items" binding:"required"`
}

type CheckoutService interface {
	PlaceOrder(input CheckoutInput) (*model.Order, error)
	GetOrderByNumber(orderNumber string) (*model.Order, error)
	ListOrders() ([]model.Order, error)
	GetRecentOrders(limit int) ([]model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
	ExportOrdersXLSX() (*bytes.Buffer, error)
}

type checkoutService struct {
	orderRepo repository.OrderRepository
	mailer    Mailer
	notifier  OrderNotifier
	db        *gorm.DB

	// overridable for collision testing
	genOrderNumber func() string
}

func NewCheckoutService(orderRepo repository.OrderRepository, mailer Mailer, notifier OrderNotifier, db *gorm.DB) CheckoutService {
	return &checkoutService{
		orderRepo:      orderRepo,
		mailer:         mailer,
		notifier:       notifier,
		db:             db,
		genOrderNumber: util.NewOrderNumber,
	}
}

func (s *checkoutService) PlaceOrder(input CheckoutInput) (*model.Order, error) {
	logger.Info("Placing order", map[string]interface{}{
		"customer_email": input.CustomerEmail,
		"item_count":     len(input.Items),
	})

	if err := validateCheckout(input); err != nil {
		logger.Warn("Checkout payload rejected", map[string]interface{}{
			"customer_email": input.CustomerEmail,
			"reason":         err.Error(),
		})
		return nil, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during checkout, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"customer_email": input.CustomerEmail,
			})
		}
	}()

	orderNumber, err := s.allocateOrderNumber(tx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	order := &model.Order{
		OrderNumber:     orderNumber,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   strings.TrimSpace(input.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		TotalAmount:     input.TotalAmount,
		Status:          model.OrderStatusPending,
	}
	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"order_number": orderNumber,
		})
		return nil, err
	}

	orderItems := make([]model.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		orderItems = append(orderItems, model.OrderItem{
			OrderID:    order.ID,
			PaintingID: item.PaintingID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}
	if err := tx.Create(&orderItems).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order items, rolling back", err, map[string]interface{}{
			"order_number": orderNumber,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"order_number": orderNumber,
		})
		return nil, err
	}

	logger.Info("Order placed successfully", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"item_count":   len(orderItems),
	})

	// Reload with items and paintings so notifications carry full detail.
	// The order itself is already committed; everything past this point is
	// best-effort.
	placed, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		logger.Error("Failed to reload order for notifications", err, map[string]interface{}{
			"order_id": order.ID,
		})
		placed = order
	}
	s.notify(placed)

	return placed, nil
}

func validateCheckout(input CheckoutInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return ErrInvalidCheckout
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		return ErrInvalidCheckout
	}
	if len(input.Items) == 0 {
		return ErrInvalidCheckout
	}
	for _, item := range input.Items {
		if item.PaintingID == 0 || item.Quantity <= 0 || item.Price < 0 {
			return ErrInvalidCheckout
		}
	}
	if input.TotalAmount < 0 {
		return ErrInvalidCheckout
	}
	return nil
}

// allocateOrderNumber draws candidate numbers until one is unused. The
// existence check runs on the checkout transaction so a concurrent insert of
// the same number surfaces before commit.
func (s *checkoutService) allocateOrderNumber(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		candidate := s.genOrderNumber()

		var count int64
		if err := tx.Model(&model.Order{}).Where("order_number = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}

		logger.Warn("Order number collision, regenerating", map[string]interface{}{
			"order_number": candidate,
			"attempt":      attempt + 1,
		})
	}
	return "", ErrOrderNumberConflict
}

func (s *checkoutService) notify(order *model.Order) {
	if s.mailer != nil {
		if err := s.mailer.SendOrderConfirmation(order); err != nil {
			logger.Error("Failed to send order confirmation email", err, map[string]interface{}{
				"order_number": order.OrderNumber,
			})
		}
		if err := s.mailer.SendAdminOrderAlert(order); err != nil {
			logger.Error("Failed to send admin order alert", err, map[string]interface{}{
				"order_number": order.OrderNumber,
			})
		}
	}
	if s.notifier != nil {
		s.notifier.BroadcastOrder(order)
	}
}

func (s *checkoutService) GetOrderByNumber(orderNumber string) (*model.Order, error) {
	order, err := s.orderRepo.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found", map[string]interface{}{
				"order_number": orderNumber,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_number": orderNumber,
		})
		return nil, err
	}
	return order, nil
}

func (s *checkoutService) ListOrders() ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list orders", err, nil)
		return nil, err
	}
	return orders, nil
}

func (s *checkoutService) GetRecentOrders(limit int) ([]model.Order, error) {
	orders, err := s.orderRepo.FindRecent(limit)
	if err != nil {
		logger.Error("Failed to fetch recent orders", err, nil)
		return nil, err
	}
	return orders, nil
}

func (s *checkoutService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	if strings.TrimSpace(string(status)) == "" {
		return ErrInvalidOrderStatus
	}

	logger.Info("Updating order status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}
	return nil
}

func (s *checkoutService) ExportOrdersXLSX() (*bytes.Buffer, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch orders for export", err, nil)
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"Order Number", "Customer", "Email", "Phone", "Shipping Address", "Total", "Status", "Items", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, order := range orders {
		items := make([]string, 0, len(order.OrderItems))
		for _, item := range order.OrderItems {
			title := item.Painting.Title
			if title == "" {
				title = fmt.Sprintf("painting #%d", item.PaintingID)
			}
			items = append(items, fmt.Sprintf("%s x%d", title, item.Quantity))
		}

		values := []interface{}{
			order.OrderNumber,
			order.CustomerName,
			order.CustomerEmail,
			order.CustomerPhone,
			order.ShippingAddress,
			order.TotalAmount,
			string(order.Status),
			strings.Join(items, ", "),
			order.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to write orders export", err, nil)
		return nil, err
	}

	logger.Info("Orders exported", map[string]interface{}{
		"count": len(orders),
	})
	return buf, nil
}
