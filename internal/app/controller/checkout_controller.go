package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/service"
	"github.com/mirakh/gallery-backend/internal/middleware"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
	cartService     service.CartService
}

func NewCheckoutController(checkoutService service.CheckoutService, cartService service.CartService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
		cartService:     cartService,
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PlaceOrder creates an order from the submitted snapshot and clears the
// session's cart on success
// POST /api/v1/checkout
func (ctrl *CheckoutController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var input service.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := ctrl.checkoutService.PlaceOrder(input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCheckout) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid checkout payload",
			})
			return
		}
		if errors.Is(err, service.ErrOrderNumberConflict) {
			log.Error("Order number allocation exhausted", err, map[string]interface{}{
				"session_id": sessionID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to place order, please try again",
			})
			return
		}
		log.Error("Failed to place order", err, map[string]interface{}{
			"session_id": sessionID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to place order",
		})
		return
	}

	// The cart is presentation state at this point; a failed clear must not
	// fail a placed order.
	if sessionID != "" {
		if err := ctrl.cartService.ClearCart(sessionID); err != nil {
			log.Warn("Failed to clear cart after checkout", map[string]interface{}{
				"session_id":   sessionID,
				"order_number": order.OrderNumber,
			})
		}
	}

	log.Info("Order placed", map[string]interface{}{
		"session_id":   sessionID,
		"order_number": order.OrderNumber,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Order placed successfully",
		"order_number": order.OrderNumber,
		"order":        order,
	})
}

// GetOrder looks an order up by its public order number
// GET /api/v1/orders/:orderNumber
func (ctrl *CheckoutController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	orderNumber := c.Param("orderNumber")

	order, err := ctrl.checkoutService.GetOrderByNumber(orderNumber)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"order_number": orderNumber,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// ListOrders returns all orders, newest first (admin)
// GET /api/v1/admin/orders
func (ctrl *CheckoutController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.checkoutService.ListOrders()
	if err != nil {
		log.Error("Failed to list orders", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus sets an order's status (admin)
// PUT /api/v1/admin/orders/:id/status
func (ctrl *CheckoutController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.checkoutService.UpdateOrderStatus(id, model.OrderStatus(req.Status)); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidOrderStatus) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid order status",
			})
			return
		}
		log.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update order status",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
	})
}

// ExportOrders streams all orders as an xlsx workbook (admin)
// GET /api/v1/admin/orders/export
func (ctrl *CheckoutController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	buf, err := ctrl.checkoutService.ExportOrdersXLSX()
	if err != nil {
		log.Error("Failed to export orders", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to export orders",
		})
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Transfer-Encoding", "binary")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
