package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mirakh/gallery-backend/internal/app/service"
	"github.com/mirakh/gallery-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	PaintingID uint `json:"painting_id" binding:"required"`
	Quantity   int  `json:"quantity"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the session's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	cartItems, err := ctrl.cartService.GetCart(sessionID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch cart",
		})
		return
	}

	var total float64
	for _, item := range cartItems {
		total += item.Painting.Price * float64(item.Quantity)
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_items": cartItems,
		"count":      len(cartItems),
		"total":      total,
	})
}

// AddToCart adds a painting to the session's cart, merging quantities with
// any existing entry
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Quantity must be positive",
		})
		return
	}

	painting, err := ctrl.cartService.AddToCart(sessionID, req.PaintingID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrPaintingNotFound) {
			log.Warn("Painting not found for cart", map[string]interface{}{
				"session_id":  sessionID,
				"painting_id": req.PaintingID,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Painting not found",
			})
			return
		}
		log.Error("Failed to add painting to cart", err, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": req.PaintingID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add painting to cart",
		})
		return
	}

	log.Info("Painting added to cart successfully", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": req.PaintingID,
		"quantity":    req.Quantity,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Painting added to cart successfully",
		"painting": painting,
	})
}

// UpdateCartItem sets the absolute quantity for a cart entry; zero or less
// removes it
// PUT /api/v1/cart/:paintingId
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	paintingID, ok := parseIDParam(c, "paintingId")
	if !ok {
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update cart request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.cartService.UpdateQuantity(sessionID, paintingID, req.Quantity); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart item not found",
			})
			return
		}
		log.Error("Failed to update cart item", err, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
	})
}

// RemoveFromCart removes a painting from the cart; removing an absent entry
// succeeds
// DELETE /api/v1/cart/:paintingId
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	paintingID, ok := parseIDParam(c, "paintingId")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveFromCart(sessionID, paintingID); err != nil {
		log.Error("Failed to remove painting from cart", err, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove painting from cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Painting removed from cart",
	})
}

// ClearCart empties the session's cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	if err := ctrl.cartService.ClearCart(sessionID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}

// parseIDParam parses a numeric path parameter, writing a 400 response when
// it is not a valid id.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}
