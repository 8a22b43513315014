package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mirakh/gallery-backend/internal/app/service"
	"github.com/mirakh/gallery-backend/internal/middleware"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
	}
}

type AddToWishlistRequest struct {
	PaintingID uint `json:"painting_id" binding:"required"`
}

// GetWishlist returns the session's wishlist
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	items, err := ctrl.wishlistService.GetWishlist(sessionID)
	if err != nil {
		log.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"session_id": sessionID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlist_items": items,
		"count":          len(items),
	})
}

// AddToWishlist adds a painting to the wishlist; adding it again is a no-op
// POST /api/v1/wishlist
func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to wishlist request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.wishlistService.AddToWishlist(sessionID, req.PaintingID); err != nil {
		if errors.Is(err, service.ErrPaintingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Painting not found",
			})
			return
		}
		log.Error("Failed to add painting to wishlist", err, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": req.PaintingID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add painting to wishlist",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Painting added to wishlist",
	})
}

// RemoveFromWishlist removes a painting from the wishlist; removing a
// non-member succeeds
// DELETE /api/v1/wishlist/:paintingId
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	paintingID, ok := parseIDParam(c, "paintingId")
	if !ok {
		return
	}

	if err := ctrl.wishlistService.RemoveFromWishlist(sessionID, paintingID); err != nil {
		log.Error("Failed to remove painting from wishlist", err, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove painting from wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Painting removed from wishlist",
	})
}
