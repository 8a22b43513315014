package repository

import (
	"time"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(cartItem *model.CartItem) error
	FindBySessionID(sessionID string) ([]model.CartItem, error)
	FindBySessionAndPainting(sessionID string, paintingID uint) (*model.CartItem, error)
	IncrementQuantity(sessionID string, paintingID uint, delta int) (int64, error)
	UpdateQuantity(sessionID string, paintingID uint, quantity int) (int64, error)
	Delete(sessionID string, paintingID uint) error
	DeleteBySessionID(sessionID string) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cartItem *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"session_id":  cartItem.SessionID,
		"painting_id": cartItem.PaintingID,
		"quantity":    cartItem.Quantity,
	})

	if err := r.db.Create(cartItem).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"session_id":  cartItem.SessionID,
			"painting_id": cartItem.PaintingID,
			"quantity":    cartItem.Quantity,
		})
		return err
	}

	logger.Debug("Cart item created in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"session_id":   cartItem.SessionID,
		"painting_id":  cartItem.PaintingID,
	})
	return nil
}

func (r *cartRepository) FindBySessionID(sessionID string) ([]model.CartItem, error) {
	logger.Debug("Finding cart items by session ID in database", map[string]interface{}{
		"session_id": sessionID,
	})

	var cartItems []model.CartItem
	err := r.db.Where("session_id = ?", sessionID).
		Preload("Painting").
		Order("created_at ASC").
		Find(&cartItems).Error
	if err != nil {
		logger.Error("Failed to find cart items by session ID in database", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	logger.Debug("Cart items found by session ID in database", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(cartItems),
	})
	return cartItems, nil
}

func (r *cartRepository) FindBySessionAndPainting(sessionID string, paintingID uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by session and painting in database", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
	})

	var cartItem model.CartItem
	err := r.db.Where("session_id = ? AND painting_id = ?", sessionID, paintingID).
		First(&cartItem).Error
	if err != nil {
		return nil, err
	}

	logger.Debug("Cart item found by session and painting in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"session_id":   sessionID,
		"painting_id":  paintingID,
	})
	return &cartItem, nil
}

// IncrementQuantity atomically adds delta to the quantity of an existing
// entry. The single UPDATE keeps concurrent adds against the same
// (session, painting) pair from losing increments. Returns the number of
// rows touched; zero means no entry exists yet.
func (r *cartRepository) IncrementQuantity(sessionID string, paintingID uint, delta int) (int64, error) {
	logger.Debug("Incrementing cart item quantity in database", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
		"delta":       delta,
	})

	result := r.db.Model(&model.CartItem{}).
		Where("session_id = ? AND painting_id = ?", sessionID, paintingID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		logger.Error("Failed to increment cart item quantity in database", result.Error, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// UpdateQuantity sets the quantity absolutely. Returns the number of rows
// touched; zero means the entry does not exist.
func (r *cartRepository) UpdateQuantity(sessionID string, paintingID uint, quantity int) (int64, error) {
	logger.Debug("Updating cart item quantity in database", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
		"quantity":    quantity,
	})

	result := r.db.Model(&model.CartItem{}).
		Where("session_id = ? AND painting_id = ?", sessionID, paintingID).
		Update("quantity", quantity)
	if result.Error != nil {
		logger.Error("Failed to update cart item quantity in database", result.Error, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (r *cartRepository) Delete(sessionID string, paintingID uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
	})

	if err := r.db.Where("session_id = ? AND painting_id = ?", sessionID, paintingID).
		Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		return err
	}

	logger.Debug("Cart item deleted from database", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
	})
	return nil
}

func (r *cartRepository) DeleteBySessionID(sessionID string) error {
	logger.Debug("Deleting cart items by session ID from database", map[string]interface{}{
		"session_id": sessionID,
	})

	if err := r.db.Where("session_id = ?", sessionID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items by session ID from database", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}

	logger.Debug("Cart items deleted by session ID from database", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}

// DeleteOlderThan removes cart rows last touched before cutoff. Used by the
// abandoned-session cleanup job.
func (r *cartRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("updated_at < ?", cutoff).Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete stale cart items from database", result.Error, nil)
		return 0, result.Error
	}

	logger.Debug("Stale cart items deleted from database", map[string]interface{}{
		"count": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
