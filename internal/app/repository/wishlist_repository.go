package repository

import (
	"time"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Create(item *model.WishlistItem) error
	FindBySessionID(sessionID string) ([]model.WishlistItem, error)
	FindBySessionAndPainting(sessionID string, paintingID uint) (*model.WishlistItem, error)
	Delete(sessionID string, paintingID uint) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(item *model.WishlistItem) error {
	logger.Debug("Creating wishlist item in database", map[string]interface{}{
		"session_id":  item.SessionID,
		"painting_id": item.PaintingID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create wishlist item in database", err, map[string]interface{}{
			"session_id":  item.SessionID,
			"painting_id": item.PaintingID,
		})
		return err
	}

	logger.Debug("Wishlist item created in database", map[string]interface{}{
		"wishlist_item_id": item.ID,
		"session_id":       item.SessionID,
		"painting_id":      item.PaintingID,
	})
	return nil
}

func (r *wishlistRepository) FindBySessionID(sessionID string) ([]model.WishlistItem, error) {
	logger.Debug("Finding wishlist items by session ID in database", map[string]interface{}{
		"session_id": sessionID,
	})

	var items []model.WishlistItem
	err := r.db.Where("session_id = ?", sessionID).
		Preload("Painting").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find wishlist items by session ID in database", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	logger.Debug("Wishlist items found by session ID in database", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(items),
	})
	return items, nil
}

func (r *wishlistRepository) FindBySessionAndPainting(sessionID string, paintingID uint) (*model.WishlistItem, error) {
	logger.Debug("Finding wishlist item by session and painting", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
	})

	var item model.WishlistItem
	err := r.db.Where("session_id = ? AND painting_id = ?", sessionID, paintingID).First(&item).Error
	if err != nil {
		return nil, err
	}

	logger.Debug("Wishlist item found by session and painting", map[string]interface{}{
		"wishlist_item_id": item.ID,
	})
	return &item, nil
}

func (r *wishlistRepository) Delete(sessionID string, paintingID uint) error {
	logger.Debug("Deleting wishlist item from database", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
	})

	if err := r.db.Where("session_id = ? AND painting_id = ?", sessionID, paintingID).
		Delete(&model.WishlistItem{}).Error; err != nil {
		logger.Error("Failed to delete wishlist item from database", err, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		return err
	}

	logger.Debug("Wishlist item deleted from database", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
	})
	return nil
}

// DeleteOlderThan removes wishlist rows created before cutoff. Used by the
// abandoned-session cleanup job.
func (r *wishlistRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&model.WishlistItem{})
	if result.Error != nil {
		logger.Error("Failed to delete stale wishlist items from database", result.Error, nil)
		return 0, result.Error
	}

	logger.Debug("Stale wishlist items deleted from database", map[string]interface{}{
		"count": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
