package service

import (
	"errors"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishlistService interface {
	GetWishlist(sessionID string) ([]model.WishlistItem, error)
	AddToWishlist(sessionID string, paintingID uint) error
	RemoveFromWishlist(sessionID string, paintingID uint) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	paintingRepo repository.PaintingRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, paintingRepo repository.PaintingRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		paintingRepo: paintingRepo,
	}
}

func (s *wishlistService) GetWishlist(sessionID string) ([]model.WishlistItem, error) {
	logger.Debug("Fetching session wishlist", map[string]interface{}{
		"session_id": sessionID,
	})

	wishlistItems, err := s.wishlistRepo.FindBySessionID(sessionID)
	if err != nil {
		logger.Error("Failed to fetch session wishlist", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	items := make([]model.WishlistItem, 0, len(wishlistItems))
	for _, item := range wishlistItems {
		if item.Painting.ID == 0 {
			logger.Warn("Skipping wishlist entry with missing painting", map[string]interface{}{
				"session_id":  sessionID,
				"painting_id": item.PaintingID,
			})
			continue
		}
		items = append(items, item)
	}

	logger.Info("Session wishlist fetched successfully", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(items),
	})
	return items, nil
}

func (s *wishlistService) AddToWishlist(sessionID string, paintingID uint) error {
	logger.Info("Adding painting to wishlist", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
	})

	if _, err := s.paintingRepo.FindByID(paintingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to wishlist: painting not found", map[string]interface{}{
				"session_id":  sessionID,
				"painting_id": paintingID,
			})
			return ErrPaintingNotFound
		}
		logger.Error("Failed to fetch painting", err, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		return err
	}

	// Repeated adds are a no-op success. The wishlist is a set, not a
	// counter, so "already present" is not a conflict.
	if _, err := s.wishlistRepo.FindBySessionAndPainting(sessionID, paintingID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	item := &model.WishlistItem{
		SessionID:  sessionID,
		PaintingID: paintingID,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		// Concurrent add of the same pair trips the unique index; the
		// painting ended up wishlisted either way.
		if _, findErr := s.wishlistRepo.FindBySessionAndPainting(sessionID, paintingID); findErr == nil {
			return nil
		}
		logger.Error("Failed to create wishlist item", err, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		return err
	}

	logger.Info("Painting added to wishlist successfully", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
	})
	return nil
}

func (s *wishlistService) RemoveFromWishlist(sessionID string, paintingID uint) error {
	logger.Info("Removing painting from wishlist", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
	})

	// Removing a non-member is a no-op.
	if err := s.wishlistRepo.Delete(sessionID, paintingID); err != nil {
		logger.Error("Failed to remove painting from wishlist", err, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		return err
	}
	return nil
}
