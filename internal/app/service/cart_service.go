package service

import (
	"errors"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("invalid quantity")
)

type CartService interface {
	GetCart(sessionID string) ([]model.CartItem, error)
	AddToCart(sessionID string, paintingID uint, quantity int) (*model.Painting, error)
	UpdateQuantity(sessionID string, paintingID uint, quantity int) error
	RemoveFromCart(sessionID string, paintingID uint) error
	ClearCart(sessionID string) error
}

type cartService struct {
	cartRepo     repository.CartRepository
	paintingRepo repository.PaintingRepository
}

func NewCartService(cartRepo repository.CartRepository, paintingRepo repository.PaintingRepository) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		paintingRepo: paintingRepo,
	}
}

func (s *cartService) GetCart(sessionID string) ([]model.CartItem, error) {
	logger.Debug("Fetching session cart", map[string]interface{}{
		"session_id": sessionID,
	})

	cartItems, err := s.cartRepo.FindBySessionID(sessionID)
	if err != nil {
		logger.Error("Failed to fetch session cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	// A painting deleted after being carted preloads as a zero value.
	// Those entries are skipped rather than surfaced as an error.
	items := make([]model.CartItem, 0, len(cartItems))
	for _, item := range cartItems {
		if item.Painting.ID == 0 {
			logger.Warn("Skipping cart entry with missing painting", map[string]interface{}{
				"session_id":  sessionID,
				"painting_id": item.PaintingID,
			})
			continue
		}
		items = append(items, item)
	}

	logger.Info("Session cart fetched successfully", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(items),
	})
	return items, nil
}

func (s *cartService) AddToCart(sessionID string, paintingID uint, quantity int) (*model.Painting, error) {
	if quantity < 1 {
		quantity = 1
	}

	logger.Info("Adding painting to cart", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
		"quantity":    quantity,
	})

	painting, err := s.paintingRepo.FindByID(paintingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: painting not found", map[string]interface{}{
				"session_id":  sessionID,
				"painting_id": paintingID,
			})
			return nil, ErrPaintingNotFound
		}
		logger.Error("Failed to fetch painting", err, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		return nil, err
	}

	// Merge first: a single UPDATE ... SET quantity = quantity + ? keeps
	// concurrent adds for the same session from losing increments.
	affected, err := s.cartRepo.IncrementQuantity(sessionID, paintingID, quantity)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		cartItem := &model.CartItem{
			SessionID:  sessionID,
			PaintingID: paintingID,
			Quantity:   quantity,
		}
		if err := s.cartRepo.Create(cartItem); err != nil {
			// A concurrent add may have inserted the row between the
			// increment and the create. Fall back to incrementing it.
			affected, incErr := s.cartRepo.IncrementQuantity(sessionID, paintingID, quantity)
			if incErr != nil || affected == 0 {
				logger.Error("Failed to create cart item", err, map[string]interface{}{
					"session_id":  sessionID,
					"painting_id": paintingID,
				})
				return nil, err
			}
		}
	}

	logger.Info("Painting added to cart successfully", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
	})
	return painting, nil
}

func (s *cartService) UpdateQuantity(sessionID string, paintingID uint, quantity int) error {
	logger.Info("Updating cart item quantity", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
		"quantity":    quantity,
	})

	// Setting the quantity to zero or below removes the entry.
	if quantity <= 0 {
		if _, err := s.cartRepo.FindBySessionAndPainting(sessionID, paintingID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}
		return s.cartRepo.Delete(sessionID, paintingID)
	}

	affected, err := s.cartRepo.UpdateQuantity(sessionID, paintingID, quantity)
	if err != nil {
		logger.Error("Failed to update cart item quantity", err, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		return err
	}
	if affected == 0 {
		logger.Warn("Cannot update quantity: cart item not found", map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		return ErrCartItemNotFound
	}
	return nil
}

func (s *cartService) RemoveFromCart(sessionID string, paintingID uint) error {
	logger.Info("Removing painting from cart", map[string]interface{}{
		"session_id":  sessionID,
		"painting_id": paintingID,
	})

	// Deleting an absent entry is a no-op, so removal is safely retryable.
	if err := s.cartRepo.Delete(sessionID, paintingID); err != nil {
		logger.Error("Failed to remove painting from cart", err, map[string]interface{}{
			"session_id":  sessionID,
			"painting_id": paintingID,
		})
		return err
	}
	return nil
}

func (s *cartService) ClearCart(sessionID string) error {
	logger.Info("Clearing session cart", map[string]interface{}{
		"session_id": sessionID,
	})

	if err := s.cartRepo.DeleteBySessionID(sessionID); err != nil {
		logger.Error("Failed to clear session cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	return nil
}
