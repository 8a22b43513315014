package service

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"github.com/mirakh/gallery-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrPaintingNotFound = errors.New("painting not found")
	ErrInvalidCategory  = errors.New("invalid painting category")
)

const (
	featuredCacheKey = "paintings:featured"
	featuredCacheTTL = 10 * time.Minute
	featuredLimit    = 6
)

type PaintingService interface {
	GetPaintings(filter repository.PaintingFilter) ([]model.Painting, error)
	GetPaintingByID(id uint) (*model.Painting, error)
	GetFeaturedPaintings(ctx context.Context) ([]model.Painting, error)
	GetCategories() ([]model.PaintingCategory, error)
	CreatePainting(painting *model.Painting) error
	UpdatePainting(painting *model.Painting) error
	DeletePainting(id uint) error
}

type paintingService struct {
	paintingRepo repository.PaintingRepository
	cache        *goredis.Client
}

// NewPaintingService wires the catalog service. cache may be nil, in which
// case featured paintings always hit the database.
func NewPaintingService(paintingRepo repository.PaintingRepository, cache *goredis.Client) PaintingService {
	return &paintingService{
		paintingRepo: paintingRepo,
		cache:        cache,
	}
}

func (s *paintingService) GetPaintings(filter repository.PaintingFilter) ([]model.Painting, error) {
	logger.Debug("Fetching paintings", map[string]interface{}{
		"category": filter.Category,
	})

	if filter.Category != nil && !model.ValidCategory(*filter.Category) {
		return nil, ErrInvalidCategory
	}

	paintings, err := s.paintingRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to fetch paintings", err, nil)
		return nil, err
	}

	logger.Info("Paintings fetched successfully", map[string]interface{}{
		"count": len(paintings),
	})
	return paintings, nil
}

func (s *paintingService) GetPaintingByID(id uint) (*model.Painting, error) {
	painting, err := s.paintingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Painting not found", map[string]interface{}{
				"painting_id": id,
			})
			return nil, ErrPaintingNotFound
		}
		logger.Error("Failed to fetch painting", err, map[string]interface{}{
			"painting_id": id,
		})
		return nil, err
	}
	return painting, nil
}

func (s *paintingService) GetFeaturedPaintings(ctx context.Context) ([]model.Painting, error) {
	if s.cache != nil {
		var cached []model.Painting
		found, err := redis.GetJSON(ctx, s.cache, featuredCacheKey, &cached)
		if err != nil {
			logger.Warn("Featured paintings cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else if found {
			logger.Debug("Featured paintings served from cache", map[string]interface{}{
				"count": len(cached),
			})
			return cached, nil
		}
	}

	paintings, err := s.paintingRepo.FindWithFilter(repository.PaintingFilter{
		OnlyAvailable: true,
		OnlyFeatured:  true,
		Limit:         featuredLimit,
	})
	if err != nil {
		logger.Error("Failed to fetch featured paintings", err, nil)
		return nil, err
	}

	if s.cache != nil {
		if err := redis.CacheJSON(ctx, s.cache, featuredCacheKey, paintings, featuredCacheTTL); err != nil {
			logger.Warn("Featured paintings cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return paintings, nil
}

func (s *paintingService) GetCategories() ([]model.PaintingCategory, error) {
	categories, err := s.paintingRepo.ListCategories()
	if err != nil {
		logger.Error("Failed to fetch painting categories", err, nil)
		return nil, err
	}
	return categories, nil
}

func (s *paintingService) CreatePainting(painting *model.Painting) error {
	logger.Info("Creating painting", map[string]interface{}{
		"title":    painting.Title,
		"category": painting.Category,
	})

	if !model.ValidCategory(painting.Category) {
		return ErrInvalidCategory
	}

	if err := s.paintingRepo.Create(painting); err != nil {
		return err
	}
	s.invalidateFeatured()
	return nil
}

func (s *paintingService) UpdatePainting(painting *model.Painting) error {
	logger.Info("Updating painting", map[string]interface{}{
		"painting_id": painting.ID,
	})

	if !model.ValidCategory(painting.Category) {
		return ErrInvalidCategory
	}

	if _, err := s.paintingRepo.FindByID(painting.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaintingNotFound
		}
		return err
	}

	if err := s.paintingRepo.Update(painting); err != nil {
		return err
	}
	s.invalidateFeatured()
	return nil
}

func (s *paintingService) DeletePainting(id uint) error {
	logger.Info("Deleting painting", map[string]interface{}{
		"painting_id": id,
	})

	if _, err := s.paintingRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaintingNotFound
		}
		return err
	}

	if err := s.paintingRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateFeatured()
	return nil
}

func (s *paintingService) invalidateFeatured() {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redis.Invalidate(ctx, s.cache, featuredCacheKey); err != nil {
		logger.Warn("Featured paintings cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
