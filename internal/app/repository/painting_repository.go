package repository

import (
	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"gorm.io/gorm"
)

// PaintingFilter narrows the public catalog listing.
type PaintingFilter struct {
	Category      *model.PaintingCategory
	MinPrice      *float64
	MaxPrice      *float64
	OnlyAvailable bool
	OnlyFeatured  bool
	Limit         int
}

type PaintingRepository interface {
	Create(painting *model.Painting) error
	FindAll() ([]model.Painting, error)
	FindWithFilter(filter PaintingFilter) ([]model.Painting, error)
	FindByID(id uint) (*model.Painting, error)
	ListCategories() ([]model.PaintingCategory, error)
	Update(painting *model.Painting) error
	Delete(id uint) error
	Count() (int64, error)
}

type paintingRepository struct {
	db *gorm.DB
}

func NewPaintingRepository(db *gorm.DB) PaintingRepository {
	return &paintingRepository{db: db}
}

func (r *paintingRepository) Create(painting *model.Painting) error {
	logger.Debug("Creating painting in database", map[string]interface{}{
		"title":    painting.Title,
		"category": painting.Category,
		"price":    painting.Price,
	})

	if err := r.db.Create(painting).Error; err != nil {
		logger.Error("Failed to create painting in database", err, map[string]interface{}{
			"title":    painting.Title,
			"category": painting.Category,
		})
		return err
	}

	logger.Debug("Painting created in database", map[string]interface{}{
		"painting_id": painting.ID,
		"title":       painting.Title,
	})
	return nil
}

func (r *paintingRepository) FindAll() ([]model.Painting, error) {
	return r.FindWithFilter(PaintingFilter{})
}

func (r *paintingRepository) FindWithFilter(filter PaintingFilter) ([]model.Painting, error) {
	logger.Debug("Finding paintings with filter in database", map[string]interface{}{
		"category":       filter.Category,
		"min_price":      filter.MinPrice,
		"max_price":      filter.MaxPrice,
		"only_available": filter.OnlyAvailable,
		"only_featured":  filter.OnlyFeatured,
	})

	query := r.db.Model(&model.Painting{})

	if filter.OnlyAvailable {
		query = query.Where("available = ?", true)
	}
	if filter.OnlyFeatured {
		query = query.Where("featured = ?", true)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var paintings []model.Painting
	if err := query.Order("created_at DESC").Find(&paintings).Error; err != nil {
		logger.Error("Failed to find paintings with filter in database", err, nil)
		return nil, err
	}

	logger.Debug("Paintings found with filter in database", map[string]interface{}{
		"count": len(paintings),
	})
	return paintings, nil
}

func (r *paintingRepository) FindByID(id uint) (*model.Painting, error) {
	logger.Debug("Finding painting by ID in database", map[string]interface{}{
		"painting_id": id,
	})

	var painting model.Painting
	if err := r.db.First(&painting, id).Error; err != nil {
		return nil, err
	}

	logger.Debug("Painting found by ID in database", map[string]interface{}{
		"painting_id": painting.ID,
		"title":       painting.Title,
	})
	return &painting, nil
}

func (r *paintingRepository) ListCategories() ([]model.PaintingCategory, error) {
	var categories []model.PaintingCategory
	err := r.db.Model(&model.Painting{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		logger.Error("Failed to list painting categories in database", err, nil)
		return nil, err
	}
	return categories, nil
}

func (r *paintingRepository) Update(painting *model.Painting) error {
	logger.Debug("Updating painting in database", map[string]interface{}{
		"painting_id": painting.ID,
		"title":       painting.Title,
	})

	if err := r.db.Save(painting).Error; err != nil {
		logger.Error("Failed to update painting in database", err, map[string]interface{}{
			"painting_id": painting.ID,
		})
		return err
	}

	logger.Debug("Painting updated in database", map[string]interface{}{
		"painting_id": painting.ID,
	})
	return nil
}

func (r *paintingRepository) Delete(id uint) error {
	logger.Debug("Deleting painting from database", map[string]interface{}{
		"painting_id": id,
	})

	if err := r.db.Delete(&model.Painting{}, id).Error; err != nil {
		logger.Error("Failed to delete painting from database", err, map[string]interface{}{
			"painting_id": id,
		})
		return err
	}

	logger.Debug("Painting deleted from database", map[string]interface{}{
		"painting_id": id,
	})
	return nil
}

func (r *paintingRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Painting{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
