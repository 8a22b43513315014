package repository

import (
	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"gorm.io/gorm"
)

type ExhibitionRepository interface {
	Create(exhibition *model.Exhibition) error
	FindAll() ([]model.Exhibition, error)
	FindByID(id uint) (*model.Exhibition, error)
	Update(exhibition *model.Exhibition) error
	Delete(id uint) error
	Count() (int64, error)
}

type exhibitionRepository struct {
	db *gorm.DB
}

func NewExhibitionRepository(db *gorm.DB) ExhibitionRepository {
	return &exhibitionRepository{db: db}
}

func (r *exhibitionRepository) Create(exhibition *model.Exhibition) error {
	logger.Debug("Creating exhibition in database", map[string]interface{}{
		"title": exhibition.Title,
		"venue": exhibition.Venue,
	})

	if err := r.db.Create(exhibition).Error; err != nil {
		logger.Error("Failed to create exhibition in database", err, map[string]interface{}{
			"title": exhibition.Title,
		})
		return err
	}

	logger.Debug("Exhibition created in database", map[string]interface{}{
		"exhibition_id": exhibition.ID,
	})
	return nil
}

func (r *exhibitionRepository) FindAll() ([]model.Exhibition, error) {
	var exhibitions []model.Exhibition
	if err := r.db.Order("created_at DESC").Find(&exhibitions).Error; err != nil {
		logger.Error("Failed to find exhibitions in database", err, nil)
		return nil, err
	}

	logger.Debug("Exhibitions found in database", map[string]interface{}{
		"count": len(exhibitions),
	})
	return exhibitions, nil
}

func (r *exhibitionRepository) FindByID(id uint) (*model.Exhibition, error) {
	var exhibition model.Exhibition
	if err := r.db.First(&exhibition, id).Error; err != nil {
		return nil, err
	}
	return &exhibition, nil
}

func (r *exhibitionRepository) Update(exhibition *model.Exhibition) error {
	logger.Debug("Updating exhibition in database", map[string]interface{}{
		"exhibition_id": exhibition.ID,
	})

	if err := r.db.Save(exhibition).Error; err != nil {
		logger.Error("Failed to update exhibition in database", err, map[string]interface{}{
			"exhibition_id": exhibition.ID,
		})
		return err
	}
	return nil
}

func (r *exhibitionRepository) Delete(id uint) error {
	logger.Debug("Deleting exhibition from database", map[string]interface{}{
		"exhibition_id": id,
	})

	if err := r.db.Delete(&model.Exhibition{}, id).Error; err != nil {
		logger.Error("Failed to delete exhibition from database", err, map[string]interface{}{
			"exhibition_id": id,
		})
		return err
	}
	return nil
}

func (r *exhibitionRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Exhibition{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
