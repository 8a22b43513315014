package service

import (
	"errors"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrExhibitionNotFound = errors.New("exhibition not found")

type ExhibitionService interface {
	GetExhibitions() ([]model.Exhibition, error)
	GetExhibitionByID(id uint) (*model.Exhibition, error)
	CreateExhibition(exhibition *model.Exhibition) error
	UpdateExhibition(exhibition *model.Exhibition) error
	DeleteExhibition(id uint) error
}

type exhibitionService struct {
	exhibitionRepo repository.ExhibitionRepository
}

func NewExhibitionService(exhibitionRepo repository.ExhibitionRepository) ExhibitionService {
	return &exhibitionService{exhibitionRepo: exhibitionRepo}
}

func (s *exhibitionService) GetExhibitions() ([]model.Exhibition, error) {
	exhibitions, err := s.exhibitionRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch exhibitions", err, nil)
		return nil, err
	}
	return exhibitions, nil
}

func (s *exhibitionService) GetExhibitionByID(id uint) (*model.Exhibition, error) {
	exhibition, err := s.exhibitionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExhibitionNotFound
		}
		logger.Error("Failed to fetch exhibition", err, map[string]interface{}{
			"exhibition_id": id,
		})
		return nil, err
	}
	return exhibition, nil
}

func (s *exhibitionService) CreateExhibition(exhibition *model.Exhibition) error {
	logger.Info("Creating exhibition", map[string]interface{}{
		"title": exhibition.Title,
	})
	return s.exhibitionRepo.Create(exhibition)
}

func (s *exhibitionService) UpdateExhibition(exhibition *model.Exhibition) error {
	logger.Info("Updating exhibition", map[string]interface{}{
		"exhibition_id": exhibition.ID,
	})

	if _, err := s.exhibitionRepo.FindByID(exhibition.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExhibitionNotFound
		}
		return err
	}
	return s.exhibitionRepo.Update(exhibition)
}

func (s *exhibitionService) DeleteExhibition(id uint) error {
	logger.Info("Deleting exhibition", map[string]interface{}{
		"exhibition_id": id,
	})

	if _, err := s.exhibitionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExhibitionNotFound
		}
		return err
	}
	return s.exhibitionRepo.Delete(id)
}
