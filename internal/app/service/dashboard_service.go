package service

import (
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/pkg/logger"
)

// DashboardStats summarizes the store for the admin landing page.
type DashboardStats struct {
	Paintings   int64 `json:"paintings"`
	Exhibitions int64 `json:"exhibitions"`
	Orders      int64 `json:"orders"`
	Contacts    int64 `json:"contacts"`
}

type DashboardService interface {
	GetStats() (*DashboardStats, error)
}

type dashboardService struct {
	paintingRepo   repository.PaintingRepository
	exhibitionRepo repository.ExhibitionRepository
	orderRepo      repository.OrderRepository
	contactRepo    repository.ContactRepository
}

func NewDashboardService(
	paintingRepo repository.PaintingRepository,
	exhibitionRepo repository.ExhibitionRepository,
	orderRepo repository.OrderRepository,
	contactRepo repository.ContactRepository,
) DashboardService {
	return &dashboardService{
		paintingRepo:   paintingRepo,
		exhibitionRepo: exhibitionRepo,
		orderRepo:      orderRepo,
		contactRepo:    contactRepo,
	}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.Paintings, err = s.paintingRepo.Count(); err != nil {
		logger.Error("Failed to count paintings", err, nil)
		return nil, err
	}
	if stats.Exhibitions, err = s.exhibitionRepo.Count(); err != nil {
		logger.Error("Failed to count exhibitions", err, nil)
		return nil, err
	}
	if stats.Orders, err = s.orderRepo.Count(); err != nil {
		logger.Error("Failed to count orders", err, nil)
		return nil, err
	}
	if stats.Contacts, err = s.contactRepo.Count(); err != nil {
		logger.Error("Failed to count contact messages", err, nil)
		return nil, err
	}
	return stats, nil
}
