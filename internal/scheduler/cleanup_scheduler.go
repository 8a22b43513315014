package scheduler

import (
	"time"

	"github.com/mirakh/gallery-backend/config"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CleanupScheduler purges cart and wishlist rows whose anonymous sessions
// went stale. Session cookies expire client-side; without this job the rows
// they point at would pile up forever.
type CleanupScheduler struct {
	cron         *cron.Cron
	cartRepo     repository.CartRepository
	wishlistRepo repository.WishlistRepository
	cfg          config.CleanupConfig
}

func NewCleanupScheduler(
	cartRepo repository.CartRepository,
	wishlistRepo repository.WishlistRepository,
	cfg config.CleanupConfig,
) *CleanupScheduler {
	return &CleanupScheduler{
		cron:         cron.New(),
		cartRepo:     cartRepo,
		wishlistRepo: wishlistRepo,
		cfg:          cfg,
	}
}

func (s *CleanupScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.Schedule, s.runCleanup)
	if err != nil {
		logger.Error("Failed to add cron job for session cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Session cleanup scheduler started", map[string]interface{}{
		"schedule": s.cfg.Schedule,
		"max_age":  s.cfg.MaxAge.String(),
	})
	return nil
}

func (s *CleanupScheduler) Stop() {
	logger.Info("Stopping session cleanup scheduler", nil)
	s.cron.Stop()
}

func (s *CleanupScheduler) runCleanup() {
	cutoff := time.Now().Add(-s.cfg.MaxAge)
	logger.Info("Starting scheduled session cleanup", map[string]interface{}{
		"cutoff": cutoff.Format(time.RFC3339),
	})

	cartRows, err := s.cartRepo.DeleteOlderThan(cutoff)
	if err != nil {
		logger.Error("Failed to purge stale cart items", err)
	}

	wishlistRows, err := s.wishlistRepo.DeleteOlderThan(cutoff)
	if err != nil {
		logger.Error("Failed to purge stale wishlist items", err)
	}

	logger.Info("Session cleanup finished", map[string]interface{}{
		"cart_rows_removed":     cartRows,
		"wishlist_rows_removed": wishlistRows,
	})
}
