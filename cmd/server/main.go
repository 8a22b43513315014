package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mirakh/gallery-backend/config"
	"github.com/mirakh/gallery-backend/internal/app/controller"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/internal/app/service"
	"github.com/mirakh/gallery-backend/internal/db"
	"github.com/mirakh/gallery-backend/internal/middleware"
	"github.com/mirakh/gallery-backend/internal/router"
	"github.com/mirakh/gallery-backend/internal/scheduler"
	"github.com/mirakh/gallery-backend/internal/storage"
	"github.com/mirakh/gallery-backend/internal/websocket"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"github.com/mirakh/gallery-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Gallery Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; a disabled or unreachable cache only disables the
	// featured-paintings cache.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	// Repositories
	paintingRepo := repository.NewPaintingRepository(db.GetDB())
	exhibitionRepo := repository.NewExhibitionRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	wishlistRepo := repository.NewWishlistRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	contactRepo := repository.NewContactRepository(db.GetDB())
	adminRepo := repository.NewAdminRepository(db.GetDB())
	customerRepo := repository.NewCustomerRepository(db.GetDB())

	// Live order feed
	hub := websocket.NewHub()
	go hub.Run()

	// Services
	mailer := service.NewMailService(cfg.Mail)
	paintingService := service.NewPaintingService(paintingRepo, redis.GetClient())
	exhibitionService := service.NewExhibitionService(exhibitionRepo)
	cartService := service.NewCartService(cartRepo, paintingRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, paintingRepo)
	checkoutService := service.NewCheckoutService(orderRepo, mailer, hub, db.GetDB())
	contactService := service.NewContactService(contactRepo, mailer)
	authService := service.NewAuthService(adminRepo, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	customerAuthService := service.NewCustomerAuthService(customerRepo, cfg.Google, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	dashboardService := service.NewDashboardService(paintingRepo, exhibitionRepo, orderRepo, contactRepo)

	s3Storage := storage.NewS3Storage(cfg.S3)

	// Controllers
	paintingController := controller.NewPaintingController(paintingService)
	exhibitionController := controller.NewExhibitionController(exhibitionService)
	cartController := controller.NewCartController(cartService)
	wishlistController := controller.NewWishlistController(wishlistService)
	checkoutController := controller.NewCheckoutController(checkoutService, cartService)
	contactController := controller.NewContactController(contactService)
	authController := controller.NewAuthController(authService)
	googleAuthController := controller.NewGoogleAuthController(customerAuthService)
	dashboardController := controller.NewDashboardController(dashboardService, checkoutService)
	uploadController := controller.NewUploadController(s3Storage)
	orderFeedController := controller.NewOrderFeedController(hub)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	sessionMiddleware := middleware.NewSessionMiddleware(cfg.Session)

	// Abandoned session purge
	cleanup := scheduler.NewCleanupScheduler(cartRepo, wishlistRepo, cfg.Cleanup)
	if err := cleanup.Start(); err != nil {
		logger.Warn("Failed to start cleanup scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer cleanup.Stop()

	r := router.NewRouter(
		paintingController,
		exhibitionController,
		cartController,
		wishlistController,
		checkoutController,
		contactController,
		authController,
		googleAuthController,
		dashboardController,
		uploadController,
		orderFeedController,
		authMiddleware,
		sessionMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
