package db

import (
	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"github.com/mirakh/gallery-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Painting{},
		&model.Exhibition{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Contact{},
		&model.Admin{},
		&model.Customer{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedDefaultAdmin(); err != nil {
		logger.Error("Failed to seed default admin", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedDefaultAdmin creates the bootstrap admin account when no admin exists.
// The password must be changed after first login.
func seedDefaultAdmin() error {
	var count int64
	if err := DB.Model(&model.Admin{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Admin account already present, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	hash, err := util.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := model.Admin{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
	}

	if err := DB.Create(&admin).Error; err != nil {
		logger.Error("Failed to create default admin", err)
		return err
	}

	logger.Info("Default admin account created", map[string]interface{}{
		"username": admin.Username,
	})
	return nil
}
