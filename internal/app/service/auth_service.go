package service

import (
	"errors"
	"time"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"github.com/mirakh/gallery-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminNotFound      = errors.New("admin not found")
)

type AuthService interface {
	Login(username, password string) (*model.Admin, string, error)
	GetAdminByID(id uint) (*model.Admin, error)
}

type authService struct {
	adminRepo    repository.AdminRepository
	jwtSecret    string
	accessExpiry time.Duration
}

func NewAuthService(adminRepo repository.AdminRepository, jwtSecret string, accessExpiry time.Duration) AuthService {
	return &authService{
		adminRepo:    adminRepo,
		jwtSecret:    jwtSecret,
		accessExpiry: accessExpiry,
	}
}

func (s *authService) Login(username, password string) (*model.Admin, string, error) {
	logger.Info("Attempting admin login", map[string]interface{}{
		"username": username,
	})

	admin, err := s.adminRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: admin not found", map[string]interface{}{
				"username": username,
			})
			return nil, "", ErrInvalidCredentials
		}
		logger.Error("Failed to fetch admin", err, map[string]interface{}{
			"username": username,
		})
		return nil, "", err
	}

	if !util.VerifyPassword(admin.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"username": username,
		})
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateToken(admin.ID, admin.Email, "admin", s.jwtSecret, s.accessExpiry)
	if err != nil {
		logger.Error("Failed to generate admin token", err, map[string]interface{}{
			"username": username,
		})
		return nil, "", err
	}

	logger.Info("Admin logged in successfully", map[string]interface{}{
		"admin_id": admin.ID,
		"username": username,
	})
	return admin, token, nil
}

func (s *authService) GetAdminByID(id uint) (*model.Admin, error) {
	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}
