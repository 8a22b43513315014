package service

import (
	"testing"
	"time"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/internal/db"
	"github.com/mirakh/gallery-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-for-auth-service"

func setupAuthServiceTest(t *testing.T) (AuthService, *model.Admin) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	hash, err := util.HashPassword("correct-horse")
	require.NoError(t, err)

	admin := &model.Admin{
		Username:     "curator",
		Email:        "curator@gallery.test",
		PasswordHash: hash,
	}
	require.NoError(t, testDB.Create(admin).Error)

	adminRepo := repository.NewAdminRepository(testDB)
	return NewAuthService(adminRepo, testJWTSecret, time.Hour), admin
}

func TestAuthService_Login_Success(t *testing.T) {
	authService, seeded := setupAuthServiceTest(t)

	admin, token, err := authService.Login("curator", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, admin.ID)
	require.NotEmpty(t, token)

	claims, err := util.ValidateToken(token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, seeded.Email, claims.Email)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Login("curator", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Login("nobody", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetAdminByID(t *testing.T) {
	authService, seeded := setupAuthServiceTest(t)

	admin, err := authService.GetAdminByID(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "curator", admin.Username)

	_, err = authService.GetAdminByID(99999)
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
