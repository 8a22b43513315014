package service

import (
	"testing"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWishlistServiceTest(t *testing.T) (WishlistService, *model.Painting, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	wishlistRepo := repository.NewWishlistRepository(testDB)
	paintingRepo := repository.NewPaintingRepository(testDB)
	wishlistService := NewWishlistService(wishlistRepo, paintingRepo)

	painting := &model.Painting{
		Title:    "Quiet River",
		Category: model.CategoryLandscape,
		Price:    310,
	}
	require.NoError(t, testDB.Create(painting).Error)

	return wishlistService, painting, testDB
}

func TestWishlistService_AddAndGet(t *testing.T) {
	wishlistService, painting, _ := setupWishlistServiceTest(t)

	require.NoError(t, wishlistService.AddToWishlist("session-a", painting.ID))

	items, err := wishlistService.GetWishlist("session-a")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, painting.ID, items[0].PaintingID)
}

func TestWishlistService_Add_Idempotent(t *testing.T) {
	wishlistService, painting, _ := setupWishlistServiceTest(t)

	require.NoError(t, wishlistService.AddToWishlist("session-a", painting.ID))
	// Repeat adds are a no-op success, never a conflict.
	require.NoError(t, wishlistService.AddToWishlist("session-a", painting.ID))
	require.NoError(t, wishlistService.AddToWishlist("session-a", painting.ID))

	items, err := wishlistService.GetWishlist("session-a")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWishlistService_Add_PaintingNotFound(t *testing.T) {
	wishlistService, _, _ := setupWishlistServiceTest(t)

	err := wishlistService.AddToWishlist("session-a", 9999)
	assert.ErrorIs(t, err, ErrPaintingNotFound)
}

func TestWishlistService_Remove_Idempotent(t *testing.T) {
	wishlistService, painting, _ := setupWishlistServiceTest(t)

	require.NoError(t, wishlistService.AddToWishlist("session-a", painting.ID))

	require.NoError(t, wishlistService.RemoveFromWishlist("session-a", painting.ID))
	// Removing a non-member succeeds.
	require.NoError(t, wishlistService.RemoveFromWishlist("session-a", painting.ID))

	items, err := wishlistService.GetWishlist("session-a")
	require.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestWishlistService_SessionsAreIsolated(t *testing.T) {
	wishlistService, painting, _ := setupWishlistServiceTest(t)

	require.NoError(t, wishlistService.AddToWishlist("session-a", painting.ID))

	items, err := wishlistService.GetWishlist("session-b")
	require.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestWishlistService_Get_SkipsDeletedPaintings(t *testing.T) {
	wishlistService, painting, testDB := setupWishlistServiceTest(t)

	other := &model.Painting{Title: "Kept", Category: model.CategoryPortrait, Price: 150}
	require.NoError(t, testDB.Create(other).Error)

	require.NoError(t, wishlistService.AddToWishlist("session-a", painting.ID))
	require.NoError(t, wishlistService.AddToWishlist("session-a", other.ID))

	require.NoError(t, testDB.Delete(painting).Error)

	items, err := wishlistService.GetWishlist("session-a")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, other.ID, items[0].PaintingID)
}
