package repository

import (
	"testing"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPaintingRepoTest(t *testing.T) (PaintingRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewPaintingRepository(testDB), testDB
}

func seedCatalog(t *testing.T, repo PaintingRepository, testDB *gorm.DB) {
	t.Helper()

	paintings := []model.Painting{
		{Title: "Blue Mist", Category: model.CategoryAbstract, Price: 300, Available: true, Featured: true},
		{Title: "The Oak", Category: model.CategoryLandscape, Price: 750, Available: true},
		{Title: "Old Man", Category: model.CategoryPortrait, Price: 1200, Available: true},
		{Title: "Charcoal Study", Category: model.CategoryDrawings, Price: 90, Available: true},
	}
	for i := range paintings {
		require.NoError(t, repo.Create(&paintings[i]))
	}

	// Column update sidesteps gorm skipping zero values on default-tagged
	// fields.
	require.NoError(t, testDB.Model(&model.Painting{}).
		Where("title = ?", "Old Man").
		Update("available", false).Error)
}

func TestPaintingRepository_FindWithFilter_Category(t *testing.T) {
	repo, testDB := setupPaintingRepoTest(t)
	seedCatalog(t, repo, testDB)

	category := model.CategoryAbstract
	paintings, err := repo.FindWithFilter(PaintingFilter{Category: &category})
	require.NoError(t, err)
	require.Len(t, paintings, 1)
	assert.Equal(t, "Blue Mist", paintings[0].Title)
}

func TestPaintingRepository_FindWithFilter_PriceRange(t *testing.T) {
	repo, testDB := setupPaintingRepoTest(t)
	seedCatalog(t, repo, testDB)

	min, max := 100.0, 800.0
	paintings, err := repo.FindWithFilter(PaintingFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Len(t, paintings, 2)
}

func TestPaintingRepository_FindWithFilter_AvailableFeatured(t *testing.T) {
	repo, testDB := setupPaintingRepoTest(t)
	seedCatalog(t, repo, testDB)

	paintings, err := repo.FindWithFilter(PaintingFilter{OnlyAvailable: true})
	require.NoError(t, err)
	assert.Len(t, paintings, 3)

	paintings, err = repo.FindWithFilter(PaintingFilter{OnlyFeatured: true, Limit: 6})
	require.NoError(t, err)
	require.Len(t, paintings, 1)
	assert.Equal(t, "Blue Mist", paintings[0].Title)
}

func TestPaintingRepository_ListCategories(t *testing.T) {
	repo, testDB := setupPaintingRepoTest(t)
	seedCatalog(t, repo, testDB)

	categories, err := repo.ListCategories()
	require.NoError(t, err)
	assert.Len(t, categories, 4)
	assert.Contains(t, categories, model.CategoryDrawings)
}

func TestPaintingRepository_Delete_SoftDeletes(t *testing.T) {
	repo, testDB := setupPaintingRepoTest(t)

	painting := &model.Painting{Title: "Gone Soon", Category: model.CategoryAbstract, Price: 10}
	require.NoError(t, repo.Create(painting))

	require.NoError(t, repo.Delete(painting.ID))

	_, err := repo.FindByID(painting.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Soft delete keeps the row for historical order items.
	var count int64
	require.NoError(t, testDB.Unscoped().Model(&model.Painting{}).Where("id = ?", painting.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
