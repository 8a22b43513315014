package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/internal/app/service"
	"github.com/mirakh/gallery-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPaintingControllerTest(t *testing.T) (*PaintingController, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	paintingRepo := repository.NewPaintingRepository(testDB)
	paintingService := service.NewPaintingService(paintingRepo, nil)
	paintingController := NewPaintingController(paintingService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return paintingController, router, testDB
}

func seedPaintings(t *testing.T, testDB *gorm.DB) []*model.Painting {
	paintings := []*model.Painting{
		{Title: "Quiet Valley", Category: model.CategoryLandscape, Price: 300, Featured: true},
		{Title: "Red Vase", Category: model.CategoryAbstract, Price: 150},
		{Title: "The Fiddler", Category: model.CategoryPortrait, Price: 900},
	}
	for _, p := range paintings {
		require.NoError(t, testDB.Create(p).Error)
	}
	return paintings
}

func TestPaintingController_GetPaintings_All(t *testing.T) {
	controller, router, testDB := setupPaintingControllerTest(t)
	seedPaintings(t, testDB)

	router.GET("/paintings", controller.GetPaintings)

	req := httptest.NewRequest(http.MethodGet, "/paintings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(3), response["count"])
}

func TestPaintingController_GetPaintings_CategoryFilter(t *testing.T) {
	controller, router, testDB := setupPaintingControllerTest(t)
	seedPaintings(t, testDB)

	router.GET("/paintings", controller.GetPaintings)

	req := httptest.NewRequest(http.MethodGet, "/paintings?category=Landscape", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestPaintingController_GetPaintings_InvalidCategory(t *testing.T) {
	controller, router, _ := setupPaintingControllerTest(t)

	router.GET("/paintings", controller.GetPaintings)

	req := httptest.NewRequest(http.MethodGet, "/paintings?category=Sculpture", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["categories"])
}

func TestPaintingController_GetPaintings_PriceRange(t *testing.T) {
	controller, router, testDB := setupPaintingControllerTest(t)
	seedPaintings(t, testDB)

	router.GET("/paintings", controller.GetPaintings)

	req := httptest.NewRequest(http.MethodGet, "/paintings?min_price=200&max_price=500", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestPaintingController_GetPainting_Success(t *testing.T) {
	controller, router, testDB := setupPaintingControllerTest(t)
	paintings := seedPaintings(t, testDB)

	router.GET("/paintings/:id", controller.GetPainting)

	req := httptest.NewRequest(http.MethodGet, "/paintings/"+itoa(paintings[0].ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	painting := response["painting"].(map[string]interface{})
	assert.Equal(t, "Quiet Valley", painting["title"])
}

func TestPaintingController_GetPainting_NotFound(t *testing.T) {
	controller, router, _ := setupPaintingControllerTest(t)

	router.GET("/paintings/:id", controller.GetPainting)

	req := httptest.NewRequest(http.MethodGet, "/paintings/99999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaintingController_GetFeaturedPaintings(t *testing.T) {
	controller, router, testDB := setupPaintingControllerTest(t)
	seedPaintings(t, testDB)

	router.GET("/paintings/featured", controller.GetFeaturedPaintings)

	req := httptest.NewRequest(http.MethodGet, "/paintings/featured", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestPaintingController_CreatePainting(t *testing.T) {
	controller, router, testDB := setupPaintingControllerTest(t)

	router.POST("/admin/paintings", controller.CreatePainting)

	body, _ := json.Marshal(PaintingRequest{
		Title:    "New Arrival",
		Category: "Portrait",
		Price:    450,
		Medium:   "Oil on canvas",
		Year:     2024,
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/paintings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var painting model.Painting
	require.NoError(t, testDB.Where("title = ?", "New Arrival").First(&painting).Error)
	assert.True(t, painting.Available)
}

func TestPaintingController_CreatePainting_InvalidCategory(t *testing.T) {
	controller, router, testDB := setupPaintingControllerTest(t)

	router.POST("/admin/paintings", controller.CreatePainting)

	body, _ := json.Marshal(PaintingRequest{
		Title:    "Weird Piece",
		Category: "NotACategory",
		Price:    450,
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/paintings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	testDB.Model(&model.Painting{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPaintingController_UpdatePainting(t *testing.T) {
	controller, router, testDB := setupPaintingControllerTest(t)
	paintings := seedPaintings(t, testDB)

	router.PUT("/admin/paintings/:id", controller.UpdatePainting)

	body, _ := json.Marshal(PaintingRequest{
		Title:    "Quiet Valley (Restored)",
		Category: "Landscape",
		Price:    350,
	})
	req := httptest.NewRequest(http.MethodPut, "/admin/paintings/"+itoa(paintings[0].ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var painting model.Painting
	require.NoError(t, testDB.First(&painting, paintings[0].ID).Error)
	assert.Equal(t, "Quiet Valley (Restored)", painting.Title)
	assert.Equal(t, 350.0, painting.Price)
}

func TestPaintingController_UpdatePainting_NotFound(t *testing.T) {
	controller, router, _ := setupPaintingControllerTest(t)

	router.PUT("/admin/paintings/:id", controller.UpdatePainting)

	body, _ := json.Marshal(PaintingRequest{
		Title:    "Ghost",
		Category: "Landscape",
		Price:    100,
	})
	req := httptest.NewRequest(http.MethodPut, "/admin/paintings/99999", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaintingController_DeletePainting(t *testing.T) {
	controller, router, testDB := setupPaintingControllerTest(t)
	paintings := seedPaintings(t, testDB)

	router.DELETE("/admin/paintings/:id", controller.DeletePainting)

	req := httptest.NewRequest(http.MethodDelete, "/admin/paintings/"+itoa(paintings[1].ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	testDB.Model(&model.Painting{}).Count(&count)
	assert.Equal(t, int64(2), count)
}
