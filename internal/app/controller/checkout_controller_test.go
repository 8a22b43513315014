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

func setupCheckoutControllerTest(t *testing.T) (*CheckoutController, *gin.Engine, *gorm.DB, *model.Painting) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	paintingRepo := repository.NewPaintingRepository(testDB)

	checkoutService := service.NewCheckoutService(orderRepo, nil, nil, testDB)
	cartService := service.NewCartService(cartRepo, paintingRepo)
	checkoutController := NewCheckoutController(checkoutService, cartService)

	painting := &model.Painting{
		Title:    "Morning Mist",
		Category: model.CategoryLandscape,
		Price:    615,
	}
	require.NoError(t, testDB.Create(painting).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return checkoutController, router, testDB, painting
}

func checkoutPayload(paintingID uint) service.CheckoutInput {
	return service.CheckoutInput{
		CustomerName:    "Sam Carter",
		CustomerEmail:   "sam@example.com",
		CustomerPhone:   "555-0142",
		ShippingAddress: "9 Studio Row",
		TotalAmount:     1230,
		Items: []service.CheckoutItemInput{
			{PaintingID: paintingID, Quantity: 2, Price: 615},
		},
	}
}

func TestCheckoutController_PlaceOrder_Success(t *testing.T) {
	controller, router, testDB, painting := setupCheckoutControllerTest(t)

	// Seed a cart entry; a successful checkout clears it.
	cartRepo := repository.NewCartRepository(testDB)
	require.NoError(t, cartRepo.Create(&model.CartItem{
		SessionID:  testSessionID,
		PaintingID: painting.ID,
		Quantity:   2,
	}))

	router.POST("/checkout", withSession(testSessionID, controller.PlaceOrder))

	body, _ := json.Marshal(checkoutPayload(painting.ID))
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	orderNumber, _ := response["order_number"].(string)
	assert.Regexp(t, `^ORD-[A-F0-9]{8}$`, orderNumber)

	var orderCount, cartCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	testDB.Model(&model.CartItem{}).Where("session_id = ?", testSessionID).Count(&cartCount)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, int64(0), cartCount)
}

func TestCheckoutController_PlaceOrder_MissingEmail(t *testing.T) {
	controller, router, testDB, painting := setupCheckoutControllerTest(t)

	router.POST("/checkout", withSession(testSessionID, controller.PlaceOrder))

	payload := checkoutPayload(painting.ID)
	payload.CustomerEmail = ""
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var orderCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
}

func TestCheckoutController_PlaceOrder_ZeroQuantityItem(t *testing.T) {
	controller, router, testDB, painting := setupCheckoutControllerTest(t)

	router.POST("/checkout", withSession(testSessionID, controller.PlaceOrder))

	payload := checkoutPayload(painting.ID)
	payload.Items[0].Quantity = 0
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var orderCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
}

func TestCheckoutController_GetOrder(t *testing.T) {
	controller, router, _, painting := setupCheckoutControllerTest(t)

	router.POST("/checkout", withSession(testSessionID, controller.PlaceOrder))
	router.GET("/orders/:orderNumber", controller.GetOrder)

	body, _ := json.Marshal(checkoutPayload(painting.ID))
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var placed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	orderNumber := placed["order_number"].(string)

	req = httptest.NewRequest(http.MethodGet, "/orders/"+orderNumber, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	order := response["order"].(map[string]interface{})
	assert.Equal(t, orderNumber, order["order_number"])
}

func TestCheckoutController_GetOrder_NotFound(t *testing.T) {
	controller, router, _, _ := setupCheckoutControllerTest(t)

	router.GET("/orders/:orderNumber", controller.GetOrder)

	req := httptest.NewRequest(http.MethodGet, "/orders/ORD-DEADBEEF", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutController_ListOrders(t *testing.T) {
	controller, router, _, painting := setupCheckoutControllerTest(t)

	router.POST("/checkout", withSession(testSessionID, controller.PlaceOrder))
	router.GET("/admin/orders", controller.ListOrders)

	body, _ := json.Marshal(checkoutPayload(painting.ID))
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestCheckoutController_UpdateOrderStatus(t *testing.T) {
	controller, router, testDB, painting := setupCheckoutControllerTest(t)

	router.POST("/checkout", withSession(testSessionID, controller.PlaceOrder))
	router.PUT("/admin/orders/:id/status", controller.UpdateOrderStatus)

	body, _ := json.Marshal(checkoutPayload(painting.ID))
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var order model.Order
	require.NoError(t, testDB.First(&order).Error)

	body, _ = json.Marshal(UpdateOrderStatusRequest{Status: "shipped"})
	req = httptest.NewRequest(http.MethodPut, "/admin/orders/"+itoa(order.ID)+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, testDB.First(&order, order.ID).Error)
	assert.Equal(t, model.OrderStatusShipped, order.Status)
}

func TestCheckoutController_UpdateOrderStatus_NotFound(t *testing.T) {
	controller, router, _, _ := setupCheckoutControllerTest(t)

	router.PUT("/admin/orders/:id/status", controller.UpdateOrderStatus)

	body, _ := json.Marshal(UpdateOrderStatusRequest{Status: "shipped"})
	req := httptest.NewRequest(http.MethodPut, "/admin/orders/99999/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutController_ExportOrders(t *testing.T) {
	controller, router, _, painting := setupCheckoutControllerTest(t)

	router.POST("/checkout", withSession(testSessionID, controller.PlaceOrder))
	router.GET("/admin/orders/export", controller.ExportOrders)

	body, _ := json.Marshal(checkoutPayload(painting.ID))
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/orders/export", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders-")
	assert.Greater(t, w.Body.Len(), 0)
}
