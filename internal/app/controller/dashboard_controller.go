package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mirakh/gallery-backend/internal/app/service"
	"github.com/mirakh/gallery-backend/internal/middleware"
)

type DashboardController struct {
	dashboardService service.DashboardService
	checkoutService  service.CheckoutService
}

func NewDashboardController(dashboardService service.DashboardService, checkoutService service.CheckoutService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		checkoutService:  checkoutService,
	}
}

// GetStats returns store-wide counts for the admin landing page
// GET /api/v1/admin/dashboard
func (ctrl *DashboardController) GetStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.dashboardService.GetStats()
	if err != nil {
		log.Error("Failed to fetch dashboard stats", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch dashboard stats",
		})
		return
	}

	limit := 5
	if limitStr := c.Query("recent"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	recent, err := ctrl.checkoutService.GetRecentOrders(limit)
	if err != nil {
		log.Error("Failed to fetch recent orders", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch recent orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":         stats,
		"recent_orders": recent,
	})
}
