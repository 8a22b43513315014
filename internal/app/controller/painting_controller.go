package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/internal/app/service"
	"github.com/mirakh/gallery-backend/internal/middleware"
)

type PaintingController struct {
	paintingService service.PaintingService
}

func NewPaintingController(paintingService service.PaintingService) *PaintingController {
	return &PaintingController{
		paintingService: paintingService,
	}
}

type PaintingRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Size        string  `json:"size"`
	Medium      string  `json:"medium"`
	Year        int     `json:"year"`
	ImageURL    string  `json:"image_url"`
	Available   *bool   `json:"available"`
	Featured    bool    `json:"featured"`
}

// GetPaintings lists the catalog with optional filters
// GET /api/v1/paintings?category=&min_price=&max_price=&available=
func (ctrl *PaintingController) GetPaintings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var filter repository.PaintingFilter

	if categoryStr := c.Query("category"); categoryStr != "" {
		category := model.PaintingCategory(categoryStr)
		filter.Category = &category
	}
	if minStr := c.Query("min_price"); minStr != "" {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			filter.MinPrice = &min
		}
	}
	if maxStr := c.Query("max_price"); maxStr != "" {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			filter.MaxPrice = &max
		}
	}
	filter.OnlyAvailable = c.Query("available") == "true"

	paintings, err := ctrl.paintingService.GetPaintings(filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Invalid category",
				"categories": model.Categories(),
			})
			return
		}
		log.Error("Failed to fetch paintings", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch paintings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"paintings": paintings,
		"count":     len(paintings),
	})
}

// GetPainting returns one painting by id
// GET /api/v1/paintings/:id
func (ctrl *PaintingController) GetPainting(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	painting, err := ctrl.paintingService.GetPaintingByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPaintingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Painting not found",
			})
			return
		}
		log.Error("Failed to fetch painting", err, map[string]interface{}{
			"painting_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch painting",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"painting": painting,
	})
}

// GetFeaturedPaintings returns the featured subset for the home page
// GET /api/v1/paintings/featured
func (ctrl *PaintingController) GetFeaturedPaintings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	paintings, err := ctrl.paintingService.GetFeaturedPaintings(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch featured paintings", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch featured paintings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"paintings": paintings,
		"count":     len(paintings),
	})
}

// GetCategories lists the categories present in the catalog
// GET /api/v1/paintings/categories
func (ctrl *PaintingController) GetCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.paintingService.GetCategories()
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch categories",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// CreatePainting creates a catalog entry (admin)
// POST /api/v1/admin/paintings
func (ctrl *PaintingController) CreatePainting(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PaintingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	painting := paintingFromRequest(req)
	if err := ctrl.paintingService.CreatePainting(painting); err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Invalid category",
				"categories": model.Categories(),
			})
			return
		}
		log.Error("Failed to create painting", err, map[string]interface{}{
			"title": req.Title,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create painting",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Painting created successfully",
		"painting": painting,
	})
}

// UpdatePainting updates a catalog entry (admin)
// PUT /api/v1/admin/paintings/:id
func (ctrl *PaintingController) UpdatePainting(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PaintingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	painting := paintingFromRequest(req)
	painting.ID = id
	if err := ctrl.paintingService.UpdatePainting(painting); err != nil {
		if errors.Is(err, service.ErrPaintingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Painting not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Invalid category",
				"categories": model.Categories(),
			})
			return
		}
		log.Error("Failed to update painting", err, map[string]interface{}{
			"painting_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update painting",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Painting updated successfully",
		"painting": painting,
	})
}

// DeletePainting removes a catalog entry (admin)
// DELETE /api/v1/admin/paintings/:id
func (ctrl *PaintingController) DeletePainting(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.paintingService.DeletePainting(id); err != nil {
		if errors.Is(err, service.ErrPaintingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Painting not found",
			})
			return
		}
		log.Error("Failed to delete painting", err, map[string]interface{}{
			"painting_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete painting",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Painting deleted successfully",
	})
}

func paintingFromRequest(req PaintingRequest) *model.Painting {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return &model.Painting{
		Title:       req.Title,
		Description: req.Description,
		Category:    model.PaintingCategory(req.Category),
		Price:       req.Price,
		Size:        req.Size,
		Medium:      req.Medium,
		Year:        req.Year,
		ImageURL:    req.ImageURL,
		Available:   available,
		Featured:    req.Featured,
	}
}
