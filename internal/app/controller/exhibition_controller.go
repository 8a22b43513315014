package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/service"
	"github.com/mirakh/gallery-backend/internal/middleware"
)

type ExhibitionController struct {
	exhibitionService service.ExhibitionService
}

func NewExhibitionController(exhibitionService service.ExhibitionService) *ExhibitionController {
	return &ExhibitionController{
		exhibitionService: exhibitionService,
	}
}

type ExhibitionRequest struct {
	Title       string `json:"title" binding:"required"`
	Venue       string `json:"venue"`
	Date        string `json:"date"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// GetExhibitions lists exhibitions, newest first
// GET /api/v1/exhibitions
func (ctrl *ExhibitionController) GetExhibitions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	exhibitions, err := ctrl.exhibitionService.GetExhibitions()
	if err != nil {
		log.Error("Failed to fetch exhibitions", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch exhibitions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exhibitions": exhibitions,
		"count":       len(exhibitions),
	})
}

// CreateExhibition creates an exhibition (admin)
// POST /api/v1/admin/exhibitions
func (ctrl *ExhibitionController) CreateExhibition(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	exhibition := &model.Exhibition{
		Title:       req.Title,
		Venue:       req.Venue,
		DateLabel:   req.Date,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := ctrl.exhibitionService.CreateExhibition(exhibition); err != nil {
		log.Error("Failed to create exhibition", err, map[string]interface{}{
			"title": req.Title,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create exhibition",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Exhibition created successfully",
		"exhibition": exhibition,
	})
}

// UpdateExhibition updates an exhibition (admin)
// PUT /api/v1/admin/exhibitions/:id
func (ctrl *ExhibitionController) UpdateExhibition(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	exhibition := &model.Exhibition{
		Title:       req.Title,
		Venue:       req.Venue,
		DateLabel:   req.Date,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	exhibition.ID = id
	if err := ctrl.exhibitionService.UpdateExhibition(exhibition); err != nil {
		if errors.Is(err, service.ErrExhibitionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Exhibition not found",
			})
			return
		}
		log.Error("Failed to update exhibition", err, map[string]interface{}{
			"exhibition_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update exhibition",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Exhibition updated successfully",
		"exhibition": exhibition,
	})
}

// DeleteExhibition removes an exhibition (admin)
// DELETE /api/v1/admin/exhibitions/:id
func (ctrl *ExhibitionController) DeleteExhibition(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.exhibitionService.DeleteExhibition(id); err != nil {
		if errors.Is(err, service.ErrExhibitionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Exhibition not found",
			})
			return
		}
		log.Error("Failed to delete exhibition", err, map[string]interface{}{
			"exhibition_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete exhibition",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Exhibition deleted successfully",
	})
}
