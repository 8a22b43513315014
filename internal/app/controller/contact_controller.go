package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/service"
	"github.com/mirakh/gallery-backend/internal/middleware"
)

type ContactController struct {
	contactService service.ContactService
}

func NewContactController(contactService service.ContactService) *ContactController {
	return &ContactController{
		contactService: contactService,
	}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact stores a contact form message
// POST /api/v1/contact
func (ctrl *ContactController) SubmitContact(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid contact request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	contact := &model.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  model.ContactStatusNew,
	}
	if err := ctrl.contactService.SubmitContact(contact); err != nil {
		if errors.Is(err, service.ErrInvalidContact) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Name, email and message are required",
			})
			return
		}
		log.Error("Failed to submit contact message", err, map[string]interface{}{
			"email": req.Email,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to submit message",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message received, we will get back to you soon",
	})
}

// ListContacts returns all contact messages, newest first (admin)
// GET /api/v1/admin/contacts
func (ctrl *ContactController) ListContacts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	contacts, err := ctrl.contactService.GetContacts()
	if err != nil {
		log.Error("Failed to fetch contact messages", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch contact messages",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contacts": contacts,
		"count":    len(contacts),
	})
}

// MarkContactRead flags a contact message as handled (admin)
// PUT /api/v1/admin/contacts/:id/read
func (ctrl *ContactController) MarkContactRead(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.contactService.MarkContactRead(id); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Contact message not found",
			})
			return
		}
		log.Error("Failed to mark contact message read", err, map[string]interface{}{
			"contact_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update contact message",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact message marked as read",
	})
}
