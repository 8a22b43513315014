package service

import (
	"errors"
	"strings"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrContactNotFound = errors.New("contact message not found")
	ErrInvalidContact  = errors.New("invalid contact payload")
)

type ContactService interface {
	SubmitContact(contact *model.Contact) error
	GetContacts() ([]model.Contact, error)
	MarkContactRead(id uint) error
}

type contactService struct {
	contactRepo repository.ContactRepository
	mailer      Mailer
}

func NewContactService(contactRepo repository.ContactRepository, mailer Mailer) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		mailer:      mailer,
	}
}

func (s *contactService) SubmitContact(contact *model.Contact) error {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Email = strings.TrimSpace(contact.Email)
	contact.Message = strings.TrimSpace(contact.Message)

	if contact.Name == "" || contact.Email == "" || contact.Message == "" {
		return ErrInvalidContact
	}

	logger.Info("Submitting contact message", map[string]interface{}{
		"email": contact.Email,
	})

	if err := s.contactRepo.Create(contact); err != nil {
		return err
	}

	// Email is best-effort; the message is already stored.
	if s.mailer != nil {
		if err := s.mailer.SendContactNotification(contact); err != nil {
			logger.Error("Failed to send contact notification email", err, map[string]interface{}{
				"contact_id": contact.ID,
			})
		}
		if err := s.mailer.SendContactConfirmation(contact); err != nil {
			logger.Error("Failed to send contact confirmation email", err, map[string]interface{}{
				"contact_id": contact.ID,
			})
		}
	}
	return nil
}

func (s *contactService) GetContacts() ([]model.Contact, error) {
	contacts, err := s.contactRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch contact messages", err, nil)
		return nil, err
	}
	return contacts, nil
}

func (s *contactService) MarkContactRead(id uint) error {
	if err := s.contactRepo.UpdateStatus(id, model.ContactStatusRead); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		logger.Error("Failed to mark contact message read", err, map[string]interface{}{
			"contact_id": id,
		})
		return err
	}
	return nil
}
