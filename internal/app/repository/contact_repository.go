package repository

import (
	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(contact *model.Contact) error
	FindAll() ([]model.Contact, error)
	FindByID(id uint) (*model.Contact, error)
	UpdateStatus(id uint, status model.ContactStatus) error
	Count() (int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *model.Contact) error {
	logger.Debug("Creating contact message in database", map[string]interface{}{
		"email": contact.Email,
	})

	if err := r.db.Create(contact).Error; err != nil {
		logger.Error("Failed to create contact message", err, map[string]interface{}{
			"email": contact.Email,
		})
		return err
	}
	return nil
}

func (r *contactRepository) FindAll() ([]model.Contact, error) {
	var contacts []model.Contact
	if err := r.db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) FindByID(id uint) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) UpdateStatus(id uint, status model.ContactStatus) error {
	result := r.db.Model(&model.Contact{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contactRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Contact{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
