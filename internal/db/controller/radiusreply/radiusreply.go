// Package radiusreply provides CRUD operations for rad_reply rows.
package radiusreply

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/models"
)

var (
	// ErrReplyNotFound is returned when a reply is not found.
	ErrReplyNotFound = errors.New("radius reply not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create persists a reply. Username projection runs in the model hook.
func Create(db *gorm.DB, r *models.RadiusReply) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(r).Error
}

// Get retrieves a reply by ID.
func Get(db *gorm.DB, id uint) (*models.RadiusReply, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var r models.RadiusReply
	result := db.First(&r, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReplyNotFound
		}

		return nil, result.Error
	}

	return &r, nil
}

// ListByUsername returns all replies matching the flat username key.
func ListByUsername(db *gorm.DB, username string) ([]models.RadiusReply, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var replies []models.RadiusReply
	result := db.Where("username = ?", username).Find(&replies)
	if result.Error != nil {
		return nil, result.Error
	}

	return replies, nil
}

// Update persists changes to a reply, re-running the model hooks.
func Update(db *gorm.DB, r *models.RadiusReply) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Save(r).Error
}

// Delete removes a reply by ID.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.RadiusReply{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrReplyNotFound
	}

	return nil
}
