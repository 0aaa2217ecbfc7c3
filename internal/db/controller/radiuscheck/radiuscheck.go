// Package radiuscheck provides CRUD operations for rad_check rows.
package radiuscheck

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/models"
)

var (
	// ErrCheckNotFound is returned when a check is not found.
	ErrCheckNotFound = errors.New("radius check not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create persists a check. Username projection and the value transform
// pipeline run in the model hooks.
func Create(db *gorm.DB, c *models.RadiusCheck) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(c).Error
}

// Get retrieves a check by ID.
func Get(db *gorm.DB, id uint) (*models.RadiusCheck, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var c models.RadiusCheck
	result := db.First(&c, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCheckNotFound
		}

		return nil, result.Error
	}

	return &c, nil
}

// ListByUsername returns all checks matching the flat username key.
func ListByUsername(db *gorm.DB, username string) ([]models.RadiusCheck, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var checks []models.RadiusCheck
	result := db.Where("username = ?", username).Find(&checks)
	if result.Error != nil {
		return nil, result.Error
	}

	return checks, nil
}

// Update persists changes to a check, re-running the model hooks.
func Update(db *gorm.DB, c *models.RadiusCheck) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Save(c).Error
}

// Delete removes a check by ID.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.RadiusCheck{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCheckNotFound
	}

	return nil
}
