// Package radiususergroup provides CRUD operations for rad_usergroup
// membership rows.
package radiususergroup

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/models"
)

var (
	// ErrUserGroupNotFound is returned when a membership is not found.
	ErrUserGroupNotFound = errors.New("radius user group not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create persists a membership. Username and groupname projection run in the
// model hook.
func Create(db *gorm.DB, ug *models.RadiusUserGroup) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(ug).Error
}

// ListForUser returns the memberships of a user ordered by priority.
func ListForUser(db *gorm.DB, userID uint64) ([]models.RadiusUserGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var memberships []models.RadiusUserGroup
	result := db.Where("user_id = ?", userID).Order("priority").Find(&memberships)
	if result.Error != nil {
		return nil, result.Error
	}

	return memberships, nil
}

// Update persists changes to a membership, re-running the model hooks.
func Update(db *gorm.DB, ug *models.RadiusUserGroup) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Save(ug).Error
}

// Delete removes a membership by ID.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.RadiusUserGroup{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserGroupNotFound
	}

	return nil
}
