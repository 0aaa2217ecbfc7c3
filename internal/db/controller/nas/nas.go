// Package nas provides CRUD operations for NAS device entries.
package nas

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/models"
)

var (
	// ErrNasNotFound is returned when a NAS entry is not found.
	ErrNasNotFound = errors.New("nas not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	validate = validator.New() //nolint:gochecknoglobals
)

// CreateParams are the inputs for registering a NAS.
type CreateParams struct {
	OrganizationID uint   `validate:"required"`
	Name           string `validate:"required,max=128"`
	ShortName      string `validate:"max=32"`
	Type           string `validate:"max=30"`
	Secret         string `validate:"required,max=60"`
	Ports          *int
	Description    string `validate:"max=200"`
}

// Create validates the parameters and registers a NAS entry.
func Create(db *gorm.DB, params CreateParams) (*models.Nas, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if err := validate.Struct(params); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return nil, err
		}

		verr := models.NewValidationError()
		for _, fieldError := range fieldErrors {
			verr.Add(strings.ToLower(fieldError.Field()), "failed validation: "+fieldError.Tag())
		}

		return nil, verr
	}

	entry := models.Nas{
		OrganizationID: params.OrganizationID,
		Name:           params.Name,
		ShortName:      params.ShortName,
		Type:           params.Type,
		Secret:         params.Secret,
		Ports:          params.Ports,
		Description:    params.Description,
	}

	if entry.Type == "" {
		entry.Type = "other"
	}

	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// Get retrieves a NAS entry by ID.
func Get(db *gorm.DB, id uint) (*models.Nas, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var entry models.Nas
	result := db.First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNasNotFound
		}

		return nil, result.Error
	}

	return &entry, nil
}

// List returns the NAS entries of an organization.
func List(db *gorm.DB, organizationID uint) ([]models.Nas, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var entries []models.Nas
	result := db.Where("organization_id = ?", organizationID).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// Delete removes a NAS entry by ID.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Nas{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNasNotFound
	}

	return nil
}
