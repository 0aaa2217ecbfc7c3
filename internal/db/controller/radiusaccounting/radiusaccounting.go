// Package radiusaccounting provides operations for radacct session rows.
package radiusaccounting

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/models"
)

var (
	// ErrSessionNotFound is returned when an accounting session is not found.
	ErrSessionNotFound = errors.New("accounting session not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	validate = validator.New() //nolint:gochecknoglobals
)

// CreateParams are the inputs for opening an accounting session.
type CreateParams struct {
	OrganizationID    uint   `validate:"required"`
	UniqueID          string `validate:"required,max=32"`
	SessionID         string `validate:"required,max=64"`
	NASIPAddress      string `validate:"required,ip4_addr"`
	Username          string `validate:"max=150"`
	Groupname         string `validate:"max=255"`
	CalledStationID   string `validate:"max=50"`
	CallingStationID  string `validate:"max=50"`
	FramedIPAddress   string `validate:"omitempty,ip4_addr"`
	FramedIPv6Address string `validate:"omitempty,ip6_addr"`
	FramedIPv6Prefix  string
	StartTime         *time.Time
}

// Create validates the parameters and opens an accounting session. Struct-tag
// violations and the IPv6 prefix check are both reported as field-scoped
// validation errors.
func Create(db *gorm.DB, params CreateParams) (*models.RadiusAccounting, error) {
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
			verr.Add(snakeCase(fieldError.Field()), "failed validation: "+fieldError.Tag())
		}

		return nil, verr
	}

	acct := models.RadiusAccounting{
		OrganizationID:    params.OrganizationID,
		UniqueID:          params.UniqueID,
		SessionID:         params.SessionID,
		NASIPAddress:      params.NASIPAddress,
		Username:          params.Username,
		Groupname:         params.Groupname,
		CalledStationID:   params.CalledStationID,
		CallingStationID:  params.CallingStationID,
		FramedIPAddress:   params.FramedIPAddress,
		FramedIPv6Address: params.FramedIPv6Address,
		FramedIPv6Prefix:  params.FramedIPv6Prefix,
		StartTime:         params.StartTime,
	}

	if err := db.Create(&acct).Error; err != nil {
		return nil, err
	}

	return &acct, nil
}

// GetByUniqueID retrieves a session by its accounting unique ID.
func GetByUniqueID(db *gorm.DB, uniqueID string) (*models.RadiusAccounting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var acct models.RadiusAccounting
	result := db.Where("unique_id = ?", uniqueID).First(&acct)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}

		return nil, result.Error
	}

	return &acct, nil
}

// UpdateCounters refreshes the traffic counters of an open session.
func UpdateCounters(db *gorm.DB, uniqueID string, inputOctets, outputOctets, sessionTime uint64) error {
	if db == nil {
		return ErrDBNil
	}

	now := time.Now()

	result := db.Model(&models.RadiusAccounting{}).
		Where("unique_id = ?", uniqueID).
		UpdateColumns(map[string]interface{}{
			"input_octets":  inputOctets,
			"output_octets": outputOctets,
			"session_time":  sessionTime,
			"update_time":   &now,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// Stop closes a session, recording the stop time and terminate cause.
func Stop(db *gorm.DB, uniqueID string, stopTime time.Time, terminateCause string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.RadiusAccounting{}).
		Where("unique_id = ? AND stop_time IS NULL", uniqueID).
		UpdateColumns(map[string]interface{}{
			"stop_time":       &stopTime,
			"terminate_cause": terminateCause,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// ListOpen returns the open sessions of an organization.
func ListOpen(db *gorm.DB, organizationID uint) ([]models.RadiusAccounting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var sessions []models.RadiusAccounting
	result := db.Where("organization_id = ? AND stop_time IS NULL", organizationID).Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

// snakeCase converts a Go field name to its column-style name so validation
// errors line up with form fields (e.g. UniqueID -> unique_id).
func snakeCase(field string) string {
	var b strings.Builder

	runes := []rune(field)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			lowerNext := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (lowerNext || unicode.IsLower(runes[i-1])) {
				b.WriteByte('_')
			}

			r = unicode.ToLower(r)
		}

		b.WriteRune(r)
	}

	return b.String()
}
