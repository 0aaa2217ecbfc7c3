package models

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/transform"
)

// RadiusCheck is a FreeRADIUS rad_check row: an attribute/op/value triple
// evaluated during authorization. It is addressed either by an owning User
// (preferred) or by a raw username string for legacy/manual entries; when a
// user is referenced, the username column is a denormalized projection of
// that user's current username.
type RadiusCheck struct {
	// ID is the unique identifier for the check.
	ID uint `gorm:"primaryKey"`
	// OrganizationID is the ID of the owning organization.
	OrganizationID uint `gorm:"column:organization_id;not null;index"`
	// Organization is the owning organization.
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	// UserID references the owning user, if any.
	UserID *uint64 `gorm:"column:user_id;index"`
	// User is the owning user.
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Username is the flat key the RADIUS server matches against. Derived
	// from User when UserID is set.
	Username string `gorm:"size:150;index;not null"`
	// Attribute is the RADIUS check attribute name.
	Attribute string `gorm:"size:64;not null"`
	// Op is the attribute operator.
	Op string `gorm:"size:2;not null;default:':='"`
	// Value is the stored attribute value.
	Value string `gorm:"size:253;not null"`
	// NewValue is a transient plaintext input. When set, it is run through
	// the transform registered for Attribute and the result replaces Value;
	// the plaintext itself is never persisted.
	NewValue string `gorm:"-"`
	// CreatedAt is the timestamp when the check was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the check was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the RadiusCheck model.
func (RadiusCheck) TableName() string {
	return "radcheck"
}

// BeforeSave projects the owning user's username into the flat key, applies
// the value transform pipeline, and rejects rows with neither a user
// reference nor a username.
func (c *RadiusCheck) BeforeSave(tx *gorm.DB) error {
	if err := projectUsername(tx, c.UserID, &c.Username); err != nil {
		return err
	}

	if c.NewValue != "" {
		value, err := transform.Apply(c.Attribute, c.NewValue)
		if err != nil {
			return err
		}

		c.Value = value
		c.NewValue = ""
	}

	return nil
}

// projectUsername overwrites username from the referenced user, or reports a
// dual-field validation error when neither the reference nor the string key
// is present.
func projectUsername(tx *gorm.DB, userID *uint64, username *string) error {
	if userID != nil {
		var u User
		if err := tx.First(&u, *userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				verr := NewValidationError()
				verr.Add("user", "referenced user does not exist")

				return verr
			}

			return err
		}

		*username = u.Username

		return nil
	}

	if *username == "" {
		verr := NewValidationError()
		verr.Add("user", "either user or username is required")
		verr.Add("username", "either user or username is required")

		return verr
	}

	return nil
}

// projectGroupname overwrites groupname from the referenced group, or reports
// a dual-field validation error when neither the reference nor the string key
// is present.
func projectGroupname(tx *gorm.DB, groupID *uint, groupname *string) error {
	if groupID != nil {
		var g RadiusGroup
		if err := tx.First(&g, *groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				verr := NewValidationError()
				verr.Add("group", "referenced group does not exist")

				return verr
			}

			return err
		}

		*groupname = g.Name

		return nil
	}

	if *groupname == "" {
		verr := NewValidationError()
		verr.Add("group", "either group or groupname is required")
		verr.Add("groupname", "either group or groupname is required")

		return verr
	}

	return nil
}

// String returns the flat username key of the check.
func (c RadiusCheck) String() string {
	return c.Username
}
