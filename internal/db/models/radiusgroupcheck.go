package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/transform"
)

// RadiusGroupCheck is a FreeRADIUS radgroupcheck row: an attribute/op/value
// triple evaluated for every member of a group. The groupname column is a
// denormalized projection of the owning group's name.
type RadiusGroupCheck struct {
	// ID is the unique identifier for the group check.
	ID uint `gorm:"primaryKey"`
	// GroupID references the owning group, if any.
	GroupID *uint `gorm:"column:group_id;index"`
	// Group is the owning group.
	Group *RadiusGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// Groupname is the flat key, derived from Group when GroupID is set.
	Groupname string `gorm:"size:255;index;not null"`
	// Attribute is the RADIUS check attribute name.
	Attribute string `gorm:"size:64;not null"`
	// Op is the attribute operator.
	Op string `gorm:"size:2;not null;default:':='"`
	// Value is the stored attribute value.
	Value string `gorm:"size:253;not null"`
	// NewValue is a transient plaintext input fed through the transform
	// pipeline, never persisted.
	NewValue string `gorm:"-"`
	// CreatedAt is the timestamp when the group check was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group check was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the RadiusGroupCheck model.
func (RadiusGroupCheck) TableName() string {
	return "radgroupcheck"
}

// BeforeSave projects the owning group's name into the flat key and applies
// the value transform pipeline.
func (c *RadiusGroupCheck) BeforeSave(tx *gorm.DB) error {
	if err := projectGroupname(tx, c.GroupID, &c.Groupname); err != nil {
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

// String returns the flat groupname key of the group check.
func (c RadiusGroupCheck) String() string {
	return c.Groupname
}
