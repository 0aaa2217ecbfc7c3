package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// RadiusGroup is an organization-scoped named group of RADIUS users,
// mirroring the FreeRADIUS radgroupcheck/radgroupreply groupname space.
// Its name is always prefixed with the owning organization's slug. At most
// one group per organization carries the default flag; that group is granted
// to users newly added to the organization and cannot be deleted or
// un-defaulted without designating a replacement first.
type RadiusGroup struct {
	// ID is the unique identifier for the group.
	ID uint `gorm:"primaryKey"`
	// OrganizationID is the ID of the owning organization.
	OrganizationID uint `gorm:"column:organization_id;not null;index"`
	// Organization is the owning organization.
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	// Name is the unique group name, auto-prefixed with "<org slug>-" when
	// the prefix is missing.
	Name string `gorm:"unique;size:255;not null"`
	// Description provides a human-readable explanation of the group's purpose.
	Description string `gorm:"size:255"`
	// Default marks the group granted to new members of the organization.
	// Exactly one group per organization holds it.
	Default bool `gorm:"column:is_default;default:false"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the RadiusGroup model.
func (RadiusGroup) TableName() string {
	return "radiusgroup"
}

// BeforeSave validates the group and keeps the per-organization default
// invariant: saving a default group demotes every sibling default in the same
// transaction, and flipping an existing default group to non-default is
// rejected so an organization is never left without a default through direct
// mutation.
func (g *RadiusGroup) BeforeSave(tx *gorm.DB) error {
	verr := NewValidationError()

	if strings.TrimSpace(g.Name) == "" {
		verr.Add("name", "name cannot be empty")
	}

	if g.OrganizationID == 0 {
		verr.Add("organization", "organization is required")
		return verr
	}

	var org Organization
	if err := tx.First(&org, g.OrganizationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			verr.Add("organization", "organization does not exist")
			return verr
		}

		return err
	}

	if !verr.Empty() {
		return verr
	}

	if !strings.HasPrefix(g.Name, org.Slug+"-") {
		g.Name = fmt.Sprintf("%s-%s", org.Slug, g.Name)
	}

	if g.ID != 0 && !g.Default {
		var stored RadiusGroup
		err := tx.Select("is_default").First(&stored, g.ID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if stored.Default {
			verr.Add("default", "cannot unset the default group; assign another default group first")
			return verr
		}
	}

	if g.Default {
		// Demote sibling defaults within the same transaction. UpdateColumn
		// skips hooks so the sweep cannot recurse.
		err := tx.Model(&RadiusGroup{}).
			Where("organization_id = ? AND is_default = ? AND id <> ?", g.OrganizationID, true, g.ID).
			UpdateColumn("is_default", false).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// BeforeDelete rejects deletion of the organization's current default group.
// Bulk deletions that skip hooks bypass this protection on purpose, matching
// the underlying store's batch semantics.
func (g *RadiusGroup) BeforeDelete(tx *gorm.DB) error {
	if g.ID == 0 {
		return nil
	}

	var stored RadiusGroup
	if err := tx.Select("is_default", "name").First(&stored, g.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		return err
	}

	if stored.Default {
		return fmt.Errorf("default group %q: %w", stored.Name, ErrProtectedDelete)
	}

	return nil
}

// String returns the group name.
func (g RadiusGroup) String() string {
	return g.Name
}
