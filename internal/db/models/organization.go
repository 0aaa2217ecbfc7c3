package models

import (
	"time"
)

// Organization is the tenant that scopes all RADIUS records. Every group,
// check, reply and accounting session belongs to exactly one organization and
// is removed with it. The slug doubles as the prefix of the organization's
// group names, so renames must go through the organization controller to keep
// those prefixes and their dependent rows consistent.
type Organization struct {
	// ID is the unique identifier for the organization.
	ID uint `gorm:"primaryKey"`
	// Name is the display name of the organization.
	Name string `gorm:"size:100;not null"`
	// Slug is the unique, URL-safe short name. Group names derived for this
	// organization are prefixed with "<slug>-".
	Slug string `gorm:"unique;size:100;not null"`
	// CreatedAt is the timestamp when the organization was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the organization was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Organization model.
func (Organization) TableName() string {
	return "organizations"
}

// OrganizationUser is the membership edge between a User and an Organization.
// Creating one through the organization controller also grants the
// organization's current default RADIUS group to the user.
type OrganizationUser struct {
	// UserID is the ID of the member user.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// OrganizationID is the ID of the organization.
	OrganizationID uint `gorm:"primaryKey;column:organization_id"`
	// User is the associated user.
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Organization is the associated organization.
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the membership was granted (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the OrganizationUser model.
func (OrganizationUser) TableName() string {
	return "organization_users"
}
