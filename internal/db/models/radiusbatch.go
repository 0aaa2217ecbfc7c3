package models

import (
	"time"

	"gorm.io/gorm"
)

// BatchStrategy selects how a RadiusBatch provisions its user accounts.
type BatchStrategy string

const (
	// BatchStrategyPrefix generates usernames from a common prefix plus a
	// random per-user suffix.
	BatchStrategyPrefix BatchStrategy = "prefix"
	// BatchStrategyCsv creates users from an externally supplied list of
	// username/password pairs.
	BatchStrategyCsv BatchStrategy = "csv"
)

// RadiusBatch is a bulk provisioning job. It records the strategy used and
// owns every user account it created: deleting the batch deletes those users
// and, through the normal ownership rules, their checks, replies and group
// memberships.
type RadiusBatch struct {
	// ID is the unique identifier for the batch.
	ID uint `gorm:"primaryKey"`
	// OrganizationID is the ID of the owning organization.
	OrganizationID uint `gorm:"column:organization_id;not null;index"`
	// Organization is the owning organization.
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	// Name identifies the batch within its organization.
	Name string `gorm:"size:128;not null"`
	// Strategy selects prefix or csv provisioning. The two are mutually
	// exclusive.
	Strategy BatchStrategy `gorm:"type:varchar(16);not null"`
	// Prefix is the username prefix for the prefix strategy.
	Prefix string `gorm:"size:64"`
	// Csvfile references the external row source for the csv strategy.
	Csvfile string `gorm:"size:255"`
	// ExpirationDate is when accounts provisioned by this batch expire.
	ExpirationDate *time.Time `gorm:"column:expiration_date"`
	// Users are the accounts this batch provisioned.
	Users []User `gorm:"many2many:radbatch_users;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the batch was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the batch was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the RadiusBatch model.
func (RadiusBatch) TableName() string {
	return "radbatch"
}

// BeforeSave validates the strategy and its required field. Supplying both
// prefix and csvfile is rejected regardless of the declared strategy.
func (b *RadiusBatch) BeforeSave(_ *gorm.DB) error {
	verr := NewValidationError()

	if b.Prefix != "" && b.Csvfile != "" {
		verr.Add("strategy", "Mixing the prefix and csv strategies is not allowed")
		return verr
	}

	switch b.Strategy {
	case BatchStrategyPrefix:
		if b.Prefix == "" {
			verr.Add("prefix", "prefix is required for the prefix strategy")
		}
	case BatchStrategyCsv:
		if b.Csvfile == "" {
			verr.Add("csvfile", "csvfile is required for the csv strategy")
		}
	default:
		verr.Add("strategy", "strategy must be one of: prefix, csv")
	}

	if !verr.Empty() {
		return verr
	}

	return nil
}

// String returns the batch name.
func (b RadiusBatch) String() string {
	return b.Name
}
