package models

import (
	"time"

	"gorm.io/gorm"
)

// RadiusReply is a FreeRADIUS rad_reply row: an attribute/op/value triple
// returned to the NAS on successful authorization. Addressing and username
// projection follow the same rules as RadiusCheck.
type RadiusReply struct {
	// ID is the unique identifier for the reply.
	ID uint `gorm:"primaryKey"`
	// OrganizationID is the ID of the owning organization.
	OrganizationID uint `gorm:"column:organization_id;not null;index"`
	// Organization is the owning organization.
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	// UserID references the owning user, if any.
	UserID *uint64 `gorm:"column:user_id;index"`
	// User is the owning user.
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Username is the flat key, derived from User when UserID is set.
	Username string `gorm:"size:150;index;not null"`
	// Attribute is the RADIUS reply attribute name.
	Attribute string `gorm:"size:64;not null"`
	// Op is the attribute operator.
	Op string `gorm:"size:2;not null;default:'='"`
	// Value is the attribute value.
	Value string `gorm:"size:253;not null"`
	// CreatedAt is the timestamp when the reply was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the reply was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the RadiusReply model.
func (RadiusReply) TableName() string {
	return "radreply"
}

// BeforeSave projects the owning user's username into the flat key and
// rejects rows with neither a user reference nor a username.
func (r *RadiusReply) BeforeSave(tx *gorm.DB) error {
	return projectUsername(tx, r.UserID, &r.Username)
}

// String returns the flat username key of the reply.
func (r RadiusReply) String() string {
	return r.Username
}
