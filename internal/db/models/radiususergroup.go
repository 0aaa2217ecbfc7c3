package models

import (
	"time"

	"gorm.io/gorm"
)

// RadiusUserGroup is a FreeRADIUS rad_usergroup row: the membership edge
// between a user and a group, ordered by priority. Both flat keys are
// denormalized projections of the owning entities and are kept in lockstep by
// the rename cascades in the user and group controllers.
type RadiusUserGroup struct {
	// ID is the unique identifier for the membership.
	ID uint `gorm:"primaryKey"`
	// UserID references the member user, if any.
	UserID *uint64 `gorm:"column:user_id;index"`
	// User is the member user.
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// GroupID references the group, if any.
	GroupID *uint `gorm:"column:group_id;index"`
	// Group is the group.
	Group *RadiusGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// Username is the flat user key, derived from User when UserID is set.
	Username string `gorm:"size:150;index;not null"`
	// Groupname is the flat group key, derived from Group when GroupID is set.
	Groupname string `gorm:"size:255;index;not null"`
	// Priority orders a user's groups; lower values win.
	Priority int `gorm:"not null;default:1"`
	// CreatedAt is the timestamp when the membership was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the membership was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the RadiusUserGroup model.
func (RadiusUserGroup) TableName() string {
	return "radusergroup"
}

// BeforeSave projects both flat keys from the owning entities. Both
// projections run so a row missing both references reports errors for every
// affected field.
func (ug *RadiusUserGroup) BeforeSave(tx *gorm.DB) error {
	verr := NewValidationError()

	if err := fold(verr, projectUsername(tx, ug.UserID, &ug.Username)); err != nil {
		return err
	}

	if err := fold(verr, projectGroupname(tx, ug.GroupID, &ug.Groupname)); err != nil {
		return err
	}

	if !verr.Empty() {
		return verr
	}

	return nil
}

// fold merges a projection ValidationError into verr, keeping field
// attribution; any other error is passed back unchanged.
func fold(verr *ValidationError, err error) error {
	if err == nil {
		return nil
	}

	inner, ok := AsValidationError(err)
	if !ok {
		return err
	}

	for field, messages := range inner.Fields {
		for _, message := range messages {
			verr.Add(field, message)
		}
	}

	return nil
}

// String returns the flat username key of the membership.
func (ug RadiusUserGroup) String() string {
	return ug.Username
}
