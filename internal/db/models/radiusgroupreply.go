package models

import (
	"time"

	"gorm.io/gorm"
)

// RadiusGroupReply is a FreeRADIUS radgroupreply row: an attribute/op/value
// triple returned for every member of a group. Groupname projection follows
// the same rules as RadiusGroupCheck.
type RadiusGroupReply struct {
	// ID is the unique identifier for the group reply.
	ID uint `gorm:"primaryKey"`
	// GroupID references the owning group, if any.
	GroupID *uint `gorm:"column:group_id;index"`
	// Group is the owning group.
	Group *RadiusGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// Groupname is the flat key, derived from Group when GroupID is set.
	Groupname string `gorm:"size:255;index;not null"`
	// Attribute is the RADIUS reply attribute name.
	Attribute string `gorm:"size:64;not null"`
	// Op is the attribute operator.
	Op string `gorm:"size:2;not null;default:'='"`
	// Value is the attribute value.
	Value string `gorm:"size:253;not null"`
	// CreatedAt is the timestamp when the group reply was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group reply was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the RadiusGroupReply model.
func (RadiusGroupReply) TableName() string {
	return "radgroupreply"
}

// BeforeSave projects the owning group's name into the flat key.
func (r *RadiusGroupReply) BeforeSave(tx *gorm.DB) error {
	return projectGroupname(tx, r.GroupID, &r.Groupname)
}

// String returns the flat groupname key of the group reply.
func (r RadiusGroupReply) String() string {
	return r.Groupname
}
