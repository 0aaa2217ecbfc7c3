package models

import "time"

// Nas is a FreeRADIUS nas table row: a network access server allowed to talk
// to the RADIUS server, identified by name.
type Nas struct {
	// ID is the unique identifier for the NAS.
	ID uint `gorm:"primaryKey"`
	// OrganizationID is the ID of the owning organization.
	OrganizationID uint `gorm:"column:organization_id;not null;index"`
	// Organization is the owning organization.
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	// Name is the NAS name, typically its IP address or hostname.
	Name string `gorm:"size:128;not null"`
	// ShortName is a friendly alias for the NAS.
	ShortName string `gorm:"column:short_name;size:32"`
	// Type is the NAS vendor type.
	Type string `gorm:"size:30;default:'other'"`
	// Ports is the number of ports the NAS exposes.
	Ports *int
	// Secret is the shared RADIUS secret for this NAS.
	Secret string `gorm:"size:60;not null"`
	// Server is the virtual server this NAS maps to.
	Server string `gorm:"size:64"`
	// Community is the SNMP community string.
	Community string `gorm:"size:50"`
	// Description provides a human-readable explanation of the NAS entry.
	Description string `gorm:"size:200"`
	// CreatedAt is the timestamp when the NAS was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the NAS was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Nas model.
func (Nas) TableName() string {
	return "nas"
}

// String returns the NAS name.
func (n Nas) String() string {
	return n.Name
}
