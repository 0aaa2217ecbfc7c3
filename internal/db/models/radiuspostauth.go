package models

import "time"

// RadiusPostAuth is a FreeRADIUS post-auth log row recording the outcome of
// an authentication attempt.
type RadiusPostAuth struct {
	// ID is the unique identifier for the post-auth row.
	ID uint `gorm:"primaryKey"`
	// OrganizationID is the ID of the owning organization.
	OrganizationID uint `gorm:"column:organization_id;not null;index"`
	// Organization is the owning organization.
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	// Username is the username presented in the request.
	Username string `gorm:"size:150;index;not null"`
	// Password is the password presented in the request, as logged by the
	// RADIUS server.
	Password string `gorm:"size:64"`
	// Reply is the RADIUS reply code (e.g. Access-Accept).
	Reply string `gorm:"size:32;not null"`
	// CalledStationID identifies the called station.
	CalledStationID string `gorm:"column:called_station_id;size:50"`
	// CallingStationID identifies the calling station.
	CallingStationID string `gorm:"column:calling_station_id;size:50"`
	// Date is when the attempt happened.
	Date time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for the RadiusPostAuth model.
func (RadiusPostAuth) TableName() string {
	return "radpostauth"
}

// String returns the username of the attempt.
func (p RadiusPostAuth) String() string {
	return p.Username
}
