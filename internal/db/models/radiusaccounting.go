package models

import (
	"net/netip"
	"time"

	"gorm.io/gorm"
)

// RadiusAccounting is a FreeRADIUS radacct row: one record per RADIUS
// session, written by the accounting server and kept here for reporting.
// Sessions are identified by their unique accounting ID.
type RadiusAccounting struct {
	// ID is the unique identifier for the accounting row.
	ID uint `gorm:"primaryKey;column:radacctid"`
	// OrganizationID is the ID of the owning organization.
	OrganizationID uint `gorm:"column:organization_id;not null;index"`
	// Organization is the owning organization.
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	// UniqueID is the accounting unique session identifier.
	UniqueID string `gorm:"column:unique_id;unique;size:32;not null"`
	// SessionID is the NAS-assigned accounting session identifier.
	SessionID string `gorm:"column:session_id;size:64;not null;index"`
	// Username is the authenticated username for the session.
	Username string `gorm:"size:150;index"`
	// Groupname is the RADIUS group applied to the session, if any.
	Groupname string `gorm:"size:255"`
	// Realm is the authentication realm.
	Realm string `gorm:"size:64"`
	// NASIPAddress is the IPv4 address of the NAS originating the session.
	NASIPAddress string `gorm:"column:nas_ip_address;size:15;not null"`
	// NASPortID is the NAS port identifier.
	NASPortID string `gorm:"column:nas_port_id;size:50"`
	// NASPortType is the NAS port type.
	NASPortType string `gorm:"column:nas_port_type;size:32"`
	// StartTime is when the session started.
	StartTime *time.Time `gorm:"column:start_time"`
	// UpdateTime is when the session counters were last updated.
	UpdateTime *time.Time `gorm:"column:update_time"`
	// StopTime is when the session ended; nil while the session is open.
	StopTime *time.Time `gorm:"column:stop_time"`
	// SessionTime is the session duration in seconds.
	SessionTime uint64 `gorm:"column:session_time;default:0"`
	// InputOctets counts bytes received from the user.
	InputOctets uint64 `gorm:"column:input_octets;default:0"`
	// OutputOctets counts bytes sent to the user.
	OutputOctets uint64 `gorm:"column:output_octets;default:0"`
	// CalledStationID identifies the called station (e.g. AP MAC).
	CalledStationID string `gorm:"column:called_station_id;size:50"`
	// CallingStationID identifies the calling station (e.g. client MAC).
	CallingStationID string `gorm:"column:calling_station_id;size:50"`
	// TerminateCause records why the session ended.
	TerminateCause string `gorm:"column:terminate_cause;size:32"`
	// ServiceType is the RADIUS Service-Type of the session.
	ServiceType string `gorm:"column:service_type;size:32"`
	// FramedProtocol is the framing protocol of the session.
	FramedProtocol string `gorm:"column:framed_protocol;size:32"`
	// FramedIPAddress is the IPv4 address assigned to the user.
	FramedIPAddress string `gorm:"column:framed_ip_address;size:15"`
	// FramedIPv6Address is the IPv6 address assigned to the user.
	FramedIPv6Address string `gorm:"column:framed_ipv6_address;size:45"`
	// FramedIPv6Prefix is the IPv6 prefix assigned to the user. Must be a
	// proper IPv6 CIDR prefix; bare addresses and IPv4 ranges are rejected.
	FramedIPv6Prefix string `gorm:"column:framed_ipv6_prefix;size:49"`
	// DelegatedIPv6Prefix is the IPv6 prefix delegated to the user, with the
	// same validation as FramedIPv6Prefix.
	DelegatedIPv6Prefix string `gorm:"column:delegated_ipv6_prefix;size:49"`
}

// TableName specifies the database table name for the RadiusAccounting model.
func (RadiusAccounting) TableName() string {
	return "radacct"
}

// BeforeSave validates the IPv6 prefix fields.
func (a *RadiusAccounting) BeforeSave(_ *gorm.DB) error {
	verr := NewValidationError()

	if a.FramedIPv6Prefix != "" && !validIPv6Prefix(a.FramedIPv6Prefix) {
		verr.Add("framed_ipv6_prefix", "value must be a valid IPv6 prefix")
	}

	if a.DelegatedIPv6Prefix != "" && !validIPv6Prefix(a.DelegatedIPv6Prefix) {
		verr.Add("delegated_ipv6_prefix", "value must be a valid IPv6 prefix")
	}

	if !verr.Empty() {
		return verr
	}

	return nil
}

// validIPv6Prefix reports whether s is a well-formed IPv6 CIDR prefix.
// Bare addresses (no prefix length) and IPv4-style CIDR ranges fail.
func validIPv6Prefix(s string) bool {
	prefix, err := netip.ParsePrefix(s)
	if err != nil {
		return false
	}

	return prefix.Addr().Is6() && !prefix.Addr().Is4In6()
}

// String returns the accounting unique session identifier.
func (a RadiusAccounting) String() string {
	return a.UniqueID
}
