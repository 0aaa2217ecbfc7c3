package config

import (
	"github.com/GoRadius-Admin/GoRadius-Admin/internal/logger"
)

// Radius holds the RADIUS provisioning defaults.
type Radius struct {
	// SessionTimeLimit is the Max-Daily-Session value provisioned on new
	// default groups, in seconds.
	SessionTimeLimit string
	// SessionTrafficLimit is the Max-Daily-Session-Traffic value provisioned
	// on new default groups, in bytes.
	SessionTrafficLimit string
}

// Config overall data structure.
type Config struct {
	DevMode bool // enable dev mode for development
	DB      DB
	Log     logger.Log
	Radius  Radius
	Title   string
}
