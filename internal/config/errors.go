package config

import (
	"errors"
)

var (
	// ErrUnknownGormEngine error if config db.gormEngine names an unsupported engine.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be one of mysql, postgres, sqlite")

	// ErrEmptyDBName error if config db.name is empty for a server based engine.
	ErrEmptyDBName = errors.New("toml config db.name can not be empty")
)
