// Package daemon wires the database connection, schema migration and initial
// seed for the RADIUS management layer.
package daemon

import (
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/config"
	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/controller/organization"
	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/dsn"
	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/models"
)

// Daemon holds the live database handle of the management layer.
type Daemon struct {
	db *gorm.DB
}

// DB returns the database handle.
func (d *Daemon) DB() *gorm.DB {
	return d.db
}

// New opens the configured database, migrates the RADIUS schema and seeds the
// initial organization.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case "postgres":
		dialector = gormpostgres.Open(dsn.Create(cfg))
	case "sqlite":
		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		dialector = gormmysql.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationUser{},
		&models.RadiusGroup{},
		&models.RadiusGroupCheck{},
		&models.RadiusGroupReply{},
		&models.RadiusCheck{},
		&models.RadiusReply{},
		&models.RadiusUserGroup{},
		&models.RadiusAccounting{},
		&models.RadiusBatch{},
		&models.Nas{},
		&models.RadiusPostAuth{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	// provisioning defaults come from config
	if cfg.Radius.SessionTimeLimit != "" {
		organization.SessionTimeLimit = cfg.Radius.SessionTimeLimit
	}

	if cfg.Radius.SessionTrafficLimit != "" {
		organization.SessionTrafficLimit = cfg.Radius.SessionTrafficLimit
	}

	seed(cfg, db)

	return &Daemon{db: db}
}
