package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/config"
	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/controller/organization"
	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/models"
)

func seed(_ *config.Config, db *gorm.DB) {
	// Seed the initial organization if none exists. Creating it also
	// provisions its default RADIUS groups and baseline checks.

	var count int64
	db.Model(&models.Organization{}).Count(&count)
	if count == 0 {
		org := models.Organization{
			Name: "default",
			Slug: "default",
		}

		if err := organization.Create(db, &org); err != nil {
			log.Error().Err(err).Msg("failed to seed default organization")
		}
	}
}
