// Package radiusgroup provides CRUD operations for RADIUS groups and their
// check/reply attributes. It owns the groupname rename cascade and the
// protected deletion of an organization's default group.
package radiusgroup

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/models"
)

const groupIDQueryPattern = "group_id = ?"

var (
	// ErrGroupNotFound is returned when a group is not found.
	ErrGroupNotFound = errors.New("radius group not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}

	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Create creates a group. Name prefixing and the default-group demotion sweep
// run in the model hooks within the insert transaction.
func Create(db *gorm.DB, g *models.RadiusGroup) error {
	if db == nil {
		return ErrDBNil
	}

	if err := db.Create(g).Error; err != nil {
		return err
	}

	if g.Default {
		log.Info().Str("group", g.Name).Uint("org", g.OrganizationID).Msg("default group changed")
	}

	return nil
}

// Get retrieves a group by ID.
func Get(db *gorm.DB, id uint) (*models.RadiusGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var g models.RadiusGroup
	result := db.First(&g, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}

		return nil, result.Error
	}

	return &g, nil
}

// GetByName retrieves a group by its (already prefixed) name.
func GetByName(db *gorm.DB, name string) (*models.RadiusGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var g models.RadiusGroup
	result := db.Where("name = ?", name).First(&g)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}

		return nil, result.Error
	}

	return &g, nil
}

// GetDefault retrieves the default group of an organization. Returns
// ErrGroupNotFound if the organization currently has none.
func GetDefault(db *gorm.DB, organizationID uint) (*models.RadiusGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var g models.RadiusGroup
	result := db.Where("organization_id = ? AND is_default = ?", organizationID, true).First(&g)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}

		return nil, result.Error
	}

	return &g, nil
}

// Update persists changes to a group. A name change cascades to every
// dependent radgroupcheck/radgroupreply/radusergroup row in the same
// transaction. The group row is locked while the cascade runs.
func Update(db *gorm.DB, g *models.RadiusGroup) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var stored models.RadiusGroup
		if err := lockForUpdate(tx).First(&stored, g.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}

			return err
		}

		// Save runs the model hooks, which may re-prefix the name.
		if err := tx.Save(g).Error; err != nil {
			return err
		}

		if stored.Name != g.Name {
			return propagateRename(tx, g.ID, stored.Name, g.Name)
		}

		return nil
	})
}

// Rename changes the group name within the caller's transaction, cascading to
// dependent rows. Used by the organization controller when a slug change
// re-prefixes every group of the tenant.
func Rename(tx *gorm.DB, g *models.RadiusGroup, newName string) error {
	oldName := g.Name
	g.Name = newName

	if err := tx.Save(g).Error; err != nil {
		return err
	}

	if oldName == g.Name {
		return nil
	}

	return propagateRename(tx, g.ID, oldName, g.Name)
}

// propagateRename rewrites the denormalized groupname on every row owned by
// the group.
func propagateRename(tx *gorm.DB, id uint, oldName, newName string) error {
	var updated int64

	for _, model := range []interface{}{
		&models.RadiusGroupCheck{},
		&models.RadiusGroupReply{},
		&models.RadiusUserGroup{},
	} {
		result := tx.Model(model).
			Where(groupIDQueryPattern, id).
			UpdateColumn("groupname", newName)
		if result.Error != nil {
			return result.Error
		}

		updated += result.RowsAffected
	}

	log.Debug().
		Str("old", oldName).
		Str("new", newName).
		Int64("rows", updated).
		Msg("propagated groupname rename")

	return nil
}

// CreateCheck adds a check attribute to a group. Groupname projection and the
// value transform pipeline run in the model hooks.
func CreateCheck(db *gorm.DB, c *models.RadiusGroupCheck) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(c).Error
}

// CreateReply adds a reply attribute to a group.
func CreateReply(db *gorm.DB, r *models.RadiusGroupReply) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(r).Error
}

// Delete removes a group and its dependent rows. Deleting the current default
// group fails with models.ErrProtectedDelete; the caller must designate a new
// default first.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var g models.RadiusGroup
		if err := tx.First(&g, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}

			return err
		}

		// BeforeDelete rejects the default group before any row is touched.
		if err := tx.Delete(&g).Error; err != nil {
			return err
		}

		return deleteDependents(tx, []uint{g.ID})
	})
}

// DeleteAll bulk-deletes groups, skipping per-instance delete protection:
// default groups vanish with the rest, and the invariant is not retroactively
// enforced. A zero organizationID removes the groups of every organization.
func DeleteAll(db *gorm.DB, organizationID uint) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.RadiusGroup{})
		if organizationID != 0 {
			query = query.Where("organization_id = ?", organizationID)
		}

		var ids []uint
		if err := query.Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) == 0 {
			return nil
		}

		if err := deleteDependents(tx, ids); err != nil {
			return err
		}

		return tx.Session(&gorm.Session{SkipHooks: true, AllowGlobalUpdate: organizationID == 0}).
			Where("id IN ?", ids).
			Delete(&models.RadiusGroup{}).Error
	})
}

// deleteDependents removes the check/reply/membership rows owned by the given
// groups.
func deleteDependents(tx *gorm.DB, ids []uint) error {
	for _, model := range []interface{}{
		&models.RadiusGroupCheck{},
		&models.RadiusGroupReply{},
		&models.RadiusUserGroup{},
	} {
		if err := tx.Where("group_id IN ?", ids).Delete(model).Error; err != nil {
			return err
		}
	}

	return nil
}
