// Package organization provides CRUD operations for tenants and the
// auto-provisioning that ties a tenant's lifecycle to its RADIUS groups:
// group creation with baseline checks on tenant creation, default-group
// membership grants on user addition, and the transitive rename cascade on
// slug changes.
package organization

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/controller/radiusbatch"
	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/controller/radiusgroup"
	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/models"
)

const (
	// SessionTimeAttribute is the check attribute limiting session time.
	SessionTimeAttribute = "Max-Daily-Session"
	// SessionTrafficAttribute is the check attribute limiting session traffic.
	SessionTrafficAttribute = "Max-Daily-Session-Traffic"

	// DefaultSessionTimeLimit is the baseline session time limit in seconds.
	DefaultSessionTimeLimit = "10800"
	// DefaultSessionTrafficLimit is the baseline session traffic limit in bytes.
	DefaultSessionTrafficLimit = "3000000000"

	organizationIDQueryPattern = "organization_id = ?"
)

var (
	// ErrOrganizationNotFound is returned when an organization is not found.
	ErrOrganizationNotFound = errors.New("organization not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// SessionTimeLimit is the value provisioned for SessionTimeAttribute on
	// new default groups. Overridable from configuration at startup.
	SessionTimeLimit = DefaultSessionTimeLimit //nolint:gochecknoglobals
	// SessionTrafficLimit is the value provisioned for
	// SessionTrafficAttribute on new default groups.
	SessionTrafficLimit = DefaultSessionTrafficLimit //nolint:gochecknoglobals
)

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}

	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Create creates an organization and provisions its two RADIUS groups in one
// transaction: "<slug>-users" as the default group carrying the baseline
// session time and traffic checks, and "<slug>-power-users" with no checks.
func Create(db *gorm.DB, org *models.Organization) error {
	if db == nil {
		return ErrDBNil
	}

	verr := models.NewValidationError()
	if strings.TrimSpace(org.Name) == "" {
		verr.Add("name", "name cannot be empty")
	}

	if strings.TrimSpace(org.Slug) == "" {
		verr.Add("slug", "slug cannot be empty")
	}

	if !verr.Empty() {
		return verr
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		users := models.RadiusGroup{
			OrganizationID: org.ID,
			Name:           fmt.Sprintf("%s-users", org.Slug),
			Description:    "Default group",
			Default:        true,
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		baseline := []models.RadiusGroupCheck{
			{GroupID: &users.ID, Attribute: SessionTimeAttribute, Op: ":=", Value: SessionTimeLimit},
			{GroupID: &users.ID, Attribute: SessionTrafficAttribute, Op: ":=", Value: SessionTrafficLimit},
		}
		for i := range baseline {
			if err := tx.Create(&baseline[i]).Error; err != nil {
				return err
			}
		}

		powerUsers := models.RadiusGroup{
			OrganizationID: org.ID,
			Name:           fmt.Sprintf("%s-power-users", org.Slug),
			Description:    "Group with no limitations",
		}

		return tx.Create(&powerUsers).Error
	})
	if err != nil {
		return err
	}

	log.Info().Str("slug", org.Slug).Msg("organization created with default groups")

	return nil
}

// Get retrieves an organization by ID.
func Get(db *gorm.DB, id uint) (*models.Organization, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var org models.Organization
	result := db.First(&org, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}

		return nil, result.Error
	}

	return &org, nil
}

// GetBySlug retrieves an organization by slug.
func GetBySlug(db *gorm.DB, slug string) (*models.Organization, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var org models.Organization
	result := db.Where("slug = ?", slug).First(&org)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}

		return nil, result.Error
	}

	return &org, nil
}

// Rename changes an organization's name and slug. A slug change re-prefixes
// every group of the tenant (replacing only the prefix segment), which in
// turn cascades to each group's dependent check/reply/membership rows, all in
// one transaction.
func Rename(db *gorm.DB, id uint, name, slug string) (*models.Organization, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	verr := models.NewValidationError()
	if strings.TrimSpace(name) == "" {
		verr.Add("name", "name cannot be empty")
	}

	if strings.TrimSpace(slug) == "" {
		verr.Add("slug", "slug cannot be empty")
	}

	if !verr.Empty() {
		return nil, verr
	}

	var org models.Organization

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&org, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrganizationNotFound
			}

			return err
		}

		oldSlug := org.Slug
		org.Name = name
		org.Slug = slug

		if err := tx.Save(&org).Error; err != nil {
			return err
		}

		if oldSlug == slug {
			return nil
		}

		var groups []models.RadiusGroup
		if err := tx.Where(organizationIDQueryPattern, org.ID).Find(&groups).Error; err != nil {
			return err
		}

		for i := range groups {
			newName := groups[i].Name
			if strings.HasPrefix(newName, oldSlug+"-") {
				newName = slug + strings.TrimPrefix(newName, oldSlug)
			}

			if err := radiusgroup.Rename(tx, &groups[i], newName); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &org, nil
}

// AddUser adds a user to the organization. If the organization has a default
// group and the user holds no group membership yet, the default group is
// granted at priority 1 within the same transaction.
func AddUser(db *gorm.DB, organizationID uint, userID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		membership := models.OrganizationUser{
			OrganizationID: organizationID,
			UserID:         userID,
		}
		if err := tx.FirstOrCreate(&membership, membership).Error; err != nil {
			return err
		}

		var existing int64
		err := tx.Model(&models.RadiusUserGroup{}).
			Where("user_id = ?", userID).
			Count(&existing).Error
		if err != nil {
			return err
		}

		if existing > 0 {
			return nil
		}

		var defaultGroup models.RadiusGroup
		err = tx.Where("organization_id = ? AND is_default = ?", organizationID, true).
			First(&defaultGroup).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}

			return err
		}

		userGroup := models.RadiusUserGroup{
			UserID:   &userID,
			GroupID:  &defaultGroup.ID,
			Priority: 1,
		}

		return tx.Create(&userGroup).Error
	})
}

// Delete removes an organization and everything it owns: groups with their
// attributes and memberships, checks, replies, accounting rows, post-auth
// rows, NAS entries, batches with their provisioned users, and the
// organization's user memberships.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var org models.Organization
		if err := tx.First(&org, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrganizationNotFound
			}

			return err
		}

		var batches []models.RadiusBatch
		if err := tx.Where(organizationIDQueryPattern, id).Find(&batches).Error; err != nil {
			return err
		}

		for i := range batches {
			if err := radiusbatch.DeleteTx(tx, &batches[i]); err != nil {
				return err
			}
		}

		var groupIDs []uint
		err := tx.Model(&models.RadiusGroup{}).
			Where(organizationIDQueryPattern, id).
			Pluck("id", &groupIDs).Error
		if err != nil {
			return err
		}

		if len(groupIDs) > 0 {
			for _, model := range []interface{}{
				&models.RadiusGroupCheck{},
				&models.RadiusGroupReply{},
				&models.RadiusUserGroup{},
			} {
				if err = tx.Where("group_id IN ?", groupIDs).Delete(model).Error; err != nil {
					return err
				}
			}

			err = tx.Session(&gorm.Session{SkipHooks: true}).
				Where("id IN ?", groupIDs).
				Delete(&models.RadiusGroup{}).Error
			if err != nil {
				return err
			}
		}

		for _, model := range []interface{}{
			&models.RadiusCheck{},
			&models.RadiusReply{},
			&models.RadiusAccounting{},
			&models.RadiusPostAuth{},
			&models.Nas{},
			&models.OrganizationUser{},
		} {
			if err = tx.Where(organizationIDQueryPattern, id).Delete(model).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&org).Error
	})
}
