// Package user provides CRUD operations for RADIUS user accounts, including
// the rename cascade that keeps denormalized username columns in sync.
package user

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/models"
)

const usernameQueryPattern = "username = ?"

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// lockForUpdate takes a row lock so concurrent renames of the same user are
// serialized. SQLite has no FOR UPDATE; its writer lock already serializes.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}

	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Create creates a new user. A non-empty password is hashed before storage.
func Create(db *gorm.DB, u *models.User, password string) error {
	if db == nil {
		return ErrDBNil
	}

	if strings.TrimSpace(u.Username) == "" {
		verr := models.NewValidationError()
		verr.Add("username", "username cannot be empty")

		return verr
	}

	if password != "" {
		u.SetPassword(password)
	}

	return db.Create(u).Error
}

// Get retrieves a user by ID.
func Get(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.First(&u, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &u, nil
}

// GetByUsername retrieves a user by username.
func GetByUsername(db *gorm.DB, username string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.Where(usernameQueryPattern, username).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &u, nil
}

// Rename changes a user's username and updates every dependent flat-keyed
// row (checks, replies, group memberships) in the same transaction, so no
// reader ever observes a stale username after commit. The user row is locked
// for the duration of the cascade.
func Rename(db *gorm.DB, id uint64, newUsername string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if strings.TrimSpace(newUsername) == "" {
		verr := models.NewValidationError()
		verr.Add("username", "username cannot be empty")

		return nil, verr
	}

	var u models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}

			return err
		}

		if u.Username == newUsername {
			return nil
		}

		oldUsername := u.Username
		u.Username = newUsername

		if err := tx.Save(&u).Error; err != nil {
			return err
		}

		return propagateRename(tx, u.ID, oldUsername, newUsername)
	})
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// propagateRename rewrites the denormalized username on every row owned by
// the user. UpdateColumn skips hooks; the projection would recompute the same
// value anyway.
func propagateRename(tx *gorm.DB, id uint64, oldUsername, newUsername string) error {
	var updated int64

	for _, model := range []interface{}{
		&models.RadiusCheck{},
		&models.RadiusReply{},
		&models.RadiusUserGroup{},
	} {
		result := tx.Model(model).
			Where("user_id = ?", id).
			UpdateColumn("username", newUsername)
		if result.Error != nil {
			return result.Error
		}

		updated += result.RowsAffected
	}

	log.Debug().
		Str("old", oldUsername).
		Str("new", newUsername).
		Int64("rows", updated).
		Msg("propagated username rename")

	return nil
}

// SetPassword hashes and stores a new password for the user.
func SetPassword(db *gorm.DB, id uint64, password string) error {
	if db == nil {
		return ErrDBNil
	}

	var u models.User
	if err := db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}

		return err
	}

	u.SetPassword(password)

	return db.Save(&u).Error
}

// Delete removes a user together with its checks, replies, group and
// organization memberships in one transaction.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}

			return err
		}

		return DeleteTx(tx, &u)
	})
}

// DeleteTx removes the user and its dependent rows within the caller's
// transaction. Used by the batch controller for cascading batch deletion.
func DeleteTx(tx *gorm.DB, u *models.User) error {
	for _, model := range []interface{}{
		&models.RadiusCheck{},
		&models.RadiusReply{},
		&models.RadiusUserGroup{},
	} {
		if err := tx.Where("user_id = ?", u.ID).Delete(model).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("user_id = ?", u.ID).Delete(&models.OrganizationUser{}).Error; err != nil {
		return err
	}

	if err := tx.Exec("DELETE FROM radbatch_users WHERE user_id = ?", u.ID).Error; err != nil {
		return err
	}

	return tx.Delete(u).Error
}
