// Package radiusbatch provisions RADIUS user accounts in bulk and guarantees
// atomic, fully reversible deletion of everything a batch created.
package radiusbatch

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/controller/user"
	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/models"
	"github.com/GoRadius-Admin/GoRadius-Admin/internal/uniuri"
)

const (
	// ChunkSize bounds the number of users inserted per statement. Chunks run
	// inside one outer transaction, so the all-or-nothing guarantee holds
	// across them.
	ChunkSize = 100

	// suffixLength is the length of the random username suffix for the
	// prefix strategy.
	suffixLength = 8
	// passwordLength is the length of generated plaintext passwords.
	passwordLength = 12
	// maxSuffixAttempts bounds suffix regeneration on username collisions.
	maxSuffixAttempts = 5
)

var (
	// ErrBatchNotFound is returned when a batch is not found.
	ErrBatchNotFound = errors.New("radius batch not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Credential is one (username, password) pair from an external batch import
// source. Parsing the source format is the importer's concern.
type Credential struct {
	Username string
	Password string
}

// Create creates a batch record. Strategy validation runs in the model hook.
func Create(db *gorm.DB, b *models.RadiusBatch) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(b).Error
}

// Get retrieves a batch by ID.
func Get(db *gorm.DB, id uint) (*models.RadiusBatch, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var b models.RadiusBatch
	result := db.First(&b, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}

		return nil, result.Error
	}

	return &b, nil
}

// PrefixAdd provisions n users named "<prefix>-<token>" with generated
// passwords, all inside one transaction: if any creation fails, no account is
// left behind. Returns the created users with their plaintext passwords in
// the Password field replaced by the stored hash; the generated plaintexts
// are returned separately.
func PrefixAdd(db *gorm.DB, b *models.RadiusBatch, n int) ([]models.User, map[string]string, error) {
	if db == nil {
		return nil, nil, ErrDBNil
	}

	if b.Strategy != models.BatchStrategyPrefix {
		verr := models.NewValidationError()
		verr.Add("strategy", "batch strategy is not prefix")

		return nil, nil, verr
	}

	if n <= 0 {
		verr := models.NewValidationError()
		verr.Add("number_of_users", "number of users must be positive")

		return nil, nil, verr
	}

	users := make([]models.User, 0, n)
	passwords := make(map[string]string, n)

	err := db.Transaction(func(tx *gorm.DB) error {
		for created := 0; created < n; created += ChunkSize {
			size := min(ChunkSize, n-created)

			chunk := make([]models.User, 0, size)
			for i := 0; i < size; i++ {
				username, err := uniqueUsername(tx, b.Prefix)
				if err != nil {
					return err
				}

				password := uniuri.NewLen(passwordLength)
				passwords[username] = password

				chunk = append(chunk, models.User{
					Username: username,
					Password: models.HashPassword(password),
					Active:   true,
				})
			}

			if err := tx.Create(&chunk).Error; err != nil {
				return err
			}

			if err := tx.Model(b).Association("Users").Append(&chunk); err != nil {
				return err
			}

			users = append(users, chunk...)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.Info().Str("batch", b.Name).Int("users", len(users)).Msg("provisioned prefix batch")

	return users, passwords, nil
}

// CsvAdd provisions one user per credential under the same all-or-nothing
// guarantee as PrefixAdd.
func CsvAdd(db *gorm.DB, b *models.RadiusBatch, credentials []Credential) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if b.Strategy != models.BatchStrategyCsv {
		verr := models.NewValidationError()
		verr.Add("strategy", "batch strategy is not csv")

		return nil, verr
	}

	users := make([]models.User, 0, len(credentials))

	err := db.Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(credentials); start += ChunkSize {
			end := min(start+ChunkSize, len(credentials))

			chunk := make([]models.User, 0, end-start)
			for _, cred := range credentials[start:end] {
				if cred.Username == "" {
					verr := models.NewValidationError()
					verr.Add("username", "username cannot be empty")

					return verr
				}

				chunk = append(chunk, models.User{
					Username: cred.Username,
					Password: models.HashPassword(cred.Password),
					Active:   true,
				})
			}

			if err := tx.Create(&chunk).Error; err != nil {
				return err
			}

			if err := tx.Model(b).Association("Users").Append(&chunk); err != nil {
				return err
			}

			users = append(users, chunk...)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("batch", b.Name).Int("users", len(users)).Msg("provisioned csv batch")

	return users, nil
}

// Delete removes the batch and every user it provisioned, cascading through
// the normal ownership rules to their checks, replies and memberships. One
// transaction; zero orphans.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var b models.RadiusBatch
		if err := tx.First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBatchNotFound
			}

			return err
		}

		return DeleteTx(tx, &b)
	})
}

// DeleteTx removes the batch and its users within the caller's transaction.
// Used by the organization controller when a tenant is deleted.
func DeleteTx(tx *gorm.DB, b *models.RadiusBatch) error {
	var provisioned []models.User
	if err := tx.Model(b).Association("Users").Find(&provisioned); err != nil {
		return err
	}

	if err := tx.Model(b).Association("Users").Clear(); err != nil {
		return err
	}

	for i := range provisioned {
		if err := user.DeleteTx(tx, &provisioned[i]); err != nil {
			return err
		}
	}

	if err := tx.Delete(b).Error; err != nil {
		return err
	}

	log.Info().Str("batch", b.Name).Int("users", len(provisioned)).Msg("deleted batch")

	return nil
}

// uniqueUsername generates a prefixed username that does not collide with an
// existing one, regenerating the suffix a bounded number of times.
func uniqueUsername(tx *gorm.DB, prefix string) (string, error) {
	for attempt := 0; attempt < maxSuffixAttempts; attempt++ {
		username := fmt.Sprintf("%s-%s", prefix, uniuri.NewLen(suffixLength))

		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return "", err
		}

		if count == 0 {
			return username, nil
		}
	}

	return "", fmt.Errorf("could not generate a unique username for prefix %q", prefix)
}
