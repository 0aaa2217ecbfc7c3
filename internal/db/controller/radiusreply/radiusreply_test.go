package radiusreply

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// In-memory SQLite gives every connection its own database.
	sqlDB.SetMaxOpenConns(1)

	// Migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.RadiusReply{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	u := models.User{Username: "alice"}
	require.NoError(t, db.Create(&u).Error)

	testCases := []struct {
		name             string
		reply            models.RadiusReply
		wantFields       []string
		expectedUsername string
	}{
		{
			name: "username derived from user",
			reply: models.RadiusReply{
				UserID:    &u.ID,
				Attribute: "Reply-Message",
				Op:        "=",
				Value:     "welcome",
			},
			expectedUsername: "alice",
		},
		{
			name: "plain username kept",
			reply: models.RadiusReply{
				Username:  "legacy-user",
				Attribute: "Reply-Message",
				Op:        "=",
				Value:     "welcome",
			},
			expectedUsername: "legacy-user",
		},
		{
			name: "neither user nor username",
			reply: models.RadiusReply{
				Attribute: "Reply-Message",
				Op:        "=",
				Value:     "welcome",
			},
			wantFields: []string{"user", "username"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Create(db, &tc.reply)

			if len(tc.wantFields) > 0 {
				verr, ok := models.AsValidationError(err)
				require.True(t, ok, "expected a validation error, got %v", err)

				for _, field := range tc.wantFields {
					assert.True(t, verr.HasField(field), "missing field %q", field)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedUsername, tc.reply.Username)
		})
	}
}

func TestListUpdateDelete(t *testing.T) {
	db := setupTestDB(t)

	reply := models.RadiusReply{Username: "alice", Attribute: "Reply-Message", Op: "=", Value: "hi"}
	require.NoError(t, Create(db, &reply))

	replies, err := ListByUsername(db, "alice")
	require.NoError(t, err)
	require.Len(t, replies, 1)

	reply.Value = "bye"
	require.NoError(t, Update(db, &reply))

	got, err := Get(db, reply.ID)
	require.NoError(t, err)
	assert.Equal(t, "bye", got.Value)

	require.NoError(t, Delete(db, reply.ID))

	_, err = Get(db, reply.ID)
	assert.ErrorIs(t, err, ErrReplyNotFound)
}
