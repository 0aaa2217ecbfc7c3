package radiusgroup

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
		&models.RadiusGroup{},
		&models.RadiusGroupCheck{},
		&models.RadiusGroupReply{},
		&models.RadiusUserGroup{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedOrganization inserts a tenant for group tests.
func seedOrganization(t *testing.T, db *gorm.DB, name, slug string) *models.Organization {
	t.Helper()

	org := models.Organization{Name: name, Slug: slug}
	require.NoError(t, db.Create(&org).Error, "failed to seed organization")

	return &org
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrganization(t, db, "ACME", "acme")

	testCases := []struct {
		name         string
		dbParam      *gorm.DB
		group        models.RadiusGroup
		wantField    string
		expectedName string
	}{
		{
			name:      "nil database",
			dbParam:   nil,
			group:     models.RadiusGroup{OrganizationID: org.ID, Name: "x"},
			wantField: "",
		},
		{
			name:      "missing organization",
			dbParam:   db,
			group:     models.RadiusGroup{Name: "operators"},
			wantField: "organization",
		},
		{
			name:      "nonexistent organization",
			dbParam:   db,
			group:     models.RadiusGroup{OrganizationID: 4242, Name: "operators"},
			wantField: "organization",
		},
		{
			name:      "empty name",
			dbParam:   db,
			group:     models.RadiusGroup{OrganizationID: org.ID, Name: "  "},
			wantField: "name",
		},
		{
			name:         "name gets slug prefix",
			dbParam:      db,
			group:        models.RadiusGroup{OrganizationID: org.ID, Name: "operators"},
			expectedName: "acme-operators",
		},
		{
			name:         "prefixed name kept as is",
			dbParam:      db,
			group:        models.RadiusGroup{OrganizationID: org.ID, Name: "acme-guests"},
			expectedName: "acme-guests",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Create(tc.dbParam, &tc.group)

			if tc.dbParam == nil {
				assert.ErrorIs(t, err, ErrDBNil)
				return
			}

			if tc.wantField != "" {
				verr, ok := models.AsValidationError(err)
				require.True(t, ok, "expected a validation error, got %v", err)
				assert.True(t, verr.HasField(tc.wantField))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedName, tc.group.Name)
		})
	}
}

func TestDefaultDemotion(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrganization(t, db, "ACME", "acme")
	other := seedOrganization(t, db, "Umbrella", "umbrella")

	first := models.RadiusGroup{OrganizationID: org.ID, Name: "first", Default: true}
	require.NoError(t, Create(db, &first))

	otherDefault := models.RadiusGroup{OrganizationID: other.ID, Name: "main", Default: true}
	require.NoError(t, Create(db, &otherDefault))

	// A second default in the same organization demotes the first.
	second := models.RadiusGroup{OrganizationID: org.ID, Name: "second", Default: true}
	require.NoError(t, Create(db, &second))

	got, err := Get(db, first.ID)
	require.NoError(t, err)
	assert.False(t, got.Default)

	current, err := GetDefault(db, org.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	// The other organization's default is untouched.
	got, err = Get(db, otherDefault.ID)
	require.NoError(t, err)
	assert.True(t, got.Default)
}

func TestUnsetDefaultRejected(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrganization(t, db, "ACME", "acme")

	g := models.RadiusGroup{OrganizationID: org.ID, Name: "members", Default: true}
	require.NoError(t, Create(db, &g))

	g.Default = false
	err := Update(db, &g)

	verr, ok := models.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	assert.True(t, verr.HasField("default"))

	// The stored row still carries the flag.
	current, err := GetDefault(db, org.ID)
	require.NoError(t, err)
	assert.Equal(t, g.ID, current.ID)
}

func TestRenameCascade(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrganization(t, db, "ACME", "acme")

	g := models.RadiusGroup{OrganizationID: org.ID, Name: "operators"}
	require.NoError(t, Create(db, &g))

	check := models.RadiusGroupCheck{GroupID: &g.ID, Attribute: "Max-Daily-Session", Op: ":=", Value: "10800"}
	require.NoError(t, CreateCheck(db, &check))
	assert.Equal(t, "acme-operators", check.Groupname)

	reply := models.RadiusGroupReply{GroupID: &g.ID, Attribute: "Reply-Message", Op: "=", Value: "hi"}
	require.NoError(t, CreateReply(db, &reply))

	u := models.User{Username: "alice"}
	require.NoError(t, db.Create(&u).Error)

	membership := models.RadiusUserGroup{UserID: &u.ID, GroupID: &g.ID}
	require.NoError(t, db.Create(&membership).Error)

	g.Name = "acme-staff"
	require.NoError(t, Update(db, &g))

	for _, model := range []interface{}{
		&models.RadiusGroupCheck{},
		&models.RadiusGroupReply{},
		&models.RadiusUserGroup{},
	} {
		var count int64
		err := db.Model(model).Where("group_id = ? AND groupname = ?", g.ID, "acme-staff").Count(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	}

	var stale int64
	err := db.Model(&models.RadiusUserGroup{}).Where("groupname = ?", "acme-operators").Count(&stale).Error
	require.NoError(t, err)
	assert.Zero(t, stale)
}

func TestDeleteProtected(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrganization(t, db, "ACME", "acme")

	def := models.RadiusGroup{OrganizationID: org.ID, Name: "members", Default: true}
	require.NoError(t, Create(db, &def))

	err := Delete(db, def.ID)
	assert.ErrorIs(t, err, models.ErrProtectedDelete)

	// The group and its row survive the failed delete.
	_, err = Get(db, def.ID)
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrganization(t, db, "ACME", "acme")

	g := models.RadiusGroup{OrganizationID: org.ID, Name: "guests"}
	require.NoError(t, Create(db, &g))

	check := models.RadiusGroupCheck{GroupID: &g.ID, Attribute: "Max-Daily-Session", Op: ":=", Value: "10800"}
	require.NoError(t, CreateCheck(db, &check))

	require.NoError(t, Delete(db, g.ID))

	_, err := Get(db, g.ID)
	assert.ErrorIs(t, err, ErrGroupNotFound)

	var count int64
	require.NoError(t, db.Model(&models.RadiusGroupCheck{}).Where("group_id = ?", g.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, Delete(db, g.ID), ErrGroupNotFound)
}

func TestDeleteAll(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrganization(t, db, "ACME", "acme")
	other := seedOrganization(t, db, "Umbrella", "umbrella")

	def := models.RadiusGroup{OrganizationID: org.ID, Name: "members", Default: true}
	require.NoError(t, Create(db, &def))

	extra := models.RadiusGroup{OrganizationID: org.ID, Name: "guests"}
	require.NoError(t, Create(db, &extra))

	kept := models.RadiusGroup{OrganizationID: other.ID, Name: "main", Default: true}
	require.NoError(t, Create(db, &kept))

	// Bulk deletion removes the default group without tripping delete
	// protection.
	require.NoError(t, DeleteAll(db, org.ID))

	var count int64
	require.NoError(t, db.Model(&models.RadiusGroup{}).Where("organization_id = ?", org.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err := Get(db, kept.ID)
	assert.NoError(t, err)

	// The organization is left without a default; the next default group is
	// accepted normally.
	_, err = GetDefault(db, org.ID)
	assert.ErrorIs(t, err, ErrGroupNotFound)

	replacement := models.RadiusGroup{OrganizationID: org.ID, Name: "members", Default: true}
	require.NoError(t, Create(db, &replacement))
}
