package organization

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoRadius-Admin/GoRadius-Admin/internal/db/controller/radiusgroup"
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
		&models.OrganizationUser{},
		&models.RadiusGroup{},
		&models.RadiusGroupCheck{},
		&models.RadiusGroupReply{},
		&models.RadiusUserGroup{},
		&models.RadiusCheck{},
		&models.RadiusReply{},
		&models.RadiusAccounting{},
		&models.RadiusPostAuth{},
		&models.Nas{},
		&models.RadiusBatch{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	t.Run("validation", func(t *testing.T) {
		err := Create(db, &models.Organization{Name: " ", Slug: ""})

		verr, ok := models.AsValidationError(err)
		require.True(t, ok, "expected a validation error, got %v", err)
		assert.True(t, verr.HasField("name"))
		assert.True(t, verr.HasField("slug"))
	})

	t.Run("nil database", func(t *testing.T) {
		assert.ErrorIs(t, Create(nil, &models.Organization{Name: "ACME", Slug: "acme"}), ErrDBNil)
	})

	t.Run("provisions default groups", func(t *testing.T) {
		org := models.Organization{Name: "ACME", Slug: "acme"}
		require.NoError(t, Create(db, &org))

		users, err := radiusgroup.GetByName(db, "acme-users")
		require.NoError(t, err)
		assert.True(t, users.Default)
		assert.Equal(t, org.ID, users.OrganizationID)

		var checks []models.RadiusGroupCheck
		require.NoError(t, db.Where("group_id = ?", users.ID).Order("attribute").Find(&checks).Error)
		require.Len(t, checks, 2)

		assert.Equal(t, SessionTimeAttribute, checks[0].Attribute)
		assert.Equal(t, DefaultSessionTimeLimit, checks[0].Value)
		assert.Equal(t, ":=", checks[0].Op)
		assert.Equal(t, "acme-users", checks[0].Groupname)

		assert.Equal(t, SessionTrafficAttribute, checks[1].Attribute)
		assert.Equal(t, DefaultSessionTrafficLimit, checks[1].Value)

		power, err := radiusgroup.GetByName(db, "acme-power-users")
		require.NoError(t, err)
		assert.False(t, power.Default)

		var powerChecks int64
		require.NoError(t, db.Model(&models.RadiusGroupCheck{}).Where("group_id = ?", power.ID).Count(&powerChecks).Error)
		assert.Zero(t, powerChecks)
	})
}

func TestGetBySlug(t *testing.T) {
	db := setupTestDB(t)

	org := models.Organization{Name: "ACME", Slug: "acme"}
	require.NoError(t, Create(db, &org))

	got, err := GetBySlug(db, "acme")
	require.NoError(t, err)
	assert.Equal(t, org.ID, got.ID)

	_, err = GetBySlug(db, "nothing")
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestRename(t *testing.T) {
	db := setupTestDB(t)

	org := models.Organization{Name: "ACME", Slug: "acme"}
	require.NoError(t, Create(db, &org))

	extra := models.RadiusGroup{OrganizationID: org.ID, Name: "operators"}
	require.NoError(t, radiusgroup.Create(db, &extra))

	u := models.User{Username: "alice"}
	require.NoError(t, db.Create(&u).Error)

	def, err := radiusgroup.GetDefault(db, org.ID)
	require.NoError(t, err)

	membership := models.RadiusUserGroup{UserID: &u.ID, GroupID: &def.ID, Priority: 1}
	require.NoError(t, db.Create(&membership).Error)

	renamed, err := Rename(db, org.ID, "Umbrella", "umbrella")
	require.NoError(t, err)
	assert.Equal(t, "umbrella", renamed.Slug)

	// Every group of the tenant is re-prefixed.
	for _, name := range []string{"umbrella-users", "umbrella-power-users", "umbrella-operators"} {
		_, err = radiusgroup.GetByName(db, name)
		assert.NoError(t, err, "expected group %q after rename", name)
	}

	var stale int64
	require.NoError(t, db.Model(&models.RadiusGroup{}).Where("name LIKE ?", "acme-%").Count(&stale).Error)
	assert.Zero(t, stale)

	// The cascade reaches the denormalized membership rows.
	var got models.RadiusUserGroup
	require.NoError(t, db.First(&got, membership.ID).Error)
	assert.Equal(t, "umbrella-users", got.Groupname)

	// Same slug renames touch only the organization row.
	_, err = Rename(db, org.ID, "Umbrella Corp", "umbrella")
	require.NoError(t, err)

	_, err = Rename(db, 4242, "Nobody", "nobody")
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestAddUser(t *testing.T) {
	db := setupTestDB(t)

	org := models.Organization{Name: "ACME", Slug: "acme"}
	require.NoError(t, Create(db, &org))

	u := models.User{Username: "alice"}
	require.NoError(t, db.Create(&u).Error)

	require.NoError(t, AddUser(db, org.ID, u.ID))

	// The default group is granted at priority 1.
	var memberships []models.RadiusUserGroup
	require.NoError(t, db.Where("user_id = ?", u.ID).Find(&memberships).Error)
	require.Len(t, memberships, 1)
	assert.Equal(t, "acme-users", memberships[0].Groupname)
	assert.Equal(t, 1, memberships[0].Priority)

	// Adding the same user again grants nothing new.
	require.NoError(t, AddUser(db, org.ID, u.ID))

	var count int64
	require.NoError(t, db.Model(&models.RadiusUserGroup{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// A user who already holds a membership keeps it untouched.
	member := models.User{Username: "bob"}
	require.NoError(t, db.Create(&member).Error)

	power, err := radiusgroup.GetByName(db, "acme-power-users")
	require.NoError(t, err)

	existing := models.RadiusUserGroup{UserID: &member.ID, GroupID: &power.ID, Priority: 1}
	require.NoError(t, db.Create(&existing).Error)

	require.NoError(t, AddUser(db, org.ID, member.ID))

	require.NoError(t, db.Where("user_id = ?", member.ID).Find(&memberships).Error)
	require.Len(t, memberships, 1)
	assert.Equal(t, "acme-power-users", memberships[0].Groupname)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	org := models.Organization{Name: "ACME", Slug: "acme"}
	require.NoError(t, Create(db, &org))

	other := models.Organization{Name: "Umbrella", Slug: "umbrella"}
	require.NoError(t, Create(db, &other))

	u := models.User{Username: "alice"}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, AddUser(db, org.ID, u.ID))

	check := models.RadiusCheck{OrganizationID: org.ID, UserID: &u.ID, Attribute: "Max-Daily-Session", Op: ":=", Value: "10800"}
	require.NoError(t, db.Create(&check).Error)

	nas := models.Nas{OrganizationID: org.ID, Name: "ap-1", Secret: "s3cr3t", Type: "other"}
	require.NoError(t, db.Create(&nas).Error)

	require.NoError(t, Delete(db, org.ID))

	_, err := Get(db, org.ID)
	assert.ErrorIs(t, err, ErrOrganizationNotFound)

	// Everything the tenant owned is gone, default group included.
	for _, model := range []interface{}{
		&models.RadiusGroup{},
		&models.RadiusCheck{},
		&models.Nas{},
		&models.OrganizationUser{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Where("organization_id = ?", org.ID).Count(&count).Error)
		assert.Zero(t, count)
	}

	var memberships int64
	require.NoError(t, db.Model(&models.RadiusUserGroup{}).Count(&memberships).Error)
	assert.Zero(t, memberships)

	// The other tenant keeps its groups.
	_, err = radiusgroup.GetByName(db, "umbrella-users")
	assert.NoError(t, err)

	assert.ErrorIs(t, Delete(db, org.ID), ErrOrganizationNotFound)
}
