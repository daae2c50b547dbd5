package database

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sero/model"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Init(":memory:")
	require.NoError(t, err)
	// a second pool connection would see a fresh empty :memory: database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func expiredGrant(guildID, userID string, kind model.GrantKind, roleID string) model.TemporaryGrant {
	g := model.NewTemporaryGrant(guildID, userID, kind, roleID, "test", 60)
	g.ExpireAt = time.Now().UTC().Add(-time.Minute)
	return g
}

func TestGetDueGrantsSelection(t *testing.T) {
	db := testDB(t)

	due := expiredGrant("g1", "u1", model.GrantKindRole, "r1")
	require.NoError(t, AddGrant(db, due))
	notDue := model.NewTemporaryGrant("g1", "u2", model.GrantKindRole, "r1", "test", 60)
	require.NoError(t, AddGrant(db, notDue))
	otherKind := expiredGrant("g1", "u3", model.GrantKindBan, "")
	require.NoError(t, AddGrant(db, otherKind))

	grants, err := GetDueGrants(db, model.GrantKindRole)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, "u1", grants[0].UserID)

	bans, err := GetDueGrants(db, model.GrantKindBan)
	require.NoError(t, err)
	require.Len(t, bans, 1)
	assert.Equal(t, "u3", bans[0].UserID)
}

func TestRetiredGrantsAreInvisible(t *testing.T) {
	db := testDB(t)
	require.NoError(t, AddGrant(db, expiredGrant("g1", "u1", model.GrantKindRole, "r1")))

	grants, err := GetDueGrants(db, model.GrantKindRole)
	require.NoError(t, err)
	require.Len(t, grants, 1)

	id := grants[0].ID
	require.NoError(t, RetireGrant(db, id))
	grants, err = GetDueGrants(db, model.GrantKindRole)
	require.NoError(t, err)
	assert.Empty(t, grants)

	// retiring again, or retiring a grant that never existed, is a no-op
	require.NoError(t, RetireGrant(db, id))
	require.NoError(t, RetireGrant(db, 9999))
}

func TestRetireGrantByDetails(t *testing.T) {
	db := testDB(t)
	require.NoError(t, AddGrant(db, expiredGrant("g1", "u1", model.GrantKindRole, "r1")))
	require.NoError(t, AddGrant(db, expiredGrant("g1", "u1", model.GrantKindRole, "r2")))
	require.NoError(t, AddGrant(db, expiredGrant("g1", "u1", model.GrantKindBan, "")))

	require.NoError(t, RetireGrantByDetails(db, "g1", "u1", model.GrantKindRole, "r1"))
	grants, err := GetDueGrants(db, model.GrantKindRole)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, "r2", grants[0].RoleID)

	require.NoError(t, RetireGrantByDetails(db, "g1", "u1", model.GrantKindBan, ""))
	bans, err := GetDueGrants(db, model.GrantKindBan)
	require.NoError(t, err)
	assert.Empty(t, bans)

	// second retire of the same coordinates is a no-op
	require.NoError(t, RetireGrantByDetails(db, "g1", "u1", model.GrantKindBan, ""))
}

func TestLiveGrantUniqueness(t *testing.T) {
	db := testDB(t)
	require.NoError(t, AddGrant(db, expiredGrant("g1", "u1", model.GrantKindRole, "r1")))

	// same (guild, user, role) live grant is rejected
	assert.Error(t, AddGrant(db, expiredGrant("g1", "u1", model.GrantKindRole, "r1")))
	// different role is fine
	assert.NoError(t, AddGrant(db, expiredGrant("g1", "u1", model.GrantKindRole, "r2")))

	require.NoError(t, AddGrant(db, expiredGrant("g1", "u1", model.GrantKindBan, "")))
	assert.Error(t, AddGrant(db, expiredGrant("g1", "u1", model.GrantKindBan, "")))

	// once retired, the same coordinates can be granted again
	require.NoError(t, RetireGrantByDetails(db, "g1", "u1", model.GrantKindRole, "r1"))
	assert.NoError(t, AddGrant(db, expiredGrant("g1", "u1", model.GrantKindRole, "r1")))
}

func TestGrantExpiryDerivedFromDuration(t *testing.T) {
	g := model.NewTemporaryGrant("g1", "u1", model.GrantKindRole, "r1", "", 90)
	assert.Equal(t, g.CreatedAt.Add(90*time.Minute), g.ExpireAt)
}
