package identity

import (
	"testing"
	"time"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/users"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) users.User {
	t.Helper()
	user := users.User{Name: "Jane", Email: "jane@example.com"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestCreateSessionIssuesOpaqueToken(t *testing.T) {
	db := openDB(t)
	user := seedUser(t, db)

	session, err := CreateSession(db, user.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, user.ID, session.UserID)
	assert.WithinDuration(t, time.Now().Add(users.SessionTTL), session.ExpiresAt, time.Minute)

	other, err := CreateSession(db, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, session.Token, other.Token)
}

func TestSessionUserRoundTrip(t *testing.T) {
	db := openDB(t)
	user := seedUser(t, db)

	session, err := CreateSession(db, user.ID)
	require.NoError(t, err)

	resolved, err := SessionUser(db, session.Token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, user.Email, resolved.Email)
}

func TestSessionUserUnknownToken(t *testing.T) {
	db := openDB(t)

	resolved, err := SessionUser(db, "no-such-token")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestSessionUserExpiredToken(t *testing.T) {
	db := openDB(t)
	user := seedUser(t, db)

	session := users.Session{
		UserID:    user.ID,
		Token:     users.NewSessionToken(),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&session).Error)

	resolved, err := SessionUser(db, session.Token)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestRevokeSessionInvalidatesToken(t *testing.T) {
	db := openDB(t)
	user := seedUser(t, db)

	session, err := CreateSession(db, user.ID)
	require.NoError(t, err)

	require.NoError(t, RevokeSession(db, session.Token))

	resolved, err := SessionUser(db, session.Token)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	// Revoking an unknown token never fails.
	assert.NoError(t, RevokeSession(db, "no-such-token"))
}
