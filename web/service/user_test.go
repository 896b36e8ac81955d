package service

import (
	"path/filepath"
	"testing"

	"userpanel/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() { database.CloseDB() })
}

func TestRegisterAndAuthenticate(t *testing.T) {
	setupDB(t)
	svc := UserService{}

	user, err := svc.Register("alice", "pw123", "")
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "pw123", user.PasswordHash)

	got := svc.Authenticate("alice", "pw123")
	require.NotNil(t, got)
	assert.Equal(t, user.Id, got.Id)

	assert.Nil(t, svc.Authenticate("alice", "wrong"))
	assert.Nil(t, svc.Authenticate("nobody", "pw123"))
}

func TestRegisterKeepsRoleVerbatim(t *testing.T) {
	setupDB(t)
	svc := UserService{}

	user, err := svc.Register("bob", "pw", "grand vizier")
	require.NoError(t, err)
	assert.Equal(t, "grand vizier", user.Role)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	setupDB(t)
	svc := UserService{}

	_, err := svc.Register("alice", "pw123", "")
	require.NoError(t, err)

	_, err = svc.Register("alice", "other", "admin")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	users, err := svc.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUpdateUser(t *testing.T) {
	setupDB(t)
	svc := UserService{}

	alice, err := svc.Register("alice", "pw", "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateUser(alice.Id, "alice2", "admin"))

	got, err := svc.GetUser(alice.Id)
	require.NoError(t, err)
	assert.Equal(t, "alice2", got.Username)
	assert.Equal(t, "admin", got.Role)
}

func TestUpdateUserCollision(t *testing.T) {
	setupDB(t)
	svc := UserService{}

	alice, err := svc.Register("alice", "pw", "")
	require.NoError(t, err)
	bob, err := svc.Register("bob", "pw", "")
	require.NoError(t, err)

	err = svc.UpdateUser(bob.Id, "alice", "admin")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	gotAlice, err := svc.GetUser(alice.Id)
	require.NoError(t, err)
	assert.Equal(t, "alice", gotAlice.Username)
	assert.Equal(t, "user", gotAlice.Role)

	gotBob, err := svc.GetUser(bob.Id)
	require.NoError(t, err)
	assert.Equal(t, "bob", gotBob.Username)
	assert.Equal(t, "user", gotBob.Role)
}

func TestUpdateUserSelfRename(t *testing.T) {
	setupDB(t)
	svc := UserService{}

	alice, err := svc.Register("alice", "pw", "")
	require.NoError(t, err)

	// Keeping the current username is not a collision.
	require.NoError(t, svc.UpdateUser(alice.Id, "alice", "admin"))

	got, err := svc.GetUser(alice.Id)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "admin", got.Role)
}

func TestUpdateUserNotFound(t *testing.T) {
	setupDB(t)
	svc := UserService{}

	_, err := svc.GetUser(42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserIdempotent(t *testing.T) {
	setupDB(t)
	svc := UserService{}

	alice, err := svc.Register("alice", "pw", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(alice.Id))
	require.NoError(t, svc.DeleteUser(alice.Id))
	require.NoError(t, svc.DeleteUser(9999))

	users, err := svc.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 0)
}
