package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		u, err := NewUser("Ayu@Example.com", "Ayu Sharma", "s3cretpass")
		require.NoError(t, err)

		assert.Equal(t, "ayu@example.com", u.Email)
		assert.Equal(t, "Ayu Sharma", u.Name)
		assert.Equal(t, RoleUser, u.Role)
		assert.True(t, u.HasPassword())
		assert.NotEqual(t, "s3cretpass", u.PasswordHash)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "Ayu", "s3cretpass")
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("ayu@example.com", "Ayu", "short")
		assert.Error(t, err)
	})
}

func TestUser_CheckPassword(t *testing.T) {
	u, err := NewUser("ayu@example.com", "Ayu", "s3cretpass")
	require.NoError(t, err)

	assert.True(t, u.CheckPassword("s3cretpass"))
	assert.False(t, u.CheckPassword("wrongpass"))

	google, err := NewGoogleUser("g@example.com", "G", "google-123", "")
	require.NoError(t, err)
	assert.False(t, google.CheckPassword("anything"))
}

func TestNewGoogleUser(t *testing.T) {
	t.Run("creates federated user without password", func(t *testing.T) {
		u, err := NewGoogleUser("ayu@example.com", "Ayu", "google-123", "avatar.png")
		require.NoError(t, err)

		assert.Equal(t, "google-123", u.GoogleID)
		assert.Equal(t, "avatar.png", u.Avatar)
		assert.False(t, u.HasPassword())
		assert.Equal(t, RoleUser, u.Role)
	})

	t.Run("rejects empty google id", func(t *testing.T) {
		_, err := NewGoogleUser("ayu@example.com", "Ayu", "", "")
		assert.Error(t, err)
	})
}

func TestUser_LinkGoogle(t *testing.T) {
	u, err := NewUser("ayu@example.com", "Ayu", "s3cretpass")
	require.NoError(t, err)

	require.NoError(t, u.LinkGoogle("google-456", "avatar.png"))
	assert.Equal(t, "google-456", u.GoogleID)
	assert.Equal(t, "avatar.png", u.Avatar)
	assert.True(t, u.HasPassword())

	assert.Error(t, u.LinkGoogle("", ""))
}

func TestUser_SetRole(t *testing.T) {
	u, err := NewUser("ayu@example.com", "Ayu", "s3cretpass")
	require.NoError(t, err)

	require.NoError(t, u.SetRole(RoleAdmin))
	assert.Equal(t, RoleAdmin, u.Role)

	assert.Error(t, u.SetRole(Role("SUPERUSER")))
	assert.Equal(t, RoleAdmin, u.Role)
}

func TestPrincipal_IsAdmin(t *testing.T) {
	admin := Principal{Role: RoleAdmin}
	user := Principal{Role: RoleUser}

	assert.True(t, admin.IsAdmin())
	assert.False(t, user.IsAdmin())
}
