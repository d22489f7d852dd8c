package auth

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilibs/adilibs/internal/config"
	"github.com/adilibs/adilibs/internal/database"
	"github.com/adilibs/adilibs/internal/database/users"
)

func setupService(t *testing.T) (*Service, func()) {
	t.Helper()

	dbPath := "./test_auth_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	svc := NewService(users.NewRepository(db.DB), config.Auth{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
		BcryptCost:  4,
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return svc, cleanup
}

func TestService_Register(t *testing.T) {
	t.Run("creates user and returns a usable token", func(t *testing.T) {
		svc, cleanup := setupService(t)
		defer cleanup()

		user, token, err := svc.Register("alice", "alice@example.com", "secret1")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, token)
		assert.NotEqual(t, "secret1", user.PasswordHash)

		resolved, err := svc.ResolveToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		svc, cleanup := setupService(t)
		defer cleanup()

		_, _, err := svc.Register("alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		_, _, err = svc.Register("alice", "other@example.com", "secret1")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, cleanup := setupService(t)
		defer cleanup()

		_, _, err := svc.Register("alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		_, _, err = svc.Register("alice2", "alice@example.com", "secret1")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("validates identity fields", func(t *testing.T) {
		svc, cleanup := setupService(t)
		defer cleanup()

		cases := []struct {
			name     string
			username string
			email    string
			password string
			want     error
		}{
			{"empty username", "", "a@example.com", "secret1", ErrUsernameRequired},
			{"empty email", "alice", "", "secret1", ErrEmailRequired},
			{"empty password", "alice", "a@example.com", "", ErrPasswordRequired},
			{"username too short", "ab", "a@example.com", "secret1", ErrUsernameInvalid},
			{"username with spaces", "a b c", "a@example.com", "secret1", ErrUsernameInvalid},
			{"malformed email", "alice", "not-an-email", "secret1", ErrEmailInvalid},
			{"short password", "alice", "a@example.com", "12345", ErrPasswordTooShort},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, _, err := svc.Register(tc.username, tc.email, tc.password)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})
}

func TestService_Login(t *testing.T) {
	t.Run("returns user and token for valid credentials", func(t *testing.T) {
		svc, cleanup := setupService(t)
		defer cleanup()

		_, _, err := svc.Register("alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		user, token, err := svc.Login("alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password and unknown email fail the same way", func(t *testing.T) {
		svc, cleanup := setupService(t)
		defer cleanup()

		_, _, err := svc.Register("alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		_, _, wrongPassword := svc.Login("alice@example.com", "nope-nope")
		_, _, unknownEmail := svc.Login("ghost@example.com", "secret1")

		assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	})
}

func TestService_ChangePassword(t *testing.T) {
	t.Run("replaces the hash when current password matches", func(t *testing.T) {
		svc, cleanup := setupService(t)
		defer cleanup()

		user, _, err := svc.Register("alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		require.NoError(t, svc.ChangePassword(user.ID, "secret1", "newsecret"))

		_, _, err = svc.Login("alice@example.com", "newsecret")
		require.NoError(t, err)
		_, _, err = svc.Login("alice@example.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		svc, cleanup := setupService(t)
		defer cleanup()

		user, _, err := svc.Register("alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		err = svc.ChangePassword(user.ID, "wrong-current", "newsecret")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})
}

func TestService_ResolveToken(t *testing.T) {
	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		svc, cleanup := setupService(t)
		defer cleanup()

		user, _, err := svc.Register("alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		forged, err := SignToken([]byte("other-secret"), user.ID, user.Username, time.Hour)
		require.NoError(t, err)

		_, err = svc.ResolveToken(forged)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		svc, cleanup := setupService(t)
		defer cleanup()

		user, _, err := svc.Register("alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		expired, err := SignToken([]byte("test-secret"), user.ID, user.Username, -time.Minute)
		require.NoError(t, err)

		_, err = svc.ResolveToken(expired)
		assert.Error(t, err)
	})
}
