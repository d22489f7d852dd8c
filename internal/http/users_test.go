package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilibs/adilibs/internal/entities"
)

func TestUsersAPI(t *testing.T) {
	t.Run("profile reflects the authenticated user", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		token := registerUser(t, router, "alice", "alice@example.com", "secret1")

		w := doJSON(router, "GET", "/api/users/profile", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var profile entities.PublicUser
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		assert.Equal(t, "alice", profile.Username)
		assert.Equal(t, "alice@example.com", profile.Email)
		assert.False(t, profile.IsAdmin)
	})

	t.Run("profile requires a token", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		w := doJSON(router, "GET", "/api/users/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("profile fields can be updated partially", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		token := registerUser(t, router, "alice", "alice@example.com", "secret1")

		w := doJSON(router, "PUT", "/api/users/profile", token, gin.H{"profileImage": "/avatars/alice.png"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var profile entities.PublicUser
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		assert.Equal(t, "/avatars/alice.png", profile.ProfileImage)
		assert.Equal(t, "alice", profile.Username)
	})

	t.Run("password change requires the current password", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		token := registerUser(t, router, "alice", "alice@example.com", "secret1")

		w := doJSON(router, "PUT", "/api/users/password", token, gin.H{
			"currentPassword": "wrong-pass",
			"newPassword":     "newsecret",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Current password is incorrect")

		w = doJSON(router, "PUT", "/api/users/password", token, gin.H{
			"currentPassword": "secret1",
			"newPassword":     "newsecret",
		})
		require.Equal(t, http.StatusOK, w.Code)

		// Old password no longer works
		w = doJSON(router, "POST", "/api/auth/login", "", gin.H{
			"email": "alice@example.com", "password": "secret1",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = doJSON(router, "POST", "/api/auth/login", "", gin.H{
			"email": "alice@example.com", "password": "newsecret",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("user listing is admin only", func(t *testing.T) {
		router, db, cleanup := setupTestRouter(t)
		defer cleanup()

		aliceToken := registerUser(t, router, "alice", "alice@example.com", "secret1")
		adminToken := registerUser(t, router, "admin", "admin@example.com", "secret1")
		require.NoError(t, db.DB.Exec("UPDATE users SET is_admin = 1 WHERE username = 'admin'").Error)

		w := doJSON(router, "GET", "/api/users", aliceToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(router, "GET", "/api/users", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var list []entities.PublicUser
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 2)
	})
}

func TestTelegramAPI(t *testing.T) {
	t.Run("subscribing requires an identity", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		w := doJSON(router, "POST", "/api/telegram/subscribe", "", gin.H{"firstName": "Alice"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Username or chat ID is required")
	})

	t.Run("subscribing with a chat id succeeds", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		w := doJSON(router, "POST", "/api/telegram/subscribe", "", gin.H{
			"chatId":          "12345",
			"preferredGenres": []string{"Fantasy"},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "Subscribed successfully")
	})

	t.Run("broadcast is admin only", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		token := registerUser(t, router, "alice", "alice@example.com", "secret1")

		w := doJSON(router, "POST", "/api/telegram/broadcast", token, gin.H{"message": "hi"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHealthAPI(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doJSON(router, "GET", "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])
}
