package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilibs/adilibs/internal/auth"
	"github.com/adilibs/adilibs/internal/config"
	"github.com/adilibs/adilibs/internal/database"
	"github.com/adilibs/adilibs/internal/database/authors"
	"github.com/adilibs/adilibs/internal/database/books"
	"github.com/adilibs/adilibs/internal/database/favorites"
	"github.com/adilibs/adilibs/internal/database/subscribers"
	"github.com/adilibs/adilibs/internal/database/users"
	"github.com/adilibs/adilibs/internal/entities"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_api_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	authCfg := config.Auth{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
		BcryptCost:  4,
	}
	usersRepo := users.NewRepository(db.DB)
	authService := auth.NewService(usersRepo, authCfg)

	router := NewRouter(RouterConfig{
		Database:         db,
		BooksStore:       books.NewRepository(db.DB),
		AuthorsStore:     authors.NewRepository(db.DB),
		FavoritesStore:   favorites.NewRepository(db.DB),
		UsersStore:       usersRepo,
		AuthService:      authService,
		AuthMiddleware:   auth.NewMiddleware(authService),
		SubscribersStore: subscribers.NewRepository(db.DB),
		AllowedOrigins:   "*",
		Version:          "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, db, cleanup
}

func registerUser(t *testing.T, router *gin.Engine, username, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func seedBook(t *testing.T, db *database.Database, title string) *entities.Book {
	t.Helper()

	genre := &entities.Genre{Name: "Genre of " + title}
	require.NoError(t, db.DB.Create(genre).Error)
	author := &entities.Author{Name: "Author of " + title, GenreID: genre.ID}
	require.NoError(t, db.DB.Create(author).Error)
	book := &entities.Book{Title: title, Year: "1965", AuthorID: author.ID, GenreID: genre.ID}
	require.NoError(t, db.DB.Create(book).Error)
	return book
}

func uintToString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func doJSON(router *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestFavoritesAPI(t *testing.T) {
	t.Run("full add, list, remove cycle", func(t *testing.T) {
		router, db, cleanup := setupTestRouter(t)
		defer cleanup()

		token := registerUser(t, router, "alice", "alice@example.com", "secret1")
		book := seedBook(t, db, "Dune")

		// Starts empty
		w := doJSON(router, "GET", "/api/favorites", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []BookResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Empty(t, list)

		// Add
		w = doJSON(router, "POST", "/api/favorites", token, gin.H{"bookId": book.ID})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// Listed with flattened book fields
		w = doJSON(router, "GET", "/api/favorites", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, "Dune", list[0].Title)
		assert.Equal(t, "Author of Dune", list[0].Author)
		assert.Equal(t, "Genre of Dune", list[0].Genre)

		// Remove
		w = doJSON(router, "DELETE", "/api/favorites/"+uintToString(book.ID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, "GET", "/api/favorites", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Empty(t, list)
	})

	t.Run("adding the same book twice returns 400", func(t *testing.T) {
		router, db, cleanup := setupTestRouter(t)
		defer cleanup()

		token := registerUser(t, router, "alice", "alice@example.com", "secret1")
		book := seedBook(t, db, "Dune")

		w := doJSON(router, "POST", "/api/favorites", token, gin.H{"bookId": book.ID})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(router, "POST", "/api/favorites", token, gin.H{"bookId": book.ID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already in favorites")
	})

	t.Run("adding a missing book returns 404", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		token := registerUser(t, router, "alice", "alice@example.com", "secret1")

		w := doJSON(router, "POST", "/api/favorites", token, gin.H{"bookId": 9999})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Book not found")
	})

	t.Run("add without bookId returns 400", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		token := registerUser(t, router, "alice", "alice@example.com", "secret1")

		w := doJSON(router, "POST", "/api/favorites", token, gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Book ID is required")
	})

	t.Run("removing a non-favorite returns 404", func(t *testing.T) {
		router, db, cleanup := setupTestRouter(t)
		defer cleanup()

		token := registerUser(t, router, "alice", "alice@example.com", "secret1")
		book := seedBook(t, db, "Dune")

		w := doJSON(router, "DELETE", "/api/favorites/"+uintToString(book.ID), token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not found in favorites")
	})

	t.Run("requests without a token return 401", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		for _, tc := range []struct{ method, path string }{
			{"GET", "/api/favorites"},
			{"POST", "/api/favorites"},
			{"DELETE", "/api/favorites/1"},
			{"DELETE", "/api/favorites/all"},
		} {
			w := doJSON(router, tc.method, tc.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
		}
	})

	t.Run("favorites are scoped to the authenticated user", func(t *testing.T) {
		router, db, cleanup := setupTestRouter(t)
		defer cleanup()

		aliceToken := registerUser(t, router, "alice", "alice@example.com", "secret1")
		bobToken := registerUser(t, router, "bob", "bob@example.com", "secret1")
		book := seedBook(t, db, "Dune")

		w := doJSON(router, "POST", "/api/favorites", aliceToken, gin.H{"bookId": book.ID})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(router, "GET", "/api/favorites", bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []BookResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Empty(t, list)
	})

	t.Run("delete all clears the list and reports the count", func(t *testing.T) {
		router, db, cleanup := setupTestRouter(t)
		defer cleanup()

		token := registerUser(t, router, "alice", "alice@example.com", "secret1")
		for _, title := range []string{"Dune", "Foundation"} {
			book := seedBook(t, db, title)
			w := doJSON(router, "POST", "/api/favorites", token, gin.H{"bookId": book.ID})
			require.Equal(t, http.StatusCreated, w.Code)
		}

		w := doJSON(router, "DELETE", "/api/favorites/all", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Message string `json:"message"`
			Count   int64  `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(2), resp.Count)

		w = doJSON(router, "GET", "/api/favorites", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []BookResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Empty(t, list)
	})
}
