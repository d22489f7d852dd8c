package http

import (
	"github.com/adilibs/adilibs/internal/auth"
	"github.com/adilibs/adilibs/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Catalog stores
	BooksStore   BooksStore
	AuthorsStore AuthorsStore

	// Favorites operations
	FavoritesStore FavoritesStore

	// User accounts
	UsersStore UsersStore

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware

	// Newsletter subscriptions
	SubscribersStore  SubscribersStore
	BroadcastEnqueuer BroadcastEnqueuer

	// Cross-origin policy, comma-separated origins or "*"
	AllowedOrigins string

	// Application info
	Version string
}
