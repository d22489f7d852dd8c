package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(CORSMiddleware(cfg.AllowedOrigins))

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.AuthService)
	booksController := NewBooksController(cfg.BooksStore)
	authorsController := NewAuthorsController(cfg.AuthorsStore)
	favoritesController := NewFavoritesController(cfg.FavoritesStore)
	usersController := NewUsersController(cfg.UsersStore, cfg.AuthService)

	requireAuth := cfg.AuthMiddleware.RequireAuth()
	requireAdmin := cfg.AuthMiddleware.RequireAdmin()

	// Root and health endpoints
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "AdiLibs API is running")
	})
	router.GET("/api/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Authentication endpoints
	router.POST("/api/auth/register", authController.Register)
	router.POST("/api/auth/login", authController.Login)

	// Catalog endpoints; reads are public, writes are admin only
	router.GET("/api/books", booksController.ListBooks)
	router.GET("/api/books/:id", booksController.GetBook)
	router.POST("/api/books", requireAuth, requireAdmin, booksController.CreateBook)
	router.PUT("/api/books/:id", requireAuth, requireAdmin, booksController.UpdateBook)
	router.DELETE("/api/books/:id", requireAuth, requireAdmin, booksController.DeleteBook)

	router.GET("/api/authors", authorsController.ListAuthors)
	router.GET("/api/authors/:id", authorsController.GetAuthor)
	router.POST("/api/authors", requireAuth, requireAdmin, authorsController.CreateAuthor)
	router.PUT("/api/authors/:id", requireAuth, requireAdmin, authorsController.UpdateAuthor)
	router.DELETE("/api/authors/:id", requireAuth, requireAdmin, authorsController.DeleteAuthor)

	router.GET("/api/genres", func(c *gin.Context) {
		genres, err := cfg.Database.GetAllGenres()
		if err != nil {
			respondInternalError(c, err, "list genres")
			return
		}
		c.JSON(http.StatusOK, genres)
	})

	// Favorites endpoints, all behind authentication
	favorites := router.Group("/api/favorites")
	favorites.Use(requireAuth)
	{
		favorites.GET("", favoritesController.ListFavorites)
		favorites.POST("", favoritesController.AddFavorite)
		favorites.DELETE("/all", favoritesController.RemoveAllFavorites)
		favorites.DELETE("/:id", favoritesController.RemoveFavorite)
	}

	// User profile endpoints
	users := router.Group("/api/users")
	users.Use(requireAuth)
	{
		users.GET("/profile", usersController.GetProfile)
		users.PUT("/profile", usersController.UpdateProfile)
		users.PUT("/password", usersController.ChangePassword)
		users.GET("", requireAdmin, usersController.ListUsers)
	}

	// Newsletter subscription endpoints
	if cfg.SubscribersStore != nil {
		telegramController := NewTelegramController(cfg.SubscribersStore, cfg.BroadcastEnqueuer)
		router.POST("/api/telegram/subscribe", telegramController.Subscribe)
		router.POST("/api/telegram/broadcast", requireAuth, requireAdmin, telegramController.Broadcast)
	}

	return router
}
