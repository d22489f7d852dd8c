package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adilibs/adilibs/internal/auth"
	"github.com/adilibs/adilibs/internal/config"
	"github.com/adilibs/adilibs/internal/database"
	"github.com/adilibs/adilibs/internal/database/authors"
	"github.com/adilibs/adilibs/internal/database/books"
	"github.com/adilibs/adilibs/internal/database/favorites"
	"github.com/adilibs/adilibs/internal/database/subscribers"
	"github.com/adilibs/adilibs/internal/database/users"
	http_controllers "github.com/adilibs/adilibs/internal/http"
	"github.com/adilibs/adilibs/internal/scheduler"
	"github.com/adilibs/adilibs/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM. SIGKILL cannot be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting AdiLibs API v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Resource repositories
	booksRepo := books.NewRepository(db.DB)
	authorsRepo := authors.NewRepository(db.DB)
	usersRepo := users.NewRepository(db.DB)
	favoritesRepo := favorites.NewRepository(db.DB)
	subscribersRepo := subscribers.NewRepository(db.DB)

	// Authentication
	if cfg.Auth.JWTSecret == "" {
		secret, err := auth.GenerateSecret()
		if err != nil {
			log.Fatalf("Failed to generate JWT secret: %v", err)
		}
		cfg.Auth.JWTSecret = secret
		log.Printf("Generated JWT secret (set JWT_SECRET to persist; tokens will not survive restarts)")
	}
	authService := auth.NewService(usersRepo, cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		// Deliveries go to the process log until a messaging gateway is wired in
		sender := tasks.LogSender{}
		taskClient.Register(
			tasks.NewBroadcastMessageQueue(subscribersRepo, sender),
			tasks.NewReleasesDigestQueue(booksRepo, subscribersRepo, sender),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// New-releases digest scheduler
	digestScheduler := scheduler.NewDigestScheduler(scheduler.DigestConfig{
		Enabled:  cfg.Digest.Enabled,
		Schedule: cfg.Digest.Schedule,
		Window:   cfg.Digest.Window,
	}, taskClient)
	if err := digestScheduler.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start digest scheduler: %v", err)
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:         db,
		BooksStore:       booksRepo,
		AuthorsStore:     authorsRepo,
		FavoritesStore:   favoritesRepo,
		UsersStore:       usersRepo,
		AuthService:      authService,
		AuthMiddleware:   authMiddleware,
		SubscribersStore: subscribersRepo,
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		Version:          version,
	}
	if taskClient != nil {
		routerCfg.BroadcastEnqueuer = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		digestScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
