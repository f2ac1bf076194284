package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"marketplace/internal/api"
	"marketplace/internal/app/service"
	"marketplace/internal/common/security"
	"marketplace/internal/domain/repository"
	"marketplace/internal/platform/config"
	"marketplace/internal/platform/database"
	"marketplace/internal/platform/logger"
	"marketplace/internal/platform/queue"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// 3. Initialize Storage
	var (
		userRepo    repository.UserRepository
		productRepo repository.ProductRepository
	)
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		zlog.Warn("Using in-memory storage; data is lost on restart")
		userRepo = repository.NewMemoryUserRepository()
		productRepo = repository.NewMemoryProductRepository()
	default:
		db := mustConnectPostgres(startupCtx, cfg, zlog)
		defer db.Close()
		userRepo = repository.NewPgUserRepository(db)
		productRepo = repository.NewPgProductRepository(db)
	}

	// 4. Initialize Redis (optional)
	var publisher service.ListingPublisher = service.NopListingPublisher{}
	if cfg.RedisEnabled() {
		rdb, err := queue.ConnectRedis(startupCtx, queue.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			zlog.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer closeRedis(rdb, zlog)
		publisher = service.NewRedisListingPublisher(rdb, cfg.ListingEventsQueue)
		zlog.Info("Publishing listing events", zap.String("queue", cfg.ListingEventsQueue))
	}

	// 5. Initialize Services
	tokens := security.NewTokenManager(cfg.JWTKey)
	authService := service.NewAuthService(userRepo, security.NewPasswordHasher(cfg.BcryptCost), zlog)
	productService := service.NewProductService(productRepo, publisher, zlog)

	// 6. Initialize Router & HTTP Server
	router := api.NewRouter(api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		CookieSecure:   cfg.CookieSecure,
	}, tokens, authService, productService, zlog)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		zlog.Info("Server starting", zap.String("port", cfg.APIPort), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Could not listen", zap.String("port", cfg.APIPort), zap.Error(err))
		}
	}()

	<-stop

	zlog.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server shutdown failed", zap.Error(err))
		return
	}
	zlog.Info("Server stopped gracefully")
}

func mustConnectPostgres(ctx context.Context, cfg *config.Config, zlog *zap.Logger) *sql.DB {
	db, err := database.Connect(ctx, cfg.DBConnStr)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	zlog.Info("Database connected", zap.String("host", cfg.DBHost), zap.String("name", cfg.DBName))

	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			zlog.Fatal("Failed to apply migrations", zap.Error(err))
		}
		zlog.Info("Database migrations applied")
	}
	return db
}

func closeRedis(rdb *redis.Client, zlog *zap.Logger) {
	if err := rdb.Close(); err != nil {
		zlog.Warn("Failed to close Redis client", zap.Error(err))
	}
}
