package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/taskhub-api/internal/authz"
	"github.com/yukikurage/taskhub-api/internal/config"
	"github.com/yukikurage/taskhub-api/internal/database"
	"github.com/yukikurage/taskhub-api/internal/events"
	"github.com/yukikurage/taskhub-api/internal/handlers"
	"github.com/yukikurage/taskhub-api/internal/logger"
	"github.com/yukikurage/taskhub-api/internal/repository"
	"github.com/yukikurage/taskhub-api/internal/services"
	"github.com/yukikurage/taskhub-api/internal/token"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	appLog := logger.New(logger.Options{
		Service:    "taskhub-api",
		Production: cfg.IsProduction(),
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
	})
	defer appLog.Sync() //nolint:errcheck

	// Connect to database
	db, err := database.Open(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db) //nolint:errcheck

	if err := database.Migrate(db, appLog); err != nil {
		appLog.Fatal("Failed to run migrations", zap.Error(err))
	}

	publisher := newPublisher(cfg, appLog)
	defer publisher.Close()

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey, appLog)
	}

	tokens := token.NewManager([]byte(cfg.JWTSecret), cfg.JWTExpiresIn)
	svc := services.New(repository.New(db), tokens, publisher, aiService, appLog)

	if err := seedAdmin(svc, cfg, appLog); err != nil {
		appLog.Fatal("Failed to seed admin user", zap.Error(err))
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		appLog.Fatal("Failed to create session store", zap.Error(err))
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Config:   cfg,
		DB:       db,
		Services: svc,
		Sessions: store,
		Policy:   authz.DefaultPolicy(),
		Log:      appLog,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("Server starting", zap.String("addr", srv.Addr), zap.String("mode", cfg.GinMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error("Server forced to shutdown", zap.Error(err))
	}
	appLog.Info("Server exited")
}

func newPublisher(cfg *config.Config, log *zap.Logger) events.Publisher {
	if cfg.NATSURL == "" {
		return events.NoopPublisher{}
	}
	publisher, err := events.NewNatsPublisher(cfg.NATSURL, log)
	if err != nil {
		// Notifications are best effort; the API still works without them.
		log.Warn("NATS unavailable, task events disabled", zap.Error(err))
		return events.NoopPublisher{}
	}
	return publisher
}

// newSessionStore uses Redis when REDIS_HOST is set and signed cookies otherwise.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	options := sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.JWTExpiresIn.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(), // true in production (HTTPS)
		SameSite: http.SameSiteLaxMode,
	}

	if cfg.RedisHost == "" {
		store := cookie.NewStore([]byte(cfg.SessionSecret))
		store.Options(options)
		return store, nil
	}

	store, err := redisStore.NewStore(
		10,    // Redis pool size
		"tcp", // network type
		cfg.RedisHost+":"+cfg.RedisPort,
		"", // username
		"", // password
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		return nil, err
	}
	store.Options(options)
	return store, nil
}

func seedAdmin(svc *services.Services, cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin, created, err := svc.Users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		log.Info("Seeded admin user", zap.String("email", admin.Email))
	}
	return nil
}
