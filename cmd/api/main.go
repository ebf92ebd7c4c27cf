package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/heartlink/heartlink-api/internal/config"
	"github.com/heartlink/heartlink-api/internal/domain/block"
	"github.com/heartlink/heartlink-api/internal/domain/feed"
	"github.com/heartlink/heartlink-api/internal/domain/match"
	"github.com/heartlink/heartlink-api/internal/domain/notification"
	"github.com/heartlink/heartlink-api/internal/domain/swipe"
	"github.com/heartlink/heartlink-api/internal/domain/user"
	"github.com/heartlink/heartlink-api/internal/middleware"
	"github.com/heartlink/heartlink-api/internal/pkg/database"
	"github.com/heartlink/heartlink-api/internal/pkg/jwt"
	pkgresponse "github.com/heartlink/heartlink-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting HeartLink API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if err := database.Migrate(db, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)
	txRunner := database.NewTxRunner(db)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	swipeRepo := swipe.NewRepository(db)
	matchRepo := match.NewRepository(db)
	blockRepo := block.NewRepository(db)
	feedRepo := feed.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	// ---------- WebSocket hub ----------
	hub := notification.NewHub(redisClient)
	go hub.Run()
	defer hub.Shutdown()

	// ---------- Services ----------
	notificationService := notification.NewService(notificationRepo, hub)
	exclusionCache := feed.NewExclusionCache(redisClient, cfg.ExclusionCacheTTL)

	matchService := match.NewService(matchRepo, swipeRepo, notificationService, exclusionCache, txRunner)
	blockService := block.NewService(blockRepo, matchService, exclusionCache, txRunner)
	swipeService := swipe.NewService(swipeRepo, userRepo, blockService, matchService, exclusionCache, txRunner)
	feedService := feed.NewService(feedRepo, userRepo, exclusionCache, cfg.FeedPoolSize, cfg.FeedDefaultLimit, cfg.FeedMaxLimit)

	// ---------- Background jobs ----------
	jobCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()
	cleanupJob := notification.NewCleanupJob(notificationRepo, 90*24*time.Hour)
	go cleanupJob.Start(jobCtx, 24*time.Hour)

	// ---------- Handlers ----------
	swipeHandler := swipe.NewHandler(swipeService)
	matchHandler := match.NewHandler(matchService)
	blockHandler := block.NewHandler(blockService)
	feedHandler := feed.NewHandler(feedService)
	notificationHandler := notification.NewHandler(notificationService, hub, cfg.AllowedOrigins)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(notificationHandler.WebSocket)).ServeHTTP(w, r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))
		r.Use(middleware.Timeout(30 * time.Second))

		r.Mount("/swipes", swipeHandler.Routes(authMiddleware))
		r.Mount("/feed", feedHandler.Routes(authMiddleware))
		r.Mount("/matches", matchHandler.Routes(authMiddleware))
		r.Mount("/users", blockHandler.Routes(authMiddleware))
		r.Mount("/notifications", notificationHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
