package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/priyanshu14077/Video-La-Vida/internal/auth"
	"github.com/priyanshu14077/Video-La-Vida/internal/config"
	"github.com/priyanshu14077/Video-La-Vida/internal/logger"
	"github.com/priyanshu14077/Video-La-Vida/internal/media"
	"github.com/priyanshu14077/Video-La-Vida/internal/metrics"
	"github.com/priyanshu14077/Video-La-Vida/internal/middleware"
	"github.com/priyanshu14077/Video-La-Vida/internal/store"
	"github.com/priyanshu14077/Video-La-Vida/internal/video"
)

func main() {
	cfg := config.Load()
	logger.SetupDefault(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	if cfg.PostgresDSN == "" {
		slog.Error("POSTGRES_DSN is required")
		os.Exit(1)
	}

	// ── PostgreSQL ────────────────────────────────────────────
	pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		slog.Error("postgres connect", "error", err)
		os.Exit(1)
	}
	defer pgPool.Close()
	pgStore := store.NewPostgresStore(pgPool)
	if err := pgStore.Migrate(ctx); err != nil {
		slog.Error("postgres migrate", "error", err)
		os.Exit(1)
	}

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		slog.Error("redis connect", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()
	sessions := auth.NewSessionStore(rdb)

	// ── MinIO ────────────────────────────────────────────────
	minioStore, err := store.NewMinioStore(
		ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
	)
	if err != nil {
		slog.Error("minio connect", "error", err)
		os.Exit(1)
	}

	// ── Metrics ──────────────────────────────────────────────
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// ── Handlers ─────────────────────────────────────────────
	generator := video.NewGenerator(video.DefaultSamples, nil, cfg.GenerateDelay)
	authHandler := auth.NewHandler(pgStore, sessions)
	videoHandler := video.NewHandler(pgStore, generator, collector)
	mediaHandler := media.NewHandler(minioStore, cfg.UploadURLTTL)

	limiter := middleware.NewRateLimiter(10, 10)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(collector.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	// Auth routes (public)
	r.Route("/api/auth", func(r chi.Router) {
		r.With(limiter.Middleware).Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.With(middleware.RequireAuth(sessions)).Get("/me", authHandler.Me)
	})

	// Video routes: listing is public, ingestion requires a session
	r.Route("/api/videos", func(r chi.Router) {
		r.Get("/", videoHandler.List)
		r.With(middleware.RequireAuth(sessions)).Post("/", videoHandler.Create)
	})

	// Generation stub (protected, rate limited)
	r.With(middleware.RequireAuth(sessions), limiter.Middleware).
		Post("/api/generate-video", videoHandler.Generate)

	// Upload authorization and placeholder images
	r.Get("/api/upload-auth", mediaHandler.UploadAuth)
	r.Get("/api/placeholder/{width}/{height}", mediaHandler.Placeholder)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("backend listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
