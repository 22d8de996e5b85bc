package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeremyjsx/blog/internal/config"
	"github.com/jeremyjsx/blog/internal/db"
	"github.com/jeremyjsx/blog/internal/handlers"
	"github.com/jeremyjsx/blog/internal/logger"
	"github.com/jeremyjsx/blog/internal/middleware"
	"github.com/jeremyjsx/blog/internal/posts"
	"github.com/jeremyjsx/blog/internal/storage"
	"github.com/jeremyjsx/blog/internal/views"
	"github.com/jeremyjsx/blog/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.LogLevel, middleware.RequestIDExtractor())
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("blog: server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(ctx, db.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
		RetryAttempts:   cfg.DatabaseRetryAttempts,
		RetryInterval:   cfg.DatabaseRetryInterval,
	})
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.DatabaseMigrate {
		if err := db.Migrate(ctx, sqlDB, log); err != nil {
			return err
		}
	}

	var st storage.Storage
	if cfg.S3Bucket != "" {
		client, err := storage.NewS3Client(ctx, cfg.AWSRegion, cfg.S3Endpoint)
		if err != nil {
			return err
		}
		st = storage.NewS3Storage(client, cfg.S3Bucket)
	}

	tmpl, err := views.Embedded()
	if err != nil {
		return err
	}

	pool := worker.New(cfg.BlockingPoolSize)
	svc := posts.NewService(posts.NewPostgresRepository(sqlDB), st)
	blog := handlers.NewBlogHandler(svc, tmpl, pool, log)

	mux := http.NewServeMux()
	blog.Register(mux)
	mux.HandleFunc("GET /health", handlers.Health(&handlers.HealthDeps{DB: sqlDB, Storage: st, Logger: log}))

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: middleware.Chain(mux,
			middleware.RequestID,
			middleware.Logging(log),
			middleware.Recover(log, handlers.ErrorPage(handlers.InternalError)),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("blog: server started", "port", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("blog: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "error", err)
	}
	if err := pool.Close(shutdownCtx); err != nil {
		log.Error("blocking pool shutdown failed", "error", err)
	}
	return nil
}
