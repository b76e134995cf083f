package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"moviesearch/httpserver"
	"moviesearch/movie"
	"moviesearch/omdb"
	"moviesearch/pkg/config"
	"moviesearch/pkg/sentry"
	"moviesearch/postgres"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	client := omdb.NewClient(omdb.Options{
		BaseURL:   cfg.OMDb.BaseURL,
		APIKey:    cfg.OMDb.APIKey,
		Timeout:   cfg.OMDbTimeout(),
		RateLimit: cfg.OMDb.RateLimit,
		CacheSize: cfg.OMDb.CacheSize,
		CacheTTL:  cfg.OMDbCacheTTL(),
	})
	movieService := movie.NewUsecase(client)

	if cfg.DatabaseEnabled() {
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     fmt.Sprintf("%d", cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			slog.Error("Cannot open postgres connection", "error", err)
			os.Exit(1)
		}
		movieService.WithSearchLog(postgres.NewSearchLogRepository(db))
	} else {
		slog.Info("DB_HOST not set, search history disabled")
	}

	server := httpserver.Default(cfg)
	server.MovieService = movieService

	go func() {
		slog.Info("server started!", "addr", server.Addr, "pagination", cfg.PaginationMode)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped with error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
