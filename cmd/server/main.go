package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickcart/internal/api"
	"quickcart/internal/auth"
	"quickcart/internal/config"
	"quickcart/internal/db"
	"quickcart/internal/logger"
	"quickcart/internal/metrics"
	"quickcart/internal/middleware"
	"quickcart/internal/product"
	"quickcart/internal/session"
	"quickcart/internal/storage"

	"go.uber.org/zap"
)

const (
	sweepInterval   = time.Minute
	visitorIdle     = 3 * time.Minute
	shutdownTimeout = 5 * time.Second
)

// Overridden in tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := newServer(cfg, store)
	if err != nil {
		return err
	}
	defer srv.sessions.Close()

	go srv.sessions.Run(ctx, sweepInterval, cfg.SessionIdleTimeout)
	go srv.limiter.Cleanup(ctx, sweepInterval, visitorIdle)

	logger.L().Info("quickcart listening",
		zap.String("port", cfg.AppPort),
		zap.String("env", cfg.AppEnv),
		zap.String("storage", cfg.StorageBackend),
	)
	return startServerFunc(ctx, ":"+cfg.AppPort, srv)
}

// openStorage connects the configured backend. The returned func releases
// it.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.StorageMemory:
		return storage.NewMemory(), noop, nil
	case config.StorageFile:
		return storage.NewFile(cfg.StoragePath), noop, nil
	case config.StorageRedis:
		client, err := storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedis(client, cfg.RedisTTL), func() { client.Close() }, nil
	case config.StoragePostgres:
		database := initDBFunc(cfg)
		return storage.NewPostgres(database), func() { database.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

type server struct {
	http.Handler
	sessions *session.Manager
	limiter  *middleware.Limiter
}

func newServer(cfg *config.Config, store storage.Storage) (*server, error) {
	verifier, err := auth.NewVerifier(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	var catalog product.Fetcher = product.NoCatalog
	if cfg.CatalogURL != "" {
		catalog = product.NewHTTPCatalog(cfg.CatalogURL, cfg.CatalogTimeout)
	}

	stats := &metrics.Stats{}
	sessions := session.NewManager(session.Options{
		Currency: cfg.Currency,
		Catalog:  catalog,
		Storage:  store,
		Stats:    stats,
	})
	limiter := middleware.NewLimiter()

	router := api.NewRouter(api.NewHandler(sessions, stats, cfg.Currency), cfg.CORSOrigins)

	return &server{
		Handler:  setupRouter(router, verifier, limiter, cfg.AppEnv == "production"),
		sessions: sessions,
		limiter:  limiter,
	}, nil
}

// setupRouter wraps the API in the request pipeline, outermost first.
func setupRouter(router http.Handler, verifier *auth.Verifier, limiter *middleware.Limiter, secureCookies bool) http.Handler {
	var h http.Handler = router
	h = middleware.Session(secureCookies)(h)
	h = limiter.Middleware(h)
	h = middleware.Auth(verifier)(h)
	h = limiter.TokenMiddleware(h)
	h = logger.LoggingMiddleware(h)
	h = logger.RequestIDMiddleware(h)
	return h
}

func startServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
