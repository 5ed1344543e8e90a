package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"booksaetong/internal/app"
	"booksaetong/internal/config"
	hhttp "booksaetong/internal/handler/http"
	hproduct "booksaetong/internal/handler/http/product"
	"booksaetong/internal/handler/http/requestid"
	"booksaetong/internal/observability/logging"
	"booksaetong/internal/observability/tracing"
	pkgconfig "booksaetong/internal/pkg/config"
	"booksaetong/internal/resilience/circuitbreaker"
)

func main() {
	loadDotEnv()

	cfg, fallbacks, err := config.LoadFeedConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := initLogger(cfg)
	reportFallbacks(logger, fallbacks)

	shutdownTracing := tracing.InitProvider()
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := app.OpenCatalogue(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open catalogue", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := cat.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, cat, version)

	if err := runServer(ctx, logger, cfg.Server, handler, version); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// loadDotEnv reads .env when present. A missing file is not an error.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env", slog.Any("error", err))
	}
}

func initLogger(cfg *config.FeedConfig) *slog.Logger {
	logger := logging.New(os.Stdout, cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))
	slog.SetDefault(logger)
	return logger
}

// reportFallbacks logs each rejected environment value and exports the config metrics.
func reportFallbacks(logger *slog.Logger, fallbacks []config.Fallback) {
	for _, fb := range fallbacks {
		logger.Warn("configuration fallback applied",
			slog.String("field", fb.Field),
			slog.String("detail", fb.Warning))
	}
	config.RecordFallbacks(pkgconfig.NewConfigMetrics("booksaetong", nil), fallbacks)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer registers the routes and wraps them in the middleware chain.
// Recover is outermost.
func setupServer(logger *slog.Logger, cat *app.Catalogue, version string) http.Handler {
	mux := http.NewServeMux()
	hproduct.Register(mux, cat.Service, cat.Service.Pagination, logger)

	mux.Handle("GET /healthz", hhttp.LiveHandler{})
	mux.Handle("GET /health", &hhttp.HealthHandler{
		DB:       cat.DB,
		Breakers: []*circuitbreaker.CircuitBreaker{cat.Breaker.Breaker()},
		Version:  version,
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	return hhttp.Chain(mux,
		hhttp.Recover(logger),
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
	)
}

// runServer serves until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, logger *slog.Logger, cfg config.ServerConfig, handler http.Handler, version string) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
