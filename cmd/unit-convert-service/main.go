package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"unit-convert-service/internal/api"
	"unit-convert-service/internal/auth"
	"unit-convert-service/internal/convert"
	"unit-convert-service/internal/httpx"
	convmetrics "unit-convert-service/internal/metrics"
	"unit-convert-service/internal/ratelimit"
	"unit-convert-service/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	table := convert.NewTable()
	logger.Info("conversion table built", "rules", table.Len())

	metricsRegistry := prometheus.NewRegistry()
	metrics := convmetrics.New(metricsRegistry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := api.NewHandler(table, logger, metrics)

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /api/v1/convert", handler.Convert)
	apiMux.HandleFunc("GET /api/v1/units", handler.Units)

	var apiHandler http.Handler = apiMux
	apiHandler = auth.Middleware(cfg.Auth.Enabled, cfg.Auth.BearerToken, metrics, apiHandler)
	apiHandler = ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware(metrics, apiHandler)
	apiHandler = metrics.Middleware(apiHandler)
	apiHandler = httpx.WithRequestID(apiHandler)
	apiHandler = httpx.WithLogging(logger, apiHandler)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		// The conversion table is built before the server starts
		// listening, so a served request implies readiness.
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	mux.Handle("/api/", apiHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("conversion server started", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("conversion server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown conversion server", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel})
	return slog.New(handler)
}
