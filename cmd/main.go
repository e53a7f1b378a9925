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

	"github.com/flexliving/reviews-service/internal/adapter/httpapi"
	natsAdapter "github.com/flexliving/reviews-service/internal/adapter/messaging/nats"
	"github.com/flexliving/reviews-service/internal/config"
	"github.com/flexliving/reviews-service/internal/platform/logger"
	"github.com/flexliving/reviews-service/internal/platform/metrics"
	"github.com/flexliving/reviews-service/internal/platform/tracer"
	"github.com/flexliving/reviews-service/internal/store"
	"github.com/flexliving/reviews-service/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const serviceName = "reviews-service"

func main() {
	// Load .env file (optional, for local development)
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	// 1. Initialize Logger
	appLogger := logger.NewLogger()
	appLogger.Info("Application starting...", zap.String("service_name", serviceName))

	// 2. Load Configuration
	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Configuration loaded successfully",
		zap.String("http_port", cfg.HTTPPort),
		zap.String("corpus_path", cfg.CorpusPath),
		zap.Bool("nats_enabled", cfg.NATSURL != ""),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
	)

	// 3. Initialize OpenTelemetry Tracer
	if cfg.OTExporterOTLPEndpoint != "" {
		tp := tracer.InitTracer(serviceName, cfg.OTExporterOTLPEndpoint, appLogger)
		defer func() {
			appLogger.Info("Shutting down tracer provider...")
			ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			if err := tp.Shutdown(ctxShutdown); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	} else {
		appLogger.Info("OpenTelemetry Tracer not initialized (OTEL_EXPORTER_OTLP_ENDPOINT not set).")
	}

	// 4. Load Review Corpus and build the Store
	corpus, err := store.LoadCorpus(cfg.CorpusPath, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load review corpus", zap.Error(err))
	}
	reviewStore := store.New(corpus, appLogger)
	appLogger.Info("ReviewStore initialized.", zap.Int("reviews", len(corpus)))

	// 5. Initialize NATS Publisher (optional)
	var events usecase.EventPublisher
	if cfg.NATSURL != "" {
		natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, serviceName)
		if err != nil {
			appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
		}
		defer natsPublisher.Close()
		events = natsPublisher
		appLogger.Info("NATS Publisher initialized.")
	} else {
		appLogger.Info("NATS Publisher not initialized (NATS_URL not set).")
	}

	// 6. Initialize Metrics
	var metricsManager *metrics.Manager
	if cfg.PrometheusMetricsPort != "" {
		metricsManager = metrics.NewManager("reviews_service")
		go func() {
			appLogger.Info("Starting Prometheus metrics server", zap.String("port", cfg.PrometheusMetricsPort))
			if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	} else {
		appLogger.Info("Prometheus metrics server not started (PROMETHEUS_METRICS_PORT not set).")
	}

	// 7. Initialize Usecase and HTTP Handler
	moderationUsecase := usecase.NewModerationUsecase(reviewStore, events, metricsManager, appLogger)
	reviewHandler := httpapi.NewHandler(moderationUsecase, appLogger)
	mux := httpapi.NewRouter(reviewHandler, serviceName, appLogger, metricsManager)
	appLogger.Info("HTTP router initialized.")

	// 8. Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: mux,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// 9. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("HTTP server shutdown error", zap.Error(err))
	}
	appLogger.Info("Application shutting down...")
}
