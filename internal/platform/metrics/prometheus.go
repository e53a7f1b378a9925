package metrics

import (
	"net/http"

	"github.com/flexliving/reviews-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Manager holds custom Prometheus metrics for the moderation service.
type Manager struct {
	Registry              *prometheus.Registry
	ApprovalTogglesTotal  prometheus.Counter
	RepliesSetTotal       prometheus.Counter
	UnknownMutationsTotal prometheus.Counter
	HTTPErrorsTotal       *prometheus.CounterVec
	HTTPLatency           *prometheus.HistogramVec
}

// NewManager initializes and registers custom Prometheus metrics on a
// dedicated registry.
func NewManager(namespace string) *Manager {
	registry := prometheus.NewRegistry()

	approvalTogglesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approval_toggles_total",
		Help:      "Total number of approve/unapprove toggles applied.",
	})
	repliesSetTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "replies_set_total",
		Help:      "Total number of operator replies written.",
	})
	unknownMutationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unknown_mutations_total",
		Help:      "Total number of mutations targeting a review id that does not exist.",
	})
	httpErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_errors_total",
		Help:      "Total number of HTTP error responses by route.",
	}, []string{"route", "status"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(
		approvalTogglesTotal,
		repliesSetTotal,
		unknownMutationsTotal,
		httpErrorsTotal,
		httpLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:              registry,
		ApprovalTogglesTotal:  approvalTogglesTotal,
		RepliesSetTotal:       repliesSetTotal,
		UnknownMutationsTotal: unknownMutationsTotal,
		HTTPErrorsTotal:       httpErrorsTotal,
		HTTPLatency:           httpLatency,
	}
}

// StartMetricsServer starts an HTTP server exposing the registry on /metrics.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	return server.ListenAndServe()
}
