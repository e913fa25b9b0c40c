package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the TubeScout Go backend.
var Metrics = struct {
	RunsTotal        *prometheus.CounterVec
	RunDuration      *prometheus.HistogramVec
	RequestDuration  *prometheus.HistogramVec
	DBPoolActive     prometheus.GaugeFunc
	DBPoolIdle       prometheus.GaugeFunc
	RequestsInFlight prometheus.Gauge
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool) {
	Metrics.RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubescout_recommendation_runs_total",
			Help: "Total recommendation runs completed, by source.",
		},
		[]string{"source"},
	)

	Metrics.RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tubescout_recommendation_run_duration_seconds",
			Help:    "Duration of recommendation runs in seconds, by source.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"source"},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tubescout_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tubescout_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tubescout_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	Metrics.CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tubescout_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "tubescout_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "tubescout_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.RunsTotal,
		Metrics.RunDuration,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
	)
}

// observeRun records a completed recommendation run. Safe to call before
// InitMetrics only in tests, where the collectors are nil-checked.
func observeRun(source string, elapsed time.Duration) {
	if Metrics.RunsTotal == nil || Metrics.RunDuration == nil {
		return
	}
	Metrics.RunsTotal.WithLabelValues(source).Inc()
	Metrics.RunDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	const prefix = "/api/recommendations/"
	if strings.HasPrefix(path, prefix) && len(path) > len(prefix) {
		if strings.HasSuffix(path, "/latest") {
			return "/api/recommendations/:channelId/latest"
		}
		return "/api/recommendations/:channelId"
	}
	return path
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
