package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// serviceVersion is reported by the readiness endpoint.
const serviceVersion = "0.3.0"

const dependencyCheckTimeout = 3 * time.Second

type dependencyStatus struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

type HealthHandler struct {
	pool    *pgxpool.Pool
	cache   *redis.Client
	startAt time.Time
}

func NewHealthHandler(pool *pgxpool.Pool, cache *redis.Client) *HealthHandler {
	return &HealthHandler{
		pool:    pool,
		cache:   cache,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live — liveness probe, no dependency checks.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready — readiness probe. Postgres down means the
// service cannot store subscriptions or runs and reports 503; the cache is
// optional, a down cache only degrades the report.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), dependencyCheckTimeout)
	defer cancel()

	database := h.checkDatabase(ctx)
	cache := h.checkCache(ctx)

	overall := "healthy"
	if database.Status != "up" || (cache.Status != "up" && cache.Status != "disabled") {
		overall = "degraded"
	}

	status := fiber.StatusOK
	if overall != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": database,
			"cache":    cache,
		},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"version":        serviceVersion,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) dependencyStatus {
	start := time.Now()
	err := h.pool.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return dependencyStatus{Status: "down", LatencyMs: latency, Error: "connection failed"}
	}
	return dependencyStatus{Status: "up", LatencyMs: latency}
}

func (h *HealthHandler) checkCache(ctx context.Context) dependencyStatus {
	if h.cache == nil {
		return dependencyStatus{Status: "disabled"}
	}

	start := time.Now()
	err := h.cache.Ping(ctx).Err()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return dependencyStatus{Status: "down", LatencyMs: latency, Error: "connection failed"}
	}
	return dependencyStatus{Status: "up", LatencyMs: latency}
}
