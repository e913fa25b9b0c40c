package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

// NewPool opens a pgx connection pool sized for this service's light write
// load: the API handlers persist subscriptions and run results, the refresh
// worker touches one row per drifted title. The heavy work is upstream API
// calls, not SQL.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 15 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(connectBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			lastErr = err
		} else if pingErr := pool.Ping(ctx); pingErr != nil {
			pool.Close()
			lastErr = pingErr
		} else {
			log.Println("database connected")
			return pool, nil
		}

		log.Printf("database connection attempt %d/%d failed: %v", attempt, connectAttempts, lastErr)
	}

	return nil, fmt.Errorf("database connection failed after %d attempts: %w", connectAttempts, lastErr)
}
