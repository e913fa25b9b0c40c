package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/model"
)

type RecommendationRepo struct {
	pool *pgxpool.Pool
}

func NewRecommendationRepo(pool *pgxpool.Pool) *RecommendationRepo {
	return &RecommendationRepo{pool: pool}
}

// SaveRun persists one recommendation result set and returns the run ID.
// Items are stored in rank order with the full record as JSONB payload.
func (r *RecommendationRepo) SaveRun(ctx context.Context, seedChannelID, source string, items []model.Recommendation) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var runID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO recommendation_runs (seed_channel_id, source, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id`, seedChannelID, source).Scan(&runID)
	if err != nil {
		return 0, err
	}

	for rank, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return 0, err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO recommendation_items (run_id, rank, channel_id, channel_title, score, frequency, payload)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			runID, rank+1, item.ChannelID, item.Title, item.Score, item.DiscoveryFrequency, payload)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return runID, nil
}

// LatestRun returns the most recent persisted run for a seed channel.
func (r *RecommendationRepo) LatestRun(ctx context.Context, seedChannelID string) (*model.RecommendationRun, error) {
	var run model.RecommendationRun
	var createdAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT id, seed_channel_id, source, created_at
		FROM recommendation_runs
		WHERE seed_channel_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, seedChannelID).Scan(&run.ID, &run.SeedChannelID, &run.Source, &createdAt)
	if err != nil {
		return nil, err
	}
	run.CreatedAt = createdAt.Format(time.RFC3339)

	rows, err := r.pool.Query(ctx, `
		SELECT payload
		FROM recommendation_items
		WHERE run_id = $1
		ORDER BY rank`, run.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var item model.Recommendation
		if err := json.Unmarshal(payload, &item); err != nil {
			return nil, err
		}
		run.Items = append(run.Items, item)
	}
	return &run, rows.Err()
}
