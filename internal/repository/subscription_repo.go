package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/model"
)

type SubscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

// List returns all stored subscriptions ordered by title.
func (r *SubscriptionRepo) List(ctx context.Context) ([]model.Subscription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT channel_id, channel_title, added_at
		FROM subscriptions
		ORDER BY channel_title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Subscription
	for rows.Next() {
		var s model.Subscription
		if err := rows.Scan(&s.ChannelID, &s.Title, &s.AddedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// Replace swaps the stored subscription list for a new one in a single
// transaction.
func (r *SubscriptionRepo) Replace(ctx context.Context, subs []model.Subscription) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM subscriptions`); err != nil {
		return err
	}

	for _, s := range subs {
		_, err := tx.Exec(ctx, `
			INSERT INTO subscriptions (channel_id, channel_title, added_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (channel_id) DO UPDATE SET channel_title = EXCLUDED.channel_title`,
			s.ChannelID, s.Title)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// FindByChannelID returns a single subscription by its channel ID.
func (r *SubscriptionRepo) FindByChannelID(ctx context.Context, channelID string) (*model.Subscription, error) {
	var s model.Subscription
	err := r.pool.QueryRow(ctx, `
		SELECT channel_id, channel_title, added_at
		FROM subscriptions
		WHERE channel_id = $1`, channelID).Scan(&s.ChannelID, &s.Title, &s.AddedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByTitle returns a subscription by case-insensitive title match.
func (r *SubscriptionRepo) FindByTitle(ctx context.Context, title string) (*model.Subscription, error) {
	var s model.Subscription
	err := r.pool.QueryRow(ctx, `
		SELECT channel_id, channel_title, added_at
		FROM subscriptions
		WHERE LOWER(channel_title) = LOWER($1)`, title).Scan(&s.ChannelID, &s.Title, &s.AddedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateTitle refreshes the stored display title for a channel.
func (r *SubscriptionRepo) UpdateTitle(ctx context.Context, channelID, title string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE subscriptions SET channel_title = $1 WHERE channel_id = $2`,
		title, channelID)
	return err
}
