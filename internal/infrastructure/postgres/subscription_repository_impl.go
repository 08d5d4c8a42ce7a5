package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipstream/clipstream-backend/internal/domain/repository"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

func (r *SubscriptionRepository) CountByChannel(ctx context.Context, channelID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM subscriptions WHERE channel_id = $1
	`, channelID).Scan(&n)
	return n, err
}

func (r *SubscriptionRepository) CountBySubscriber(ctx context.Context, subscriberID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM subscriptions WHERE subscriber_id = $1
	`, subscriberID).Scan(&n)
	return n, err
}

func (r *SubscriptionRepository) Exists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2)
	`, subscriberID, channelID).Scan(&exists)
	return exists, err
}

func (r *SubscriptionRepository) Create(ctx context.Context, subscriberID, channelID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING
	`, subscriberID, channelID)
	return err
}

func (r *SubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2
	`, subscriberID, channelID)
	return err
}

var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)
