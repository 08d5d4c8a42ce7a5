package repository

import "context"

// SubscriptionRepository exposes the counting and membership capabilities the
// channel profile aggregation is built from.
type SubscriptionRepository interface {
	CountByChannel(ctx context.Context, channelID string) (int64, error)
	CountBySubscriber(ctx context.Context, subscriberID string) (int64, error)
	Exists(ctx context.Context, subscriberID, channelID string) (bool, error)
	Create(ctx context.Context, subscriberID, channelID string) error
	Delete(ctx context.Context, subscriberID, channelID string) error
}
