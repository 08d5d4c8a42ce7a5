package repository

import (
	"context"

	"github.com/clipstream/clipstream-backend/internal/domain/entity"
)

// TweetRepository persists short posts.
type TweetRepository interface {
	Create(ctx context.Context, t *entity.Tweet) error
	ListByOwner(ctx context.Context, ownerID string) ([]entity.TweetWithOwner, error)
}
