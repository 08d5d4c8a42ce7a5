package repository

import (
	"context"

	"github.com/clipstream/clipstream-backend/internal/domain/entity"
)

// VideoRepository covers video reads and the viewer's watch history.
type VideoRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Video, error)
	// ListWatchHistory returns the viewer's watched videos with the owner
	// projection joined in, ordered by the stored sequence.
	ListWatchHistory(ctx context.Context, userID string) ([]entity.VideoWithOwner, error)
	// AppendWatchHistory records a watch at the end of the sequence; a
	// rewatched video moves to the end.
	AppendWatchHistory(ctx context.Context, userID, videoID string) error
}
