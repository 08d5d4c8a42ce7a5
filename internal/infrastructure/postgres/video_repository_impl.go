package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipstream/clipstream-backend/internal/domain/entity"
	"github.com/clipstream/clipstream-backend/internal/domain/repository"
)

type VideoRepository struct {
	pool *pgxpool.Pool
}

func NewVideoRepository(pool *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{pool: pool}
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	v := &entity.Video{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, description, video_url, thumbnail_url,
		       duration, views, is_published, created_at, updated_at
		FROM videos
		WHERE id = $1
	`, id)
	if err := row.Scan(&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoURL,
		&v.ThumbnailURL, &v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// ListWatchHistory resolves the stored sequence to full videos with the
// minimal owner projection joined in, preserving sequence order.
func (r *VideoRepository) ListWatchHistory(ctx context.Context, userID string) ([]entity.VideoWithOwner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration, v.views, v.is_published, v.created_at, v.updated_at,
		       o.id, o.username, o.full_name, o.avatar_url
		FROM watch_history wh
		JOIN videos v ON v.id = wh.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE wh.user_id = $1
		ORDER BY wh.position
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.VideoWithOwner, 0)
	for rows.Next() {
		var vo entity.VideoWithOwner
		if err := rows.Scan(&vo.ID, &vo.OwnerID, &vo.Title, &vo.Description, &vo.VideoURL,
			&vo.ThumbnailURL, &vo.Duration, &vo.Views, &vo.IsPublished, &vo.CreatedAt, &vo.UpdatedAt,
			&vo.Owner.ID, &vo.Owner.Username, &vo.Owner.FullName, &vo.Owner.AvatarURL); err != nil {
			return nil, err
		}
		out = append(out, vo)
	}
	return out, rows.Err()
}

// AppendWatchHistory moves a rewatched video to the end of the sequence by
// reassigning its position past the current maximum.
func (r *VideoRepository) AppendWatchHistory(ctx context.Context, userID, videoID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO watch_history (user_id, video_id, position)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM watch_history WHERE user_id = $1))
		ON CONFLICT (user_id, video_id) DO UPDATE
		SET position = (SELECT COALESCE(MAX(position), 0) + 1 FROM watch_history WHERE user_id = $1),
		    watched_at = now()
	`, userID, videoID)
	return err
}

var _ repository.VideoRepository = (*VideoRepository)(nil)
