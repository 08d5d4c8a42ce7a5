package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipstream/clipstream-backend/internal/domain/entity"
	"github.com/clipstream/clipstream-backend/internal/domain/repository"
)

type TweetRepository struct {
	pool *pgxpool.Pool
}

func NewTweetRepository(pool *pgxpool.Pool) *TweetRepository {
	return &TweetRepository{pool: pool}
}

func (r *TweetRepository) Create(ctx context.Context, t *entity.Tweet) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tweets (owner_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, t.OwnerID, t.Content)
	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.TweetWithOwner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.owner_id, t.content, t.created_at, t.updated_at,
		       o.id, o.username, o.full_name, o.avatar_url
		FROM tweets t
		JOIN users o ON o.id = t.owner_id
		WHERE t.owner_id = $1
		ORDER BY t.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.TweetWithOwner, 0)
	for rows.Next() {
		var tw entity.TweetWithOwner
		if err := rows.Scan(&tw.ID, &tw.OwnerID, &tw.Content, &tw.CreatedAt, &tw.UpdatedAt,
			&tw.Owner.ID, &tw.Owner.Username, &tw.Owner.FullName, &tw.Owner.AvatarURL); err != nil {
			return nil, err
		}
		out = append(out, tw)
	}
	return out, rows.Err()
}

var _ repository.TweetRepository = (*TweetRepository)(nil)
