package repository

import (
	"context"
	"errors"

	"github.com/clipstream/clipstream-backend/internal/domain/entity"
)

// ErrNotFound is returned by all repositories when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a uniqueness constraint is violated.
// The storage-layer constraint is the actual race guard behind existence
// pre-checks.
var ErrDuplicate = errors.New("duplicate")

// UserRepository defines persistence for user credential + profile records.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetByIdentifier looks a user up by username or email.
	GetByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	// ExistsByIdentity reports whether either the username or the email is taken.
	ExistsByIdentity(ctx context.Context, username, email string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetRefreshToken overwrites the stored rotation token without touching
	// any other column. An empty token clears the session.
	SetRefreshToken(ctx context.Context, id, token string) error
}
