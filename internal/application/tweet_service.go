package application

import (
	"context"
	"errors"
	"strings"

	"github.com/clipstream/clipstream-backend/internal/domain/entity"
	repo "github.com/clipstream/clipstream-backend/internal/domain/repository"
)

// TweetService owns short posts.
type TweetService struct {
	Tweets repo.TweetRepository
	Users  repo.UserRepository
}

func NewTweetService(tweets repo.TweetRepository, users repo.UserRepository) *TweetService {
	return &TweetService{Tweets: tweets, Users: users}
}

// Create posts a tweet for the authenticated user.
func (s *TweetService) Create(ctx context.Context, ownerID, content string) (*TweetView, error) {
	owner, err := s.Users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	t := &entity.Tweet{OwnerID: ownerID, Content: strings.TrimSpace(content)}
	if err := s.Tweets.Create(ctx, t); err != nil {
		return nil, err
	}

	view := toTweetView(entity.TweetWithOwner{
		Tweet: *t,
		Owner: entity.ChannelRef{
			ID:        owner.ID,
			Username:  owner.Username,
			FullName:  owner.FullName,
			AvatarURL: owner.AvatarURL,
		},
	})
	return &view, nil
}

// ListByChannel returns a channel's tweets, newest first.
func (s *TweetService) ListByChannel(ctx context.Context, username string) ([]TweetView, error) {
	u, err := s.Users.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	items, err := s.Tweets.ListByOwner(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	out := make([]TweetView, 0, len(items))
	for _, it := range items {
		out = append(out, toTweetView(it))
	}
	return out, nil
}
