package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/clipstream/clipstream-backend/internal/domain/entity"
	repo "github.com/clipstream/clipstream-backend/internal/domain/repository"
)

// VideoService covers video reads and the viewer's watch history.
type VideoService struct {
	Videos repo.VideoRepository
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewVideoService(videos repo.VideoRepository, users repo.UserRepository, logger *logrus.Logger) *VideoService {
	return &VideoService{Videos: videos, Users: users, Logger: logger}
}

// GetVideo fetches a video and, for an authenticated viewer, records the
// watch at the end of their history. viewerID may be empty.
func (s *VideoService) GetVideo(ctx context.Context, videoID, viewerID string) (*VideoView, error) {
	v, err := s.Videos.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	owner, err := s.Users.GetByID(ctx, v.OwnerID)
	if err != nil {
		return nil, err
	}

	if viewerID != "" {
		if err := s.Videos.AppendWatchHistory(ctx, viewerID, v.ID); err != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"viewer_id": viewerID,
				"video_id":  v.ID,
			}).Warn("watch history append failed")
		}
	}

	view := toVideoView(entity.VideoWithOwner{
		Video: *v,
		Owner: entity.ChannelRef{
			ID:        owner.ID,
			Username:  owner.Username,
			FullName:  owner.FullName,
			AvatarURL: owner.AvatarURL,
		},
	})
	return &view, nil
}

// GetWatchHistory resolves the viewer's stored sequence to full videos with
// owner projections; order matches the sequence at read time.
func (s *VideoService) GetWatchHistory(ctx context.Context, userID string) ([]VideoView, error) {
	items, err := s.Videos.ListWatchHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]VideoView, 0, len(items))
	for _, it := range items {
		out = append(out, toVideoView(it))
	}
	return out, nil
}
