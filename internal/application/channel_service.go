package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	repo "github.com/clipstream/clipstream-backend/internal/domain/repository"
	"github.com/clipstream/clipstream-backend/pkg/helpers"
)

const channelProfileCacheTTL = 30 * time.Second

// ChannelService builds the channel profile read view and owns the
// subscription write path and channel search.
type ChannelService struct {
	Users   repo.UserRepository
	Subs    repo.SubscriptionRepository
	Redis   *redis.Client
	ES      *elasticsearch.Client
	ESIndex string
	Logger  *logrus.Logger
}

func NewChannelService(users repo.UserRepository, subs repo.SubscriptionRepository,
	rdb *redis.Client, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ChannelService {
	return &ChannelService{Users: users, Subs: subs, Redis: rdb, ES: es, ESIndex: esIndex, Logger: logger}
}

func profileCacheKey(username, viewerID string) string {
	if viewerID == "" {
		viewerID = "anon"
	}
	return "channel:profile:" + username + ":" + viewerID
}

// GetProfile composes the aggregation as explicit steps: locate the user,
// count both sides of the subscription relation, check viewer membership.
// viewerID may be empty for anonymous viewers.
func (s *ChannelService) GetProfile(ctx context.Context, username, viewerID string) (*ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	if s.Redis != nil {
		var cached ChannelProfile
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, profileCacheKey(username, viewerID), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	subscribers, err := s.Subs.CountByChannel(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.Subs.CountBySubscriber(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	isSubscribed := false
	if viewerID != "" {
		isSubscribed, err = s.Subs.Exists(ctx, viewerID, u.ID)
		if err != nil {
			return nil, err
		}
	}

	profile := &ChannelProfile{
		ID:                u.ID,
		Username:          u.Username,
		FullName:          u.FullName,
		AvatarURL:         u.AvatarURL,
		CoverImageURL:     u.CoverImageURL,
		SubscribersCount:  subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileCacheKey(username, viewerID), profile, channelProfileCacheTTL); err != nil {
			s.Logger.WithError(err).WithField("username", username).Warn("profile cache write failed")
		}
	}
	return profile, nil
}

// ToggleSubscription subscribes the viewer to the channel, or unsubscribes
// when already subscribed. Returns the resulting state.
func (s *ChannelService) ToggleSubscription(ctx context.Context, viewerID, username string) (bool, error) {
	channel, err := s.Users.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrChannelNotFound
		}
		return false, err
	}
	if channel.ID == viewerID {
		return false, ErrSelfSubscription
	}

	subscribed, err := s.Subs.Exists(ctx, viewerID, channel.ID)
	if err != nil {
		return false, err
	}
	if subscribed {
		err = s.Subs.Delete(ctx, viewerID, channel.ID)
	} else {
		err = s.Subs.Create(ctx, viewerID, channel.ID)
	}
	if err != nil {
		return false, err
	}

	if s.Redis != nil {
		_ = helpers.RedisDel(ctx, s.Redis, profileCacheKey(channel.Username, viewerID))
	}
	return !subscribed, nil
}

// ChannelSearchHit is one search result.
type ChannelSearchHit struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatar"`
}

// Search performs a multi_match query over username and fullName.
// Degrades to an empty result when Elasticsearch is not configured.
func (s *ChannelService) Search(ctx context.Context, q string, size int) ([]ChannelSearchHit, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []ChannelSearchHit{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "fullName"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source ChannelSearchHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]ChannelSearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
