package application

import (
	"time"

	"github.com/clipstream/clipstream-backend/internal/domain/entity"
)

// PublicUser is the sanitized user view. It never carries the password hash
// or the refresh token.
type PublicUser struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func sanitizeUser(u *entity.User) *PublicUser {
	return &PublicUser{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// TokenPair is an issued access/refresh token couple.
type TokenPair struct {
	AccessToken        string    `json:"accessToken"`
	AccessTokenExpiry  time.Time `json:"accessTokenExpiry"`
	RefreshToken       string    `json:"refreshToken"`
	RefreshTokenExpiry time.Time `json:"refreshTokenExpiry"`
}

// ChannelProfile is the computed read view over a user and the subscription
// relation, projected to public fields only.
type ChannelProfile struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"fullName"`
	AvatarURL         string `json:"avatar"`
	CoverImageURL     string `json:"coverImage,omitempty"`
	SubscribersCount  int64  `json:"subscribersCount"`
	SubscribedToCount int64  `json:"subscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}

// OwnerRef mirrors entity.ChannelRef for JSON output.
type OwnerRef struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatar"`
}

// VideoView is a video read model with its owner flattened in.
type VideoView struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	CreatedAt    time.Time `json:"createdAt"`
	Owner        OwnerRef  `json:"owner"`
}

func toVideoView(v entity.VideoWithOwner) VideoView {
	return VideoView{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		Views:        v.Views,
		CreatedAt:    v.CreatedAt,
		Owner: OwnerRef{
			ID:        v.Owner.ID,
			Username:  v.Owner.Username,
			FullName:  v.Owner.FullName,
			AvatarURL: v.Owner.AvatarURL,
		},
	}
}

// TweetView is a tweet read model with its author flattened in.
type TweetView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Owner     OwnerRef  `json:"owner"`
}

func toTweetView(t entity.TweetWithOwner) TweetView {
	return TweetView{
		ID:        t.ID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		Owner: OwnerRef{
			ID:        t.Owner.ID,
			Username:  t.Owner.Username,
			FullName:  t.Owner.FullName,
			AvatarURL: t.Owner.AvatarURL,
		},
	}
}
