package entity

import "time"

// Video is the watchable entity referenced by watch history.
type Video struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     float64 // seconds
	Views        int64
	IsPublished  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ChannelRef is the minimal owner projection attached to read views.
type ChannelRef struct {
	ID        string
	Username  string
	FullName  string
	AvatarURL string
}

// VideoWithOwner is a video joined with its owner's public reference,
// flattened to a single value.
type VideoWithOwner struct {
	Video
	Owner ChannelRef
}
