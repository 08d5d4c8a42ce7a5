package entity

import "time"

// Tweet is a short post owned by a user.
type Tweet struct {
	ID        string
	OwnerID   string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TweetWithOwner pairs a tweet with its author's public reference.
type TweetWithOwner struct {
	Tweet
	Owner ChannelRef
}
