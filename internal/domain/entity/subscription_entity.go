package entity

import "time"

// Subscription links a subscriber to a channel (a user viewed as a
// subscribable entity). The pair is unique.
type Subscription struct {
	SubscriberID string
	ChannelID    string
	CreatedAt    time.Time
}
