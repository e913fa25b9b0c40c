package model

import "time"

// Subscription is one entry of the user's stored subscription list.
type Subscription struct {
	ChannelID string    `json:"channelId"`
	Title     string    `json:"channelTitle"`
	AddedAt   time.Time `json:"addedAt"`
}
