package model

import (
	"strings"
	"time"
)

// ChannelProfile is an immutable snapshot of a YouTube channel's metadata,
// fetched once per evaluation and never mutated afterwards.
type ChannelProfile struct {
	ChannelID       string    `json:"channelId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	SubscriberCount int64     `json:"subscriberCount"`
	VideoCount      int64     `json:"videoCount"`
	ViewCount       int64     `json:"viewCount"`
	TopicCategories []string  `json:"topicCategories"`
	PublishedAt     time.Time `json:"publishedAt"`
}

// TopicTerm converts a topic-category URL (e.g.
// "https://en.wikipedia.org/wiki/Electronic_music") into a search term.
func TopicTerm(topicURL string) string {
	term := topicURL
	if idx := strings.LastIndex(topicURL, "/"); idx >= 0 {
		term = topicURL[idx+1:]
	}
	return strings.ReplaceAll(term, "_", " ")
}

// ChannelURL returns the canonical channel page URL.
func ChannelURL(channelID string) string {
	return "https://www.youtube.com/channel/" + channelID
}
