package model

// MaxDescriptionLen is the truncation limit for recommendation descriptions.
const MaxDescriptionLen = 200

// Recommendation is one ranked entry in a recommendation result list.
// Ordering within a list is descending by Score.
type Recommendation struct {
	ChannelID          string   `json:"channelId"`
	Title              string   `json:"channelTitle"`
	URL                string   `json:"channelUrl"`
	Description        string   `json:"description"`
	SubscriberCount    int64    `json:"subscriberCount"`
	VideoCount         int64    `json:"videoCount"`
	Score              float64  `json:"similarityScore"`
	DiscoveryFrequency int      `json:"discoveryFrequency,omitempty"`
	TopicCategories    []string `json:"topicCategories"`
}

// RecommendationRun is a persisted recommendation result set for one seed.
type RecommendationRun struct {
	ID            int64            `json:"id"`
	SeedChannelID string           `json:"seedChannelId"`
	Source        string           `json:"source"` // "subscriptions" or "discovery"
	CreatedAt     string           `json:"createdAt"`
	Items         []Recommendation `json:"items"`
}

// TruncateDescription shortens a description to MaxDescriptionLen characters,
// appending an ellipsis marker when it was cut. The limit counts runes, not
// bytes, so multi-byte text is never split mid-character.
func TruncateDescription(desc string) string {
	runes := []rune(desc)
	if len(runes) > MaxDescriptionLen {
		return string(runes[:MaxDescriptionLen]) + "..."
	}
	return desc
}
