package model

// CandidateRecord tracks a channel surfaced during discovery. Frequency counts
// how many distinct discovery rounds yielded the channel; it only ever
// increases while the pool is being built, and any record present in a pool
// has been discovered at least once.
type CandidateRecord struct {
	ChannelID       string   `json:"channelId"`
	Frequency       int      `json:"frequency"`
	FinalScore      float64  `json:"finalScore"`
	SubscriberCount int64    `json:"subscriberCount"`
	VideoCount      int64    `json:"videoCount"`
	TopicCategories []string `json:"topicCategories"`
}
