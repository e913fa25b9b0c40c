package service

import (
	"context"
	"log"
	"sort"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/model"
)

const (
	// Pool construction rounds.
	popularVideosProbed = 3
	relatedPerVideo     = 25
	topicsProbed        = 3
	topicSearchResults  = 20

	// At most this many pool candidates get their metadata fetched and
	// scored. Hard truncation by frequency, bounding provider cost.
	maxScoredCandidates = 50

	// Quality filters and thresholds.
	minCandidateVideos = 10
	discoveryThreshold = 0.2
	maxDiscoveryBoost  = 0.2

	// DefaultMinSubscribers is the fallback quality floor for discovery.
	DefaultMinSubscribers = 50000
)

// DiscoveryService finds channels outside the subscription set. Candidates
// come from related-video traversal of the seed's most-viewed videos and
// from topic-category search; each candidate's discovery frequency feeds a
// capped score bonus.
type DiscoveryService struct {
	provider MetadataProvider
	sim      *SimilarityService
}

func NewDiscoveryService(provider MetadataProvider, sim *SimilarityService) *DiscoveryService {
	return &DiscoveryService{provider: provider, sim: sim}
}

// DiscoverForSeed resolves the seed channel and runs discovery against it.
// excluded is the set of channel IDs the user already subscribes to.
func (s *DiscoveryService) DiscoverForSeed(ctx context.Context, seedID string, excluded map[string]struct{}, minSubscribers int64, topN int) ([]model.Recommendation, error) {
	seed, err := s.provider.ChannelProfile(ctx, seedID)
	if err != nil || seed == nil {
		return nil, ErrSeedNotFound
	}

	seedVideos, err := s.provider.RecentVideos(ctx, seedID, recentVideoSamples)
	if err != nil {
		seedVideos = nil
	}

	pool := s.buildPool(ctx, seed, excluded)
	log.Printf("discovery: pool of %d candidates for seed %s", len(pool), seed.ChannelID)

	return s.scorePool(ctx, seed, seedVideos, pool, minSubscribers, topN), nil
}

// buildPool runs all discovery rounds and accumulates per-channel frequency.
// Each round contributes at most one discovery event per channel.
func (s *DiscoveryService) buildPool(ctx context.Context, seed *model.ChannelProfile, excluded map[string]struct{}) map[string]int {
	var rounds [][]string

	popular, err := s.provider.PopularVideos(ctx, seed.ChannelID, 5)
	if err == nil {
		for i, video := range popular {
			if i >= popularVideosProbed {
				break
			}
			related, err := s.provider.RelatedVideoChannelIDs(ctx, video.VideoID, relatedPerVideo)
			if err != nil {
				continue
			}
			rounds = append(rounds, related)
		}
	}

	for i, topic := range seed.TopicCategories {
		if i >= topicsProbed {
			break
		}
		found, err := s.provider.SearchChannelsByTopic(ctx, model.TopicTerm(topic), topicSearchResults)
		if err != nil {
			continue
		}
		rounds = append(rounds, found)
	}

	return BuildCandidatePool(seed.ChannelID, excluded, rounds)
}

// BuildCandidatePool merges discovery rounds into a frequency map, excluding
// the seed and any already-subscribed channel. Duplicate IDs within a single
// round count once; frequency is the number of rounds that surfaced the
// channel.
func BuildCandidatePool(seedID string, excluded map[string]struct{}, rounds [][]string) map[string]int {
	pool := make(map[string]int)
	for _, round := range rounds {
		seen := make(map[string]struct{}, len(round))
		for _, id := range round {
			if id == seedID {
				continue
			}
			if _, ok := excluded[id]; ok {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			pool[id]++
		}
	}
	return pool
}

// scorePool fetches and scores the most frequently discovered candidates,
// applies the quality filters and the frequency boost, and returns the final
// ranked list.
func (s *DiscoveryService) scorePool(ctx context.Context, seed *model.ChannelProfile, seedVideos []model.VideoSample, pool map[string]int, minSubscribers int64, topN int) []model.Recommendation {
	candidates := rankPoolByFrequency(pool)
	if len(candidates) > maxScoredCandidates {
		candidates = candidates[:maxScoredCandidates]
	}

	recommendations := make([]model.Recommendation, 0, len(candidates))

	for _, cand := range candidates {
		profile, err := s.provider.ChannelProfile(ctx, cand.ChannelID)
		if err != nil || profile == nil {
			continue
		}

		if profile.SubscriberCount < minSubscribers || profile.VideoCount < minCandidateVideos {
			continue
		}

		candidateVideos, err := s.provider.RecentVideos(ctx, cand.ChannelID, recentVideoSamples)
		if err != nil {
			candidateVideos = nil
		}

		score := s.sim.Score(seed, profile, seedVideos, candidateVideos, DiscoveryWeights)
		final := FinalScore(score, cand.Frequency)
		if final <= discoveryThreshold {
			continue
		}

		recommendations = append(recommendations, model.Recommendation{
			ChannelID:          profile.ChannelID,
			Title:              profile.Title,
			URL:                model.ChannelURL(profile.ChannelID),
			Description:        model.TruncateDescription(profile.Description),
			SubscriberCount:    profile.SubscriberCount,
			VideoCount:         profile.VideoCount,
			Score:              final,
			DiscoveryFrequency: cand.Frequency,
			TopicCategories:    profile.TopicCategories,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if topN > 0 && len(recommendations) > topN {
		recommendations = recommendations[:topN]
	}
	return recommendations
}

// FinalScore applies the discovery boost to a similarity score. A channel
// surfaced by multiple independent rounds is weak evidence of relevance on
// its own; the boost is capped so it never dominates the content signals.
func FinalScore(similarity float64, frequency int) float64 {
	boost := float64(frequency) / 3
	if boost > maxDiscoveryBoost {
		boost = maxDiscoveryBoost
	}
	final := similarity + boost
	if final > 1 {
		return 1
	}
	return final
}

// rankPoolByFrequency orders pool entries by frequency descending. Ties break
// by channel ID so truncation at the scoring cap is deterministic.
func rankPoolByFrequency(pool map[string]int) []model.CandidateRecord {
	records := make([]model.CandidateRecord, 0, len(pool))
	for id, freq := range pool {
		records = append(records, model.CandidateRecord{ChannelID: id, Frequency: freq})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Frequency != records[j].Frequency {
			return records[i].Frequency > records[j].Frequency
		}
		return records[i].ChannelID < records[j].ChannelID
	})
	return records
}
