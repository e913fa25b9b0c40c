package service

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/model"
)

const (
	// Scores at or below this threshold are not meaningful matches.
	SimilarityThreshold = 0.15

	// How many recent videos feed the text-similarity signal.
	recentVideoSamples = 10
)

// ErrSeedNotFound is returned when the seed channel cannot be resolved,
// either from the stored subscriptions or from the provider.
var ErrSeedNotFound = errors.New("seed channel not found")

// RankerService ranks a user's own subscriptions by similarity to a seed
// channel chosen from that same list.
type RankerService struct {
	provider MetadataProvider
	sim      *SimilarityService
}

func NewRankerService(provider MetadataProvider, sim *SimilarityService) *RankerService {
	return &RankerService{provider: provider, sim: sim}
}

// RankForSeed fetches the seed's profile and recent videos, then ranks every
// other subscription against it. A candidate whose metadata fetch fails is
// skipped silently.
func (s *RankerService) RankForSeed(ctx context.Context, seedID string, subscriptions []model.Subscription, topN int) ([]model.Recommendation, error) {
	seed, err := s.provider.ChannelProfile(ctx, seedID)
	if err != nil || seed == nil {
		return nil, ErrSeedNotFound
	}

	seedVideos, err := s.provider.RecentVideos(ctx, seedID, recentVideoSamples)
	if err != nil {
		seedVideos = nil
	}

	return s.rank(ctx, seed, seedVideos, subscriptions, topN), nil
}

func (s *RankerService) rank(ctx context.Context, seed *model.ChannelProfile, seedVideos []model.VideoSample, subscriptions []model.Subscription, topN int) []model.Recommendation {
	recommendations := make([]model.Recommendation, 0, len(subscriptions))

	for _, sub := range subscriptions {
		if sub.ChannelID == seed.ChannelID {
			continue
		}

		candidate, err := s.provider.ChannelProfile(ctx, sub.ChannelID)
		if err != nil || candidate == nil {
			continue
		}

		candidateVideos, err := s.provider.RecentVideos(ctx, sub.ChannelID, recentVideoSamples)
		if err != nil {
			candidateVideos = nil
		}

		score := s.sim.Score(seed, candidate, seedVideos, candidateVideos, SubscriptionWeights)
		if score <= SimilarityThreshold {
			continue
		}

		recommendations = append(recommendations, model.Recommendation{
			ChannelID:       candidate.ChannelID,
			Title:           candidate.Title,
			URL:             model.ChannelURL(candidate.ChannelID),
			Description:     model.TruncateDescription(candidate.Description),
			SubscriberCount: candidate.SubscriberCount,
			VideoCount:      candidate.VideoCount,
			Score:           score,
			TopicCategories: candidate.TopicCategories,
		})
	}

	log.Printf("ranker: %d of %d subscriptions above threshold", len(recommendations), len(subscriptions))

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if topN > 0 && len(recommendations) > topN {
		recommendations = recommendations[:topN]
	}
	return recommendations
}
