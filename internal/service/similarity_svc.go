package service

import (
	"math"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/model"
)

// WeightSet fixes the relative weight of each similarity signal. A zero
// weight removes the signal entirely for that call site.
type WeightSet struct {
	TopicOverlap        float64
	TextContent         float64
	SubscriberCloseness float64
	UploadVolume        float64
}

// The two flows carry distinct weight tables; they are kept as separate named
// configurations rather than unified behind a guessed canonical set.
var (
	// SubscriptionWeights ranks a user's own subscriptions against a seed.
	SubscriptionWeights = WeightSet{
		TopicOverlap:        0.35,
		TextContent:         0.40,
		SubscriberCloseness: 0.15,
		UploadVolume:        0.10,
	}

	// DiscoveryWeights scores open-web discovery candidates. The upload-volume
	// signal is not used on this path.
	DiscoveryWeights = WeightSet{
		TopicOverlap:        0.35,
		TextContent:         0.45,
		SubscriberCloseness: 0.20,
	}
)

// SimilarityService combines up to four independent signals into one weighted
// score in [0,1]. Pure computation: all metadata is fetched by the caller.
type SimilarityService struct {
	text *TextSimilarityService
}

func NewSimilarityService(text *TextSimilarityService) *SimilarityService {
	return &SimilarityService{text: text}
}

// Score computes the weighted similarity between target and candidate. Each
// signal participates only when its precondition holds; the weighted average
// renormalizes over the weights of included signals. With no includable
// signal the score is 0.
func (s *SimilarityService) Score(target, candidate *model.ChannelProfile, targetVideos, candidateVideos []model.VideoSample, w WeightSet) float64 {
	var sum, weightSum float64

	if w.TopicOverlap > 0 && len(target.TopicCategories) > 0 && len(candidate.TopicCategories) > 0 {
		sum += s.TopicOverlap(target.TopicCategories, candidate.TopicCategories) * w.TopicOverlap
		weightSum += w.TopicOverlap
	}

	if w.TextContent > 0 {
		targetText := model.CombineSampleText(targetVideos)
		candidateText := model.CombineSampleText(candidateVideos)
		if sim, ok := s.text.Compare(targetText, candidateText); ok {
			sum += sim * w.TextContent
			weightSum += w.TextContent
		}
	}

	if w.SubscriberCloseness > 0 && target.SubscriberCount > 0 && candidate.SubscriberCount > 0 {
		sum += s.SubscriberCloseness(target.SubscriberCount, candidate.SubscriberCount) * w.SubscriberCloseness
		weightSum += w.SubscriberCloseness
	}

	if w.UploadVolume > 0 && target.VideoCount > 0 && candidate.VideoCount > 0 {
		sum += s.UploadVolumeCloseness(target.VideoCount, candidate.VideoCount) * w.UploadVolume
		weightSum += w.UploadVolume
	}

	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}

// TopicOverlap is the Jaccard index over the two topic-category sets.
func (s *SimilarityService) TopicOverlap(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// SubscriberCloseness compares audience sizes on a log scale. Equal counts
// score 1.0; three orders of magnitude apart scores 0.
func (s *SimilarityService) SubscriberCloseness(a, b int64) float64 {
	logRatio := math.Abs(math.Log10(float64(a)) - math.Log10(float64(b)))
	return math.Max(0, 1-logRatio/3)
}

// UploadVolumeCloseness compares catalog sizes; the square root softens the
// penalty for moderate differences.
func (s *SimilarityService) UploadVolumeCloseness(a, b int64) float64 {
	ratio := float64(min(a, b)) / float64(max(a, b))
	return math.Sqrt(ratio)
}
