package service

import (
	"testing"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/model"
)

func newSimilarity() *SimilarityService {
	return NewSimilarityService(NewTextSimilarityService())
}

func sampleVideos() []model.VideoSample {
	return []model.VideoSample{
		{Title: "Building a mechanical keyboard from scratch", Description: "Full walkthrough of switches stabilizers and firmware flashing"},
		{Title: "Keyboard switch comparison", Description: "Testing tactile linear and clicky switches side by side"},
	}
}

func TestTopicOverlap(t *testing.T) {
	svc := newSimilarity()

	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{"identical sets", []string{"Music", "Comedy"}, []string{"Music", "Comedy"}, 1.0},
		{"one shared of three", []string{"Music", "Comedy"}, []string{"Music", "Gaming"}, 1.0 / 3.0},
		{"disjoint", []string{"Music"}, []string{"Gaming"}, 0},
		{"duplicates collapse", []string{"Music", "Music"}, []string{"Music"}, 1.0},
		{"both empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.TopicOverlap(tt.a, tt.b)
			if !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("TopicOverlap = %.6f, want %.6f", got, tt.want)
			}
		})
	}
}

func TestSubscriberCloseness(t *testing.T) {
	svc := newSimilarity()

	tests := []struct {
		name string
		a    int64
		b    int64
		want float64
	}{
		{"equal counts", 100_000, 100_000, 1.0},
		{"one order of magnitude", 100_000, 10_000, 2.0 / 3.0},
		{"three orders of magnitude", 100_000, 100, 0},
		{"symmetric", 100, 100_000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.SubscriberCloseness(tt.a, tt.b)
			if !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("SubscriberCloseness(%d, %d) = %.6f, want %.6f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestUploadVolumeCloseness(t *testing.T) {
	svc := newSimilarity()

	tests := []struct {
		name string
		a    int64
		b    int64
		want float64
	}{
		{"equal counts", 200, 200, 1.0},
		{"quarter ratio", 100, 25, 0.5},
		{"symmetric", 25, 100, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.UploadVolumeCloseness(tt.a, tt.b)
			if !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("UploadVolumeCloseness(%d, %d) = %.6f, want %.6f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScore_IdenticalChannelsScoreOne(t *testing.T) {
	svc := newSimilarity()
	profile := &model.ChannelProfile{
		ChannelID:       "UCaaaaaaaaaaaaaaaaaaaaaa",
		SubscriberCount: 250_000,
		VideoCount:      180,
		TopicCategories: []string{"Technology", "DIY"},
	}
	videos := sampleVideos()

	got := svc.Score(profile, profile, videos, videos, SubscriptionWeights)
	if !almostEqual(got, 1.0, 1e-9) {
		t.Errorf("identical channels score = %.6f, want 1.0", got)
	}
}

func TestScore_RenormalizesOverIncludedSignals(t *testing.T) {
	svc := newSimilarity()
	// Only the topic signal can participate: no subscriber or video counts,
	// no usable text.
	target := &model.ChannelProfile{TopicCategories: []string{"Music", "Comedy"}}
	candidate := &model.ChannelProfile{TopicCategories: []string{"Music", "Gaming"}}

	got := svc.Score(target, candidate, nil, nil, SubscriptionWeights)
	// The weighted average over a single signal is the signal itself.
	if !almostEqual(got, 1.0/3.0, 1e-9) {
		t.Errorf("single-signal score = %.6f, want %.6f", got, 1.0/3.0)
	}
}

func TestScore_NoSignalsScoresZero(t *testing.T) {
	svc := newSimilarity()
	target := &model.ChannelProfile{}
	candidate := &model.ChannelProfile{}

	if got := svc.Score(target, candidate, nil, nil, SubscriptionWeights); got != 0 {
		t.Errorf("score with no includable signals = %.6f, want 0", got)
	}
}

func TestScore_Symmetric(t *testing.T) {
	svc := newSimilarity()
	a := &model.ChannelProfile{
		SubscriberCount: 500_000,
		VideoCount:      300,
		TopicCategories: []string{"Technology"},
	}
	b := &model.ChannelProfile{
		SubscriberCount: 80_000,
		VideoCount:      120,
		TopicCategories: []string{"Technology", "Gaming"},
	}
	videosA := sampleVideos()
	videosB := []model.VideoSample{
		{Title: "Mechanical keyboard mods on a budget", Description: "Cheap foam tape and lube mods that improve any board"},
	}

	ab := svc.Score(a, b, videosA, videosB, SubscriptionWeights)
	ba := svc.Score(b, a, videosB, videosA, SubscriptionWeights)
	if !almostEqual(ab, ba, 1e-9) {
		t.Errorf("score not symmetric: %.6f vs %.6f", ab, ba)
	}
}

func TestScore_StaysInRange(t *testing.T) {
	svc := newSimilarity()
	target := &model.ChannelProfile{
		SubscriberCount: 1_000_000,
		VideoCount:      40,
		TopicCategories: []string{"Music"},
	}
	candidate := &model.ChannelProfile{
		SubscriberCount: 900,
		VideoCount:      4000,
		TopicCategories: []string{"Gaming", "Comedy"},
	}

	got := svc.Score(target, candidate, sampleVideos(), nil, DiscoveryWeights)
	if got < 0 || got > 1 {
		t.Errorf("score = %.6f, want within [0, 1]", got)
	}
}
