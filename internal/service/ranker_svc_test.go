package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/model"
)

// fakeProvider serves canned metadata from maps. Channels absent from the
// profiles map fail their lookup, mirroring an upstream API error.
type fakeProvider struct {
	profiles map[string]*model.ChannelProfile
	videos   map[string][]model.VideoSample
	popular  map[string][]model.PopularVideo
	related  map[string][]string
	topics   map[string][]string

	profileFetches int
}

func (f *fakeProvider) ChannelProfile(_ context.Context, channelID string) (*model.ChannelProfile, error) {
	f.profileFetches++
	p, ok := f.profiles[channelID]
	if !ok {
		return nil, errors.New("channel lookup failed")
	}
	return p, nil
}

func (f *fakeProvider) RecentVideos(_ context.Context, channelID string, _ int) ([]model.VideoSample, error) {
	return f.videos[channelID], nil
}

func (f *fakeProvider) PopularVideos(_ context.Context, channelID string, _ int) ([]model.PopularVideo, error) {
	return f.popular[channelID], nil
}

func (f *fakeProvider) RelatedVideoChannelIDs(_ context.Context, videoID string, _ int) ([]string, error) {
	return f.related[videoID], nil
}

func (f *fakeProvider) SearchChannelsByTopic(_ context.Context, term string, _ int) ([]string, error) {
	return f.topics[term], nil
}

func longVideos(topic string) []model.VideoSample {
	return []model.VideoSample{
		{Title: topic + " deep dive episode one", Description: "An extended discussion about " + topic + " techniques history and community"},
		{Title: topic + " questions answered", Description: "Viewer questions about " + topic + " gear workflow and common mistakes"},
	}
}

func newRankerFixture() (*RankerService, *fakeProvider) {
	provider := &fakeProvider{
		profiles: map[string]*model.ChannelProfile{
			"UCseed": {
				ChannelID:       "UCseed",
				Title:           "Seed Channel",
				SubscriberCount: 100_000,
				VideoCount:      200,
				TopicCategories: []string{"Music"},
			},
			"UCclose": {
				ChannelID:       "UCclose",
				Title:           "Close Match",
				SubscriberCount: 100_000,
				VideoCount:      200,
				TopicCategories: []string{"Music"},
			},
			"UCmid": {
				ChannelID:       "UCmid",
				Title:           "Mid Match",
				SubscriberCount: 1_000_000,
				VideoCount:      200,
				TopicCategories: []string{"Music", "Gaming"},
			},
			"UCfar": {
				ChannelID:       "UCfar",
				Title:           "Far Match",
				SubscriberCount: 100,
				VideoCount:      3,
				TopicCategories: []string{"Travel"},
			},
		},
		videos: map[string][]model.VideoSample{
			"UCseed":  longVideos("synthesizer"),
			"UCclose": longVideos("synthesizer"),
			"UCmid":   longVideos("synthesizer"),
			"UCfar": {
				{Title: "Sourdough starter maintenance routine", Description: "Feeding schedules hydration ratios plus flour selection explained"},
				{Title: "Laminating croissant dough", Description: "Butter temperature folding patterns plus proofing windows"},
			},
		},
	}
	ranker := NewRankerService(provider, newSimilarity())
	return ranker, provider
}

func rankerSubscriptions() []model.Subscription {
	return []model.Subscription{
		{ChannelID: "UCseed", Title: "Seed Channel"},
		{ChannelID: "UCclose", Title: "Close Match"},
		{ChannelID: "UCmid", Title: "Mid Match"},
		{ChannelID: "UCfar", Title: "Far Match"},
		{ChannelID: "UCbroken", Title: "Broken Fetch"},
	}
}

func TestRankForSeed_SeedNotFound(t *testing.T) {
	ranker, _ := newRankerFixture()

	_, err := ranker.RankForSeed(context.Background(), "UCmissing", rankerSubscriptions(), 10)
	if !errors.Is(err, ErrSeedNotFound) {
		t.Fatalf("err = %v, want ErrSeedNotFound", err)
	}
}

func TestRankForSeed_OrderingAndFiltering(t *testing.T) {
	ranker, _ := newRankerFixture()

	recs, err := ranker.RankForSeed(context.Background(), "UCseed", rankerSubscriptions(), 10)
	if err != nil {
		t.Fatalf("RankForSeed: %v", err)
	}

	// UCfar scores below the threshold, UCbroken fails its fetch, and the
	// seed itself never appears.
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2: %+v", len(recs), recs)
	}
	if recs[0].ChannelID != "UCclose" || recs[1].ChannelID != "UCmid" {
		t.Errorf("order = [%s, %s], want [UCclose, UCmid]", recs[0].ChannelID, recs[1].ChannelID)
	}
	if recs[0].Score <= recs[1].Score {
		t.Errorf("scores not descending: %.4f then %.4f", recs[0].Score, recs[1].Score)
	}
	for _, rec := range recs {
		if rec.ChannelID == "UCseed" {
			t.Error("seed channel must not be recommended")
		}
		if rec.Score <= SimilarityThreshold {
			t.Errorf("%s score %.4f at or below threshold", rec.ChannelID, rec.Score)
		}
	}
}

func TestRankForSeed_PerfectMatchScoresOne(t *testing.T) {
	ranker, _ := newRankerFixture()

	recs, err := ranker.RankForSeed(context.Background(), "UCseed", rankerSubscriptions(), 10)
	if err != nil {
		t.Fatalf("RankForSeed: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected at least one recommendation")
	}
	if !almostEqual(recs[0].Score, 1.0, 1e-9) {
		t.Errorf("identical-metadata candidate score = %.6f, want 1.0", recs[0].Score)
	}
}

func TestRankForSeed_TopNTruncates(t *testing.T) {
	ranker, _ := newRankerFixture()

	recs, err := ranker.RankForSeed(context.Background(), "UCseed", rankerSubscriptions(), 1)
	if err != nil {
		t.Fatalf("RankForSeed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].ChannelID != "UCclose" {
		t.Errorf("top recommendation = %s, want UCclose", recs[0].ChannelID)
	}
}

func TestRankForSeed_TruncatesDescriptions(t *testing.T) {
	ranker, provider := newRankerFixture()
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'd'
	}
	provider.profiles["UCclose"].Description = string(long)

	recs, err := ranker.RankForSeed(context.Background(), "UCseed", rankerSubscriptions(), 10)
	if err != nil {
		t.Fatalf("RankForSeed: %v", err)
	}
	if got := len(recs[0].Description); got != model.MaxDescriptionLen+3 {
		t.Errorf("description length = %d, want %d", got, model.MaxDescriptionLen+3)
	}
}
