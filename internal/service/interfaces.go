package service

import (
	"context"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/model"
)

// MetadataProvider is the channel metadata and search collaborator. All
// methods may fail; the ranking and discovery flows treat a failed fetch as
// absent data for that channel, never as a fatal condition.
type MetadataProvider interface {
	ChannelProfile(ctx context.Context, channelID string) (*model.ChannelProfile, error)
	RecentVideos(ctx context.Context, channelID string, maxResults int) ([]model.VideoSample, error)
	PopularVideos(ctx context.Context, channelID string, maxResults int) ([]model.PopularVideo, error)
	RelatedVideoChannelIDs(ctx context.Context, videoID string, maxResults int) ([]string, error)
	SearchChannelsByTopic(ctx context.Context, term string, maxResults int) ([]string, error)
}
