package service

import (
	"context"
	"log"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/model"
)

// CachedProvider wraps a MetadataProvider with the Redis cache-aside layer.
// Profiles and recent-video samples are cached; the discovery lookups
// (popular videos, related videos, topic search) are run-local and pass
// through uncached.
type CachedProvider struct {
	inner MetadataProvider
	cache *CacheService

	// Optional observers, wired to the Prometheus counters at startup.
	OnHit  func()
	OnMiss func()
}

func NewCachedProvider(inner MetadataProvider, cache *CacheService) *CachedProvider {
	return &CachedProvider{inner: inner, cache: cache}
}

func (p *CachedProvider) hit() {
	if p.OnHit != nil {
		p.OnHit()
	}
}

func (p *CachedProvider) miss() {
	if p.OnMiss != nil {
		p.OnMiss()
	}
}

func (p *CachedProvider) ChannelProfile(ctx context.Context, channelID string) (*model.ChannelProfile, error) {
	cached, err := p.cache.GetProfile(ctx, channelID)
	if err != nil {
		log.Printf("cache: profile get error: %v", err)
	} else if cached != nil {
		p.hit()
		return cached, nil
	}
	p.miss()

	profile, err := p.inner.ChannelProfile(ctx, channelID)
	if err != nil || profile == nil {
		return profile, err
	}

	if err := p.cache.SetProfile(ctx, profile); err != nil {
		log.Printf("cache: profile set error: %v", err)
	}
	return profile, nil
}

func (p *CachedProvider) RecentVideos(ctx context.Context, channelID string, maxResults int) ([]model.VideoSample, error) {
	cached, hit, err := p.cache.GetVideos(ctx, channelID)
	if err != nil {
		log.Printf("cache: videos get error: %v", err)
	} else if hit {
		p.hit()
		return cached, nil
	}
	p.miss()

	videos, err := p.inner.RecentVideos(ctx, channelID, maxResults)
	if err != nil {
		return nil, err
	}

	if err := p.cache.SetVideos(ctx, channelID, videos); err != nil {
		log.Printf("cache: videos set error: %v", err)
	}
	return videos, nil
}

func (p *CachedProvider) PopularVideos(ctx context.Context, channelID string, maxResults int) ([]model.PopularVideo, error) {
	return p.inner.PopularVideos(ctx, channelID, maxResults)
}

func (p *CachedProvider) RelatedVideoChannelIDs(ctx context.Context, videoID string, maxResults int) ([]string, error) {
	return p.inner.RelatedVideoChannelIDs(ctx, videoID, maxResults)
}

func (p *CachedProvider) SearchChannelsByTopic(ctx context.Context, term string, maxResults int) ([]string, error) {
	return p.inner.SearchChannelsByTopic(ctx, term, maxResults)
}
