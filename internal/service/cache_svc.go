package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/model"
)

// Provider responses are cached long enough to cover a recommendation run
// without re-burning API quota, short enough to pick up channel changes.
const (
	ProfileCacheTTL = 15 * time.Minute
	VideosCacheTTL  = 15 * time.Minute
)

// CacheService provides a Redis cache-aside layer for provider fetches.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetProfile retrieves a cached channel profile. Returns nil on a miss or
// when caching is disabled.
func (c *CacheService) GetProfile(ctx context.Context, channelID string) (*model.ChannelProfile, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, profileKey(channelID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var profile model.ChannelProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetProfile stores a channel profile in cache.
func (c *CacheService) SetProfile(ctx context.Context, profile *model.ChannelProfile) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, profileKey(profile.ChannelID), b, ProfileCacheTTL).Err()
}

// GetVideos retrieves cached recent-video samples for a channel. The second
// return value reports a cache hit; an empty sample list is a valid entry.
func (c *CacheService) GetVideos(ctx context.Context, channelID string) ([]model.VideoSample, bool, error) {
	if c.rdb == nil {
		return nil, false, nil
	}
	data, err := c.rdb.Get(ctx, videosKey(channelID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var videos []model.VideoSample
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, false, err
	}
	return videos, true, nil
}

// SetVideos stores recent-video samples for a channel.
func (c *CacheService) SetVideos(ctx context.Context, channelID string, videos []model.VideoSample) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(videos)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, videosKey(channelID), b, VideosCacheTTL).Err()
}

// InvalidateChannel removes a channel's cached profile and videos.
func (c *CacheService) InvalidateChannel(ctx context.Context, channelID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, profileKey(channelID), videosKey(channelID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func profileKey(channelID string) string {
	return fmt.Sprintf("profile:%s", channelID)
}

func videosKey(channelID string) string {
	return fmt.Sprintf("videos:%s", channelID)
}
