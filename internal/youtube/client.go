package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/model"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

const (
	maxAttempts  = 3
	retryBackoff = 500 * time.Millisecond
	callTimeout  = 10 * time.Second

	// Outbound request budget. The Data API quota is daily, not per-second;
	// this just keeps bursts polite.
	requestsPerSecond = 8
)

// Client is the authenticated YouTube Data API handle. Construct it once and
// pass it to whatever needs channel metadata; there is no package-level
// singleton.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: callTimeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// ChannelProfile fetches a channel's metadata snapshot. A channel the API
// does not know returns (nil, nil).
func (c *Client) ChannelProfile(ctx context.Context, channelID string) (*model.ChannelProfile, error) {
	params := url.Values{
		"part": {"snippet,statistics,topicDetails"},
		"id":   {channelID},
	}

	var resp channelListResponse
	if err := c.getJSON(ctx, "/channels", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	item := resp.Items[0]
	return &model.ChannelProfile{
		ChannelID:       channelID,
		Title:           item.Snippet.Title,
		Description:     item.Snippet.Description,
		SubscriberCount: parseCount(item.Statistics.SubscriberCount),
		VideoCount:      parseCount(item.Statistics.VideoCount),
		ViewCount:       parseCount(item.Statistics.ViewCount),
		TopicCategories: item.TopicDetails.TopicCategories,
		PublishedAt:     item.Snippet.PublishedAt,
	}, nil
}

// RecentVideos returns title/description samples of a channel's newest
// videos. May be empty.
func (c *Client) RecentVideos(ctx context.Context, channelID string, maxResults int) ([]model.VideoSample, error) {
	params := url.Values{
		"part":       {"snippet"},
		"channelId":  {channelID},
		"order":      {"date"},
		"type":       {"video"},
		"maxResults": {strconv.Itoa(maxResults)},
	}

	var resp searchListResponse
	if err := c.getJSON(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	videos := make([]model.VideoSample, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, model.VideoSample{
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
		})
	}
	return videos, nil
}

// PopularVideos returns a channel's most-viewed videos, view count
// descending. It resolves the view counts with a second videos.list call
// since search results carry no statistics.
func (c *Client) PopularVideos(ctx context.Context, channelID string, maxResults int) ([]model.PopularVideo, error) {
	params := url.Values{
		"part":       {"snippet"},
		"channelId":  {channelID},
		"order":      {"viewCount"},
		"type":       {"video"},
		"maxResults": {strconv.Itoa(maxResults)},
	}

	var searchResp searchListResponse
	if err := c.getJSON(ctx, "/search", params, &searchResp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var videoResp videoListResponse
	err := c.getJSON(ctx, "/videos", url.Values{
		"part": {"snippet,statistics"},
		"id":   {strings.Join(ids, ",")},
	}, &videoResp)
	if err != nil {
		return nil, err
	}

	videos := make([]model.PopularVideo, 0, len(videoResp.Items))
	for _, item := range videoResp.Items {
		videos = append(videos, model.PopularVideo{
			VideoID:   item.ID,
			Title:     item.Snippet.Title,
			ViewCount: parseCount(item.Statistics.ViewCount),
		})
	}
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].ViewCount > videos[j].ViewCount
	})
	return videos, nil
}

// RelatedVideoChannelIDs returns the channel IDs behind videos related to
// the given video.
func (c *Client) RelatedVideoChannelIDs(ctx context.Context, videoID string, maxResults int) ([]string, error) {
	params := url.Values{
		"part":             {"snippet"},
		"relatedToVideoId": {videoID},
		"type":             {"video"},
		"maxResults":       {strconv.Itoa(maxResults)},
	}

	var resp searchListResponse
	if err := c.getJSON(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet.ChannelID != "" {
			ids = append(ids, item.Snippet.ChannelID)
		}
	}
	return ids, nil
}

// SearchChannelsByTopic returns channel IDs matching a topic term.
func (c *Client) SearchChannelsByTopic(ctx context.Context, term string, maxResults int) ([]string, error) {
	params := url.Values{
		"part":       {"snippet"},
		"q":          {term},
		"type":       {"channel"},
		"order":      {"relevance"},
		"maxResults": {strconv.Itoa(maxResults)},
	}

	var resp searchListResponse
	if err := c.getJSON(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.ChannelID != "" {
			ids = append(ids, item.ID.ChannelID)
		}
	}
	return ids, nil
}

// getJSON performs one API call with rate limiting, a per-call timeout, and
// bounded retry with doubling backoff. Transport errors and 5xx responses
// retry; 4xx responses fail immediately.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	backoff := retryBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2
		}

		callCtx, cancel := context.WithTimeout(ctx, callTimeout)
		lastErr = c.doOnce(callCtx, reqURL, out)
		cancel()

		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("youtube: %s failed after %d attempts: %w", path, maxAttempts, lastErr)
}

func (c *Client) doOnce(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &transientError{err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return &transientError{fmt.Errorf("status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube: status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func retryable(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
