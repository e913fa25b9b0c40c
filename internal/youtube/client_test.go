package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChannelProfile_ParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels" {
			t.Errorf("path = %s, want /channels", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q, want test-key", got)
		}
		w.Write([]byte(`{
			"items": [{
				"id": "UCabc",
				"snippet": {"title": "Test Channel", "description": "About synths"},
				"statistics": {"subscriberCount": "125000", "videoCount": "340", "viewCount": "9000000"},
				"topicDetails": {"topicCategories": ["https://en.wikipedia.org/wiki/Electronic_music"]}
			}]
		}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	profile, err := client.ChannelProfile(context.Background(), "UCabc")
	if err != nil {
		t.Fatalf("ChannelProfile: %v", err)
	}
	if profile == nil {
		t.Fatal("profile is nil")
	}

	if profile.Title != "Test Channel" {
		t.Errorf("title = %q, want Test Channel", profile.Title)
	}
	if profile.SubscriberCount != 125000 {
		t.Errorf("subscriberCount = %d, want 125000", profile.SubscriberCount)
	}
	if profile.VideoCount != 340 {
		t.Errorf("videoCount = %d, want 340", profile.VideoCount)
	}
	if len(profile.TopicCategories) != 1 {
		t.Errorf("topicCategories = %v, want one entry", profile.TopicCategories)
	}
}

func TestChannelProfile_UnknownChannelIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	profile, err := client.ChannelProfile(context.Background(), "UCmissing")
	if err != nil {
		t.Fatalf("ChannelProfile: %v", err)
	}
	if profile != nil {
		t.Errorf("profile = %+v, want nil for unknown channel", profile)
	}
}

func TestGetJSON_RetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	if _, err := client.ChannelProfile(context.Background(), "UCabc"); err != nil {
		t.Fatalf("expected recovery on third attempt, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestGetJSON_ExhaustsRetries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	if _, err := client.ChannelProfile(context.Background(), "UCabc"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != maxAttempts {
		t.Errorf("attempts = %d, want %d", attempts, maxAttempts)
	}
}

func TestGetJSON_ClientErrorDoesNotRetry(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	if _, err := client.ChannelProfile(context.Background(), "UCabc"); err == nil {
		t.Fatal("expected error on 403")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry on client errors)", attempts)
	}
}

func TestSearchChannelsByTopic_CollectsChannelIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "channel" {
			t.Errorf("type = %q, want channel", got)
		}
		w.Write([]byte(`{
			"items": [
				{"id": {"channelId": "UCone"}},
				{"id": {"channelId": "UCtwo"}},
				{"id": {}}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	ids, err := client.SearchChannelsByTopic(context.Background(), "Electronic music", 20)
	if err != nil {
		t.Fatalf("SearchChannelsByTopic: %v", err)
	}
	if len(ids) != 2 || ids[0] != "UCone" || ids[1] != "UCtwo" {
		t.Errorf("ids = %v, want [UCone UCtwo]", ids)
	}
}
