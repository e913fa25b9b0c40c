package service

import (
	"context"
	"log"
	"time"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/repository"
)

// RefreshWorker is a periodic background job that re-resolves stored
// subscription titles against the provider, so seed lookup by name keeps
// working after channels rename themselves.
type RefreshWorker struct {
	subs     *repository.SubscriptionRepo
	provider MetadataProvider
	interval time.Duration
	stopCh   chan struct{}
}

// NewRefreshWorker creates a worker that ticks every interval.
func NewRefreshWorker(subs *repository.SubscriptionRepo, provider MetadataProvider, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		subs:     subs,
		provider: provider,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic refresh loop. It runs one tick immediately,
// then every interval.
func (w *RefreshWorker) Start(ctx context.Context) {
	log.Printf("refresh-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("refresh-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("refresh-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *RefreshWorker) Stop() {
	close(w.stopCh)
}

// tick runs one cycle: re-fetch every stored subscription's profile and
// update titles that drifted. Provider failures skip that channel.
func (w *RefreshWorker) tick(ctx context.Context) {
	start := time.Now()

	subs, err := w.subs.List(ctx)
	if err != nil {
		log.Printf("refresh-worker: list error: %v", err)
		return
	}

	var updated, skipped int
	for _, sub := range subs {
		profile, err := w.provider.ChannelProfile(ctx, sub.ChannelID)
		if err != nil || profile == nil {
			skipped++
			continue
		}
		if profile.Title == sub.Title {
			continue
		}
		if err := w.subs.UpdateTitle(ctx, sub.ChannelID, profile.Title); err != nil {
			log.Printf("refresh-worker: update error for %s: %v", sub.ChannelID, err)
			continue
		}
		updated++
	}

	elapsed := time.Since(start)
	log.Printf("refresh-worker: tick complete, %d of %d titles updated, %d unavailable (%s)",
		updated, len(subs), skipped, elapsed.Round(time.Millisecond))
}
