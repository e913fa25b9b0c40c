package handler

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/middleware"
	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/model"
	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/repository"
	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/service"
)

const (
	defaultRecommendTopN = 10
	defaultDiscoveryTopN = 15
)

type RecommendHandler struct {
	ranker    *service.RankerService
	discovery *service.DiscoveryService
	subs      *repository.SubscriptionRepo
	runs      *repository.RecommendationRepo
	minSubs   int64
}

func NewRecommendHandler(ranker *service.RankerService, discovery *service.DiscoveryService, subs *repository.SubscriptionRepo, runs *repository.RecommendationRepo, minSubs int64) *RecommendHandler {
	return &RecommendHandler{
		ranker:    ranker,
		discovery: discovery,
		subs:      subs,
		runs:      runs,
		minSubs:   minSubs,
	}
}

type recommendRequest struct {
	Seed string `json:"seed"`
	TopN int    `json:"topN"`
}

type discoveryRequest struct {
	Seed           string `json:"seed"`
	MinSubscribers int64  `json:"minSubscribers"`
	TopN           int    `json:"topN"`
}

type recommendResponse struct {
	SeedChannelID string                 `json:"seedChannelId"`
	Source        string                 `json:"source"`
	Count         int                    `json:"count"`
	Items         []model.Recommendation `json:"items"`
}

// Recommend handles POST /api/recommendations — ranks the stored
// subscriptions against the requested seed channel.
func (h *RecommendHandler) Recommend(c fiber.Ctx) error {
	var req recommendRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
	}

	seed, errMsg := middleware.ValidateSeed(req.Seed)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	topN := middleware.ValidateTopN(req.TopN, defaultRecommendTopN)

	subscriptions, err := h.subs.List(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load subscriptions")
	}

	seedSub := resolveSeed(seed, subscriptions)
	if seedSub == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "SEED_NOT_FOUND", "Seed channel is not in the stored subscriptions")
	}

	start := time.Now()
	items, err := h.ranker.RankForSeed(c.Context(), seedSub.ChannelID, subscriptions, topN)
	if err != nil {
		if errors.Is(err, service.ErrSeedNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "SEED_NOT_FOUND", "Seed channel metadata is unavailable")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Recommendation run failed")
	}
	observeRun("subscriptions", time.Since(start))

	h.persistRun(c.Context(), seedSub.ChannelID, "subscriptions", items)

	return c.JSON(recommendResponse{
		SeedChannelID: seedSub.ChannelID,
		Source:        "subscriptions",
		Count:         len(items),
		Items:         items,
	})
}

// Discover handles POST /api/discoveries — surfaces channels outside the
// stored subscription set.
func (h *RecommendHandler) Discover(c fiber.Ctx) error {
	var req discoveryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
	}

	seed, errMsg := middleware.ValidateSeed(req.Seed)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	topN := middleware.ValidateTopN(req.TopN, defaultDiscoveryTopN)

	minSubs := h.minSubs
	if req.MinSubscribers > 0 {
		minSubs = req.MinSubscribers
	}

	subscriptions, err := h.subs.List(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load subscriptions")
	}

	seedSub := resolveSeed(seed, subscriptions)
	if seedSub == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "SEED_NOT_FOUND", "Seed channel is not in the stored subscriptions")
	}

	excluded := make(map[string]struct{}, len(subscriptions))
	for _, sub := range subscriptions {
		excluded[sub.ChannelID] = struct{}{}
	}

	start := time.Now()
	items, err := h.discovery.DiscoverForSeed(c.Context(), seedSub.ChannelID, excluded, minSubs, topN)
	if err != nil {
		if errors.Is(err, service.ErrSeedNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "SEED_NOT_FOUND", "Seed channel metadata is unavailable")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Discovery run failed")
	}
	observeRun("discovery", time.Since(start))

	h.persistRun(c.Context(), seedSub.ChannelID, "discovery", items)

	return c.JSON(recommendResponse{
		SeedChannelID: seedSub.ChannelID,
		Source:        "discovery",
		Count:         len(items),
		Items:         items,
	})
}

// LatestRun handles GET /api/recommendations/:channelId/latest
func (h *RecommendHandler) LatestRun(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	run, err := h.runs.LatestRun(c.Context(), channelID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "No stored run for this channel")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load run")
	}

	return c.JSON(run)
}

// resolveSeed matches the seed reference against the stored subscriptions,
// first by channel ID, then by case-insensitive title.
func resolveSeed(seed string, subscriptions []model.Subscription) *model.Subscription {
	for i := range subscriptions {
		if subscriptions[i].ChannelID == seed {
			return &subscriptions[i]
		}
	}
	for i := range subscriptions {
		if strings.EqualFold(subscriptions[i].Title, seed) {
			return &subscriptions[i]
		}
	}
	return nil
}

// persistRun stores a run best-effort; failures are logged, not surfaced.
// An empty result set is still a valid run.
func (h *RecommendHandler) persistRun(ctx context.Context, seedID, source string, items []model.Recommendation) {
	if _, err := h.runs.SaveRun(ctx, seedID, source, items); err != nil {
		log.Printf("recommend: failed to persist %s run for %s: %v", source, seedID, err)
	}
}
