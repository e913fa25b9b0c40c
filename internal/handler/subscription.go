package handler

import (
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/middleware"
	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/model"
	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/repository"
)

type SubscriptionHandler struct {
	subs *repository.SubscriptionRepo
}

func NewSubscriptionHandler(subs *repository.SubscriptionRepo) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs}
}

type subscriptionEntry struct {
	ChannelID string `json:"channelId"`
	Title     string `json:"title"`
}

type replaceSubscriptionsRequest struct {
	Subscriptions []subscriptionEntry `json:"subscriptions"`
}

// List handles GET /api/subscriptions
func (h *SubscriptionHandler) List(c fiber.Ctx) error {
	subscriptions, err := h.subs.List(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load subscriptions")
	}

	return c.JSON(fiber.Map{
		"count":         len(subscriptions),
		"subscriptions": subscriptions,
	})
}

// Replace handles PUT /api/subscriptions — replaces the whole stored set
// in a single transaction.
func (h *SubscriptionHandler) Replace(c fiber.Ctx) error {
	var req replaceSubscriptionsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
	}

	if len(req.Subscriptions) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "Subscription list must not be empty")
	}
	if len(req.Subscriptions) > middleware.MaxSubscriptions {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "Subscription list exceeds the maximum size")
	}

	seen := make(map[string]struct{}, len(req.Subscriptions))
	subscriptions := make([]model.Subscription, 0, len(req.Subscriptions))
	for _, entry := range req.Subscriptions {
		channelID, errMsg := middleware.ValidateChannelID(entry.ChannelID)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		title := strings.TrimSpace(entry.Title)
		if title == "" || utf8.RuneCountInString(title) > middleware.MaxTitleLen {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "Channel title must be 1-100 characters")
		}
		if _, dup := seen[channelID]; dup {
			continue
		}
		seen[channelID] = struct{}{}
		subscriptions = append(subscriptions, model.Subscription{ChannelID: channelID, Title: title})
	}

	if err := h.subs.Replace(c.Context(), subscriptions); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to store subscriptions")
	}

	return c.JSON(fiber.Map{
		"stored": len(subscriptions),
	})
}
