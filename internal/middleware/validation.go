package middleware

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"
)

// Field limits matching database schema constraints.
const (
	MaxChannelIDLen  = 32  // subscriptions.channel_id VARCHAR(32)
	MaxTitleLen      = 100 // subscriptions.channel_title VARCHAR(100)
	MaxTopN          = 50
	MaxSubscriptions = 2000
)

// channelIDRe matches YouTube channel IDs: alphanumeric, dash, underscore.
var channelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateChannelID checks that a channel ID is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if utf8.RuneCountInString(id) > MaxChannelIDLen {
		return "", "channelId must be at most 32 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId contains invalid characters"
	}
	return id, ""
}

// ValidateSeed accepts either a channel ID or a channel title as the seed
// reference. Titles may contain spaces and unicode; only length is enforced.
func ValidateSeed(seed string) (string, string) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return "", "seed is required"
	}
	if utf8.RuneCountInString(seed) > MaxTitleLen {
		return "", "seed must be at most 100 characters"
	}
	return seed, ""
}

// ValidateTopN clamps the requested result count, applying the given default
// when the request omits it.
func ValidateTopN(topN, fallback int) int {
	if topN <= 0 {
		return fallback
	}
	if topN > MaxTopN {
		return MaxTopN
	}
	return topN
}
