package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

const (
	MaxChannelIDLen   = 32
	MaxChannelNameLen = 128
	MaxLabelLen       = 40
	MaxLabels         = 10
	MaxLimit          = 100
)

var (
	// channelIDRe matches YouTube channel IDs: alphanumeric, dash, underscore.
	channelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// labelRe matches genre labels: letters, digits, spaces, a few separators.
	labelRe = regexp.MustCompile(`^[A-Za-z0-9 &/+'-]+$`)
)

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
	if len(id) > MaxChannelIDLen {
		return "", "channelId must be at most 32 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId contains invalid characters"
	}
	return id, ""
}

// ValidateChannelName trims and truncates a channel name.
func ValidateChannelName(name string) string {
	name = strings.TrimSpace(name)
	if len(name) > MaxChannelNameLen {
		name = name[:MaxChannelNameLen]
	}
	return name
}

// ValidateDecision checks a curator decision value.
func ValidateDecision(decision string) (string, string) {
	decision = strings.ToLower(strings.TrimSpace(decision))
	switch decision {
	case "approve", "reject", "unsubscribe", "skip":
		return decision, ""
	}
	return "", "decision must be one of approve, reject, unsubscribe, skip"
}

// ValidateSource checks a discovery source selector, defaulting to "all".
func ValidateSource(source string) (string, string) {
	source = strings.ToLower(strings.TrimSpace(source))
	switch source {
	case "":
		return "all", ""
	case "spotify", "youtube", "all":
		return source, ""
	}
	return "", "source must be one of spotify, youtube, all"
}

// ValidateLimit clamps a page size into [1, MaxLimit], defaulting when
// unset.
func ValidateLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ValidateOffset floors a pagination offset at zero.
func ValidateOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// ValidateLabels normalizes a label list: trimmed, non-empty, bounded in
// count and length. Returns an error message when any label is malformed.
func ValidateLabels(labels []string) ([]string, string) {
	if len(labels) > MaxLabels {
		return nil, "at most 10 labels are allowed"
	}
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if len(l) > MaxLabelLen {
			return nil, "labels must be at most 40 characters"
		}
		if !labelRe.MatchString(l) {
			return nil, "labels contain invalid characters"
		}
		out = append(out, l)
	}
	return out, ""
}
