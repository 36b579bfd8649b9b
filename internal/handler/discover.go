package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/9000fm/diggeart/internal/middleware"
	"github.com/9000fm/diggeart/internal/model"
	"github.com/9000fm/diggeart/internal/service"
	"github.com/9000fm/diggeart/internal/spotify"
	"github.com/9000fm/diggeart/internal/youtube"
)

const defaultDiscoverLimit = 20

type DiscoverHandler struct {
	svc *service.DiscoverService
}

func NewDiscoverHandler(svc *service.DiscoverService) *DiscoverHandler {
	return &DiscoverHandler{svc: svc}
}

// Feed handles GET /api/discover
func (h *DiscoverHandler) Feed(c fiber.Ctx) error {
	source, errMsg := middleware.ValidateSource(fiber.Query[string](c, "source"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	limit := middleware.ValidateLimit(fiber.Query[int](c, "limit"), defaultDiscoverLimit)
	offset := middleware.ValidateOffset(fiber.Query[int](c, "offset"))

	var genres []string
	for _, g := range strings.Split(fiber.Query[string](c, "genres"), ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}

	cards, err := h.svc.Discover(c.Context(), genres, limit, offset, source)
	if err != nil {
		if errors.Is(err, spotify.ErrMissingCredentials) || errors.Is(err, youtube.ErrMissingAPIKey) {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "MISSING_CREDENTIALS", err.Error())
		}
		middleware.Logger.Error().Err(err).Msg("discover feed failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build discovery feed")
	}
	if cards == nil {
		cards = []model.Card{}
	}
	return c.JSON(cards)
}
