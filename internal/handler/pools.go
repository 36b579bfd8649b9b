package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/9000fm/diggeart/internal/middleware"
	"github.com/9000fm/diggeart/internal/model"
	"github.com/9000fm/diggeart/internal/service"
)

const (
	defaultMixesLimit   = 10
	defaultSamplesLimit = 12
)

type PoolHandler struct {
	svc *service.PoolService
}

func NewPoolHandler(svc *service.PoolService) *PoolHandler {
	return &PoolHandler{svc: svc}
}

// Mixes handles GET /api/mixes
func (h *PoolHandler) Mixes(c fiber.Ctx) error {
	limit := middleware.ValidateLimit(fiber.Query[int](c, "limit"), defaultMixesLimit)

	cards, err := h.svc.Mixes(c.Context(), limit)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("mixes pool failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build mixes pool")
	}
	if cards == nil {
		cards = []model.Card{}
	}
	return c.JSON(cards)
}

// Samples handles GET /api/samples
func (h *PoolHandler) Samples(c fiber.Ctx) error {
	limit := middleware.ValidateLimit(fiber.Query[int](c, "limit"), defaultSamplesLimit)

	cards, err := h.svc.Samples(c.Context(), limit)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("samples pool failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build samples pool")
	}
	if cards == nil {
		cards = []model.Card{}
	}
	return c.JSON(cards)
}
