package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/9000fm/diggeart/internal/middleware"
	"github.com/9000fm/diggeart/internal/service"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Get handles GET /api/stats
func (h *StatsHandler) Get(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("stats failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute stats")
	}
	return c.JSON(stats)
}
