package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/9000fm/diggeart/internal/middleware"
	"github.com/9000fm/diggeart/internal/service"
)

type EnrichHandler struct {
	svc *service.EnrichService
}

func NewEnrichHandler(svc *service.EnrichService) *EnrichHandler {
	return &EnrichHandler{svc: svc}
}

// Run handles GET /api/enrich
func (h *EnrichHandler) Run(c fiber.Ctx) error {
	source := strings.ToLower(strings.TrimSpace(fiber.Query[string](c, "source")))
	switch source {
	case "":
		source = "both"
	case "discogs", "musicbrainz", "both":
	default:
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD",
			"source must be one of discogs, musicbrainz, both")
	}

	result, err := h.svc.EnrichBatch(c.Context(), fiber.Query[int](c, "limit"), source)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("genre enrichment failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to enrich channels")
	}
	return c.JSON(result)
}
