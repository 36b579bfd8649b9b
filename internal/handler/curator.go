package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/9000fm/diggeart/internal/middleware"
	"github.com/9000fm/diggeart/internal/service"
)

type CuratorHandler struct {
	svc *service.CuratorService
}

func NewCuratorHandler(svc *service.CuratorService) *CuratorHandler {
	return &CuratorHandler{svc: svc}
}

// Next handles GET /api/curator. With rescan=true&channelId=... it re-serves
// the given channel with a freshly fetched upload sample.
func (h *CuratorHandler) Next(c fiber.Ctx) error {
	if fiber.Query[bool](c, "rescan") {
		channelID, errMsg := middleware.ValidateChannelID(fiber.Query[string](c, "channelId"))
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		next, err := h.svc.Rescan(c.Context(), channelID)
		if err != nil {
			middleware.Logger.Error().Err(err).Msg("curator rescan failed")
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to rescan channel")
		}
		return c.JSON(next)
	}

	next, err := h.svc.Next(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("curator next failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load review state")
	}
	return c.JSON(next)
}

type decisionRequest struct {
	ChannelID   string   `json:"channelId"`
	ChannelName string   `json:"channelName"`
	Decision    string   `json:"decision"`
	Labels      []string `json:"labels"`
}

// Decide handles POST /api/curator
func (h *CuratorHandler) Decide(c fiber.Ctx) error {
	var req decisionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	channelID, errMsg := middleware.ValidateChannelID(req.ChannelID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	decision, errMsg := middleware.ValidateDecision(req.Decision)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	labels, errMsg := middleware.ValidateLabels(req.Labels)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	name := middleware.ValidateChannelName(req.ChannelName)
	if err := h.svc.Decide(c.Context(), channelID, name, decision, labels); err != nil {
		middleware.Logger.Error().Err(err).Str("decision", decision).Msg("curator decision failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record decision")
	}
	return c.JSON(fiber.Map{"ok": true})
}

type channelRequest struct {
	ChannelID string `json:"channelId"`
}

// Undo handles POST /api/curator/undo
func (h *CuratorHandler) Undo(c fiber.Ctx) error {
	var req channelRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	channelID, errMsg := middleware.ValidateChannelID(req.ChannelID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.Undo(c.Context(), channelID); err != nil {
		middleware.Logger.Error().Err(err).Msg("curator undo failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to undo decision")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ToggleStar handles POST /api/curator/star
func (h *CuratorHandler) ToggleStar(c fiber.Ctx) error {
	var req channelRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	channelID, errMsg := middleware.ValidateChannelID(req.ChannelID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	starred, count, err := h.svc.ToggleStar(c.Context(), channelID)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("curator star toggle failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to toggle star")
	}
	return c.JSON(fiber.Map{"starred": starred, "starredCount": count})
}

// ClearSkips handles POST /api/curator/clear-skips
func (h *CuratorHandler) ClearSkips(c fiber.Ctx) error {
	if err := h.svc.ClearSkips(c.Context()); err != nil {
		middleware.Logger.Error().Err(err).Msg("curator clear-skips failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to clear skips")
	}
	return c.JSON(fiber.Map{"ok": true})
}

type importRequest struct {
	URLs string `json:"urls"`
}

// Import handles POST /api/curator/import
func (h *CuratorHandler) Import(c fiber.Ctx) error {
	var req importRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if strings.TrimSpace(req.URLs) == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "urls is required")
	}

	report, err := h.svc.Import(c.Context(), req.URLs)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("curator import failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to import channels")
	}
	return c.JSON(report)
}

// Remove handles DELETE /api/curator/channels/:channelId
func (h *CuratorHandler) Remove(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.Remove(c.Context(), channelID); err != nil {
		middleware.Logger.Error().Err(err).Msg("curator channel removal failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to remove channel")
	}
	return c.JSON(fiber.Map{"ok": true})
}
