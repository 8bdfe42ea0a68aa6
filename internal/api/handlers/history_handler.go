package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/clarity-ai/backend/internal/pipeline"
	"github.com/clarity-ai/backend/pkg/logger"
)

type HistoryHandler struct {
	engine *pipeline.Engine
}

func NewHistoryHandler(engine *pipeline.Engine) *HistoryHandler {
	return &HistoryHandler{
		engine: engine,
	}
}

func (h *HistoryHandler) GetHistory(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	// QueryInt returns 0 for a missing or malformed limit, which the
	// engine treats as "use the configured cap".
	limit := c.QueryInt("limit")

	entries, err := h.engine.History(userID, limit)
	if err != nil {
		logger.Error("Failed to load history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load history",
		})
	}

	items := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		items = append(items, fiber.Map{
			"id":          e.ID,
			"user_id":     e.UserID,
			"prompt":      e.Prompt,
			"category":    e.Category,
			"result":      e.Result,
			"metrics":     e.Metrics,
			"result_kind": e.ResultKind,
			"created_at":  e.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"history": items,
	})
}
