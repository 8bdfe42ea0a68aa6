package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/clarity-ai/backend/internal/analysis"
	"github.com/clarity-ai/backend/internal/pipeline"
	"github.com/clarity-ai/backend/pkg/logger"
)

type AnalyzeHandler struct {
	engine *pipeline.Engine
}

func NewAnalyzeHandler(engine *pipeline.Engine) *AnalyzeHandler {
	return &AnalyzeHandler{
		engine: engine,
	}
}

func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req struct {
		Prompt   string `json:"prompt"`
		Category string `json:"category"`
		UserID   string `json:"user_id"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Prompt is required",
		})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	category, err := analysis.ParseCategory(req.Category)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown category",
		})
	}

	result, err := h.engine.Analyze(c.Context(), analysis.Request{
		Prompt:   req.Prompt,
		Category: category,
		UserID:   req.UserID,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyPrompt) || errors.Is(err, pipeline.ErrMissingUserID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logger.Error("Failed to analyze decision", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to analyze decision",
		})
	}

	return c.JSON(result)
}

// HandleLatest returns the sequence-guarded most recent result for a user.
func (h *AnalyzeHandler) HandleLatest(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	result, ok := h.engine.LatestResult(userID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No analysis for this user yet",
		})
	}

	return c.JSON(result)
}
