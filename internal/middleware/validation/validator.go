package validation

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Config struct {
	MaxPromptLength int
	Logger          *zap.Logger
}

// Middleware rejects malformed analyze requests before they reach the
// pipeline: wrong content type, empty prompt, oversized prompt. The empty
// check here guarantees no network call is ever made for blank input.
func Middleware(cfg Config) fiber.Handler {
	if cfg.MaxPromptLength == 0 {
		cfg.MaxPromptLength = 5000
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost || !strings.Contains(c.Path(), "/api/v1/analyze") {
			return c.Next()
		}

		contentType := c.Get("Content-Type")
		if contentType != "" && !strings.Contains(contentType, "application/json") {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
				"error": "Unsupported content type",
			})
		}

		var req map[string]interface{}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid JSON format",
			})
		}

		prompt, ok := req["prompt"].(string)
		if !ok || strings.TrimSpace(prompt) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Prompt is required and must be a non-empty string",
			})
		}

		if len(prompt) > cfg.MaxPromptLength {
			cfg.Logger.Warn("Oversized prompt rejected",
				zap.String("ip", c.IP()),
				zap.Int("length", len(prompt)),
			)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Prompt exceeds maximum length",
			})
		}

		return c.Next()
	}
}
