package conversationapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/errx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/logx"
)

// ErrorHandler converts handler errors to JSON responses. With debug set,
// the underlying cause of an application error is included.
func ErrorHandler(debug bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		entry := logx.WithFields(logx.Fields{
			"path":       c.Path(),
			"method":     c.Method(),
			"request_id": c.Get("X-Request-ID"),
		})

		var fe *fiber.Error
		if errors.As(err, &fe) {
			entry.Warnf("Request error: %v", err)
			return c.Status(fe.Code).JSON(fiber.Map{
				"error":      fe.Message,
				"code":       "FIBER_ERROR",
				"status":     fe.Code,
				"request_id": c.Get("X-Request-ID"),
			})
		}

		if e, ok := errx.As(err); ok {
			if e.HTTPStatus >= fiber.StatusInternalServerError {
				entry.Errorf("Request error: %v", err)
			} else {
				entry.Warnf("Request error: %v", err)
			}
			response := fiber.Map{
				"error":      e.Message,
				"code":       e.Code,
				"type":       string(e.Type),
				"status":     e.HTTPStatus,
				"request_id": c.Get("X-Request-ID"),
			}
			if len(e.Details) > 0 {
				response["details"] = e.Details
			}
			if debug && e.Err != nil {
				response["underlying_error"] = e.Err.Error()
			}
			return c.Status(e.HTTPStatus).JSON(response)
		}

		entry.Errorf("Request error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":      "Internal Server Error",
			"type":       "INTERNAL",
			"code":       "INTERNAL_ERROR",
			"request_id": c.Get("X-Request-ID"),
		})
	}
}

// NotFound answers unmatched routes.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":  "Route not found",
		"code":   "NOT_FOUND",
		"path":   c.Path(),
		"method": c.Method(),
	})
}
