package httpx

import (
	"errors"
	"fmt"

	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/apperr"
	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func requestID(c *fiber.Ctx) string {
	if v := c.Locals("requestid"); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func Error(c *fiber.Ctx, status int, code string, message string) error {
	if message == "" {
		message = "Request failed"
	}
	return c.Status(status).JSON(ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestID(c),
	})
}

func BadRequest(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusBadRequest, code, message)
}

func Unauthorized(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusUnauthorized, code, message)
}

func Forbidden(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusForbidden, code, message)
}

func NotFound(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusNotFound, code, message)
}

func Internal(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusInternalServerError, code, "Internal server error")
}

// FromError maps a service error onto the response envelope by its kind.
// Storage causes stay server-side; the client only sees the code.
func FromError(c *fiber.Ctx, err error) error {
	var e *apperr.Error
	if !errors.As(err, &e) {
		return Internal(c, "internal_error")
	}
	switch e.Kind {
	case apperr.KindValidation:
		return BadRequest(c, e.Code, e.Message)
	case apperr.KindAuthorization:
		return Forbidden(c, e.Code, e.Message)
	case apperr.KindNotFound:
		return NotFound(c, e.Code, e.Message)
	default:
		return Internal(c, e.Code)
	}
}

func LocalUint(c *fiber.Ctx, key string) (uint, error) {
	v := c.Locals(key)
	if v == nil {
		return 0, fmt.Errorf("missing local %s", key)
	}
	u, ok := v.(uint)
	if !ok {
		return 0, fmt.Errorf("invalid local %s", key)
	}
	return u, nil
}

func LocalString(c *fiber.Ctx, key string) string {
	if v := c.Locals(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
