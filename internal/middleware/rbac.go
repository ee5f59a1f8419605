package middleware

import (
	"strings"

	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/httpx"
	"github.com/gofiber/fiber/v2"
)

// RequireRole gates a route on the role claim resolved by AuthRequired.
func RequireRole(role string) fiber.Handler {
	role = strings.TrimSpace(role)
	return func(c *fiber.Ctx) error {
		if !strings.EqualFold(httpx.LocalString(c, "role"), role) {
			return httpx.Forbidden(c, "forbidden", "Insufficient permissions")
		}
		return c.Next()
	}
}
