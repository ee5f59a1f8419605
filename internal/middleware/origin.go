package middleware

import (
	"os"
	"strings"

	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/httpx"
	"github.com/gofiber/fiber/v2"
)

func OriginAllowed() fiber.Handler {
	allowed := originSet(os.Getenv("ALLOWED_ORIGINS"))
	return func(c *fiber.Ctx) error {
		origin := strings.TrimSpace(c.Get("Origin"))
		if origin == "" {
			return c.Next()
		}
		if !allowedOrigin(allowed, origin) {
			return httpx.Forbidden(c, "forbidden_origin", "Origin not allowed")
		}
		return c.Next()
	}
}

// originSet parses a comma-separated allow-list into a lookup set. An empty
// set means no restriction.
func originSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			set[part] = struct{}{}
		}
	}
	return set
}

func allowedOrigin(set map[string]struct{}, origin string) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[origin]
	return ok
}
