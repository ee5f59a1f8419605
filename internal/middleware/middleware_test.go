package middleware

import (
	"net/http/httptest"
	"os"
	"testing"

	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/models"
	"github.com/gofiber/fiber/v2"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"admin passes", models.RoleAdmin, fiber.StatusOK},
		{"role check is case-insensitive", "Admin", fiber.StatusOK},
		{"manager rejected", models.RoleManager, fiber.StatusForbidden},
		{"employee rejected", models.RoleEmployee, fiber.StatusForbidden},
		{"missing role rejected", "", fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/admin",
				func(c *fiber.Ctx) error {
					if tt.role != "" {
						c.Locals("role", tt.role)
					}
					return c.Next()
				},
				RequireRole(models.RoleAdmin),
				func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
			)

			resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		name       string
		allowList  string
		origin     string
		wantStatus int
	}{
		{"listed origin passes", "https://app.example.com", "https://app.example.com", fiber.StatusOK},
		{"unlisted origin rejected", "https://app.example.com", "https://evil.example.com", fiber.StatusForbidden},
		{"no origin header passes", "https://app.example.com", "", fiber.StatusOK},
		{"empty allow-list passes everything", "", "https://anywhere.example.com", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("ALLOWED_ORIGINS", tt.allowList)
			defer os.Unsetenv("ALLOWED_ORIGINS")

			app := fiber.New()
			app.Get("/", OriginAllowed(), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestOriginSet(t *testing.T) {
	set := originSet(" https://a.example.com , ,https://b.example.com ")
	if len(set) != 2 {
		t.Fatalf("originSet parsed %d entries, want 2", len(set))
	}
	if !allowedOrigin(set, "https://a.example.com") {
		t.Error("listed origin not allowed")
	}
	if allowedOrigin(set, "https://c.example.com") {
		t.Error("unlisted origin allowed")
	}
	if !allowedOrigin(originSet(""), "https://c.example.com") {
		t.Error("empty set must allow everything")
	}
}
