package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/config"
	"github.com/WareOnGo/WareOnGo-Website-Backend/pkg/auth"
	"github.com/gofiber/fiber/v2"
)

func newProtectedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthRequired(cfg), func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(uint)
		return c.JSON(fiber.Map{"user_id": userID})
	})
	return app
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret"}
	app := newProtectedApp(cfg)

	token, err := auth.GenerateAccessToken(7, cfg.JWTSecretKey, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestOptionalAuthPassesThroughAndAttachesIdentity(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret"}
	app := fiber.New()
	app.Get("/listing", OptionalAuth(cfg), func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(uint)
		return c.JSON(fiber.Map{"user_id": userID})
	})

	userIDOf := func(header string) uint {
		t.Helper()
		req := httptest.NewRequest("GET", "/listing", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("optional auth must never block, got %d", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		var payload struct {
			UserID uint `json:"user_id"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		return payload.UserID
	}

	if got := userIDOf(""); got != 0 {
		t.Errorf("anonymous request should carry no identity, got user %d", got)
	}

	token, err := auth.GenerateAccessToken(9, cfg.JWTSecretKey, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if got := userIDOf("Bearer " + token); got != 9 {
		t.Errorf("expected user 9 from valid token, got %d", got)
	}

	if got := userIDOf("Bearer not-a-jwt"); got != 0 {
		t.Errorf("invalid token should be ignored, got user %d", got)
	}
}

func TestAuthRequiredRejectsMissingAndMalformedHeaders(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret"}
	app := newProtectedApp(cfg)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/protected", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request failed: %v", tc.name, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", tc.name, resp.StatusCode)
		}
	}
}
