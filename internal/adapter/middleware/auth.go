package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/akshitjain2004/EnvoSafe/internal/core/security"
)

// UserIDKey is the fiber.Locals key holding the authenticated user ID.
const UserIDKey = "user_id"

type TokenResolver interface {
	UserForToken(ctx context.Context, tokenHash string) (string, error)
}

// AdminOnly requires the operator bearer token configured for the service.
func AdminOnly(adminToken string) fiber.Handler {
	adminHash := security.HashToken(adminToken)
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok || !security.ValidateToken(token, adminHash) {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Admin token required"})
		}
		return c.Next()
	}
}

// Protected requires a bearer session token issued by the profile store.
func Protected(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get Token from Header
		authHeader := c.Get("Authorization") // "Bearer es_live_..."
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Missing session token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid Header Format"})
		}

		// 2. Hash the token (We never compare plain text!)
		tokenHash := security.HashToken(parts[1])

		// 3. Check DB
		userID, err := resolver.UserForToken(c.Context(), tokenHash)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session token"})
		}

		// 4. Save User ID to Context (So handler knows who is calling)
		c.Locals(UserIDKey, userID)

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	parts := strings.Split(c.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
