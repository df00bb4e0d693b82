package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/akshitjain2004/EnvoSafe/internal/adapter/middleware"
	"github.com/akshitjain2004/EnvoSafe/internal/core/domain"
	"github.com/akshitjain2004/EnvoSafe/internal/core/security"
	"github.com/akshitjain2004/EnvoSafe/internal/core/wallet"
)

type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	SaveSessionToken(ctx context.Context, userID, tokenHash, prefix string) error
}

type ProfileHandler struct {
	Repo   ProfileStore
	Ledger *wallet.Ledger
}

// IssueToken creates a session token for an existing profile.
func (h *ProfileHandler) IssueToken(c *fiber.Ctx) error {
	userID := c.Params("id")

	// 1. The profile must exist
	if _, err := h.Repo.GetProfile(c.UserContext(), userID); err != nil {
		return respondError(c, err)
	}

	// 2. Generate Secure Token
	token, tokenHash, err := security.GenerateSessionToken()
	if err != nil {
		slog.Error("Crypto error generating token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Crypto error"})
	}

	// 3. Save Hash to DB
	if err := h.Repo.SaveSessionToken(c.UserContext(), userID, tokenHash, security.TokenPrefix); err != nil {
		slog.Error("Failed to save session token", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save token"})
	}

	slog.Info("🔑 Session token issued", "user_id", userID)

	// 4. Show Token to User (ONCE ONLY)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":   token,
		"warning": "Save this now! We won't show it again.",
	})
}

// Me is the dashboard: the stored profile plus the live wallet balance.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	profile, err := h.Repo.GetProfile(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile":        profile,
		"wallet_balance": h.Ledger.Balance(),
	})
}
