package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/akshitjain2004/EnvoSafe/internal/core/domain"
	"github.com/akshitjain2004/EnvoSafe/internal/core/wallet"
)

// JournalReader serves persisted wallet history.
type JournalReader interface {
	History(ctx context.Context, limit int) ([]wallet.Entry, error)
}

type WalletHandler struct {
	Ledger  *wallet.Ledger
	Journal JournalReader // optional
}

type CreditRequest struct {
	Amount domain.Credits `json:"amount"`
}

func (h *WalletHandler) Balance(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"balance": h.Ledger.Balance()})
}

// Credit tops up the wallet.
func (h *WalletHandler) Credit(c *fiber.Ctx) error {
	var req CreditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	balance, err := h.Ledger.Credit(c.UserContext(), req.Amount, "Wallet top-up")
	if err != nil {
		return respondError(c, err)
	}

	slog.Info("💰 Wallet credited", "amount", req.Amount, "balance", balance)
	return c.JSON(fiber.Map{"status": "success", "balance": balance})
}

// Entries lists wallet movements. With a journal the persisted history is
// returned, otherwise the in-memory entries of this process.
func (h *WalletHandler) Entries(c *fiber.Ctx) error {
	if h.Journal == nil {
		return c.JSON(fiber.Map{"entries": h.Ledger.Entries()})
	}

	history, err := h.Journal.History(c.UserContext(), c.QueryInt("limit", 10))
	if err != nil {
		slog.Error("Could not fetch wallet history", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch history"})
	}
	return c.JSON(fiber.Map{"entries": history})
}
