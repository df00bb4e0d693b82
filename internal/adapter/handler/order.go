package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/akshitjain2004/EnvoSafe/internal/core/domain"
	"github.com/akshitjain2004/EnvoSafe/internal/core/order"
)

type OrderHandler struct {
	Session *order.Session
}

type SelectPlantRequest struct {
	Name string `json:"name"`
}

// QuantityRequest accepts the quantity as a JSON number or a string.
type QuantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

type PaymentMethodRequest struct {
	Method string `json:"method"`
}

func (h *OrderHandler) reply(c *fiber.Ctx, snap order.Snapshot, err error) error {
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error(), "order": snap})
	}
	return c.JSON(snap)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.Session.Snapshot())
}

func (h *OrderHandler) SelectPlant(c *fiber.Ctx) error {
	var req SelectPlantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	snap, err := h.Session.Do(func(w *order.Workflow) error { return w.SelectPlant(req.Name) })
	return h.reply(c, snap, err)
}

func (h *OrderHandler) SetQuantity(c *fiber.Ctx) error {
	var req QuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	q, err := parseQuantityField(req.Quantity)
	if err != nil {
		return respondError(c, err)
	}

	snap, err := h.Session.Do(func(w *order.Workflow) error { return w.SetQuantity(q) })
	return h.reply(c, snap, err)
}

// Price is the explicit "Calculate Price" action.
func (h *OrderHandler) Price(c *fiber.Ctx) error {
	snap, err := h.Session.Do(func(w *order.Workflow) error { return w.Recompute() })
	return h.reply(c, snap, err)
}

func (h *OrderHandler) ChooseMethod(c *fiber.Ctx) error {
	var req PaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	method, err := domain.ParsePaymentMethod(req.Method)
	if err != nil {
		return respondError(c, err)
	}

	snap, err := h.Session.Do(func(w *order.Workflow) error { return w.ChoosePaymentMethod(method) })
	return h.reply(c, snap, err)
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	snap, err := h.Session.Do(func(w *order.Workflow) error { return w.PlaceOrder() })
	return h.reply(c, snap, err)
}

func (h *OrderHandler) UpdateAddress(c *fiber.Ctx) error {
	var addr domain.Address
	if err := c.BodyParser(&addr); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	snap, err := h.Session.Do(func(w *order.Workflow) error { return w.UpdateAddress(addr) })
	return h.reply(c, snap, err)
}

// Pay confirms payment. Declined and failed payments still answer 200; the
// outcome is in the snapshot's state and message.
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	snap, err := h.Session.Do(func(w *order.Workflow) error { return w.ConfirmPayment(c.UserContext()) })
	if err == nil {
		slog.Info("Payment attempt finished", "state", snap.State, "message", snap.Message)
	}
	return h.reply(c, snap, err)
}

func parseQuantityField(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("%w: missing", domain.ErrInvalidQuantity)
	}

	text := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = strings.TrimSpace(unquoted)
	}

	q, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidQuantity, raw)
	}
	return q, nil
}
