package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/akshitjain2004/EnvoSafe/internal/core/catalog"
	"github.com/akshitjain2004/EnvoSafe/internal/core/domain"
)

type CatalogHandler struct {
	Catalog *catalog.Catalog
}

func (h *CatalogHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"plants": h.Catalog.Plants()})
}

func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	plant, err := h.Catalog.Find(plantName(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plant)
}

// Quote prices a plant without touching the order session.
func (h *CatalogHandler) Quote(c *fiber.Ctx) error {
	plant, err := h.Catalog.Find(plantName(c))
	if err != nil {
		return respondError(c, err)
	}

	quantity, err := domain.ParseQuantity(c.Query("quantity", "1"))
	if err != nil {
		return respondError(c, err)
	}

	price, err := domain.ComputePrice(&plant, quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"plant": plant, "price": price})
}

func plantName(c *fiber.Ctx) string {
	name := c.Params("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}
