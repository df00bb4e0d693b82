package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/akshitjain2004/EnvoSafe/internal/adapter/middleware"
)

type Routes struct {
	Catalog *CatalogHandler
	Order   *OrderHandler
	Wallet  *WalletHandler
	Profile *ProfileHandler          // nil without a database
	Auth    middleware.TokenResolver // required when Profile is set

	// AdminToken gates token issuance. Empty leaves issuance to the
	// external auth service and the route is not mounted.
	AdminToken string
}

// Register mounts the API under /v1.
func Register(app *fiber.App, r Routes) {
	api := app.Group("/v1")

	api.Get("/plants", r.Catalog.List)
	api.Get("/plants/:name", r.Catalog.Get)
	api.Get("/plants/:name/price", r.Catalog.Quote)

	api.Get("/order", r.Order.Get)
	api.Post("/order/plant", r.Order.SelectPlant)
	api.Post("/order/quantity", r.Order.SetQuantity)
	api.Post("/order/price", r.Order.Price)
	api.Post("/order/method", r.Order.ChooseMethod)
	api.Post("/order/place", r.Order.Place)
	api.Put("/order/address", r.Order.UpdateAddress)
	api.Post("/order/pay", r.Order.Pay)

	api.Get("/wallet", r.Wallet.Balance)
	api.Post("/wallet/credit", r.Wallet.Credit)
	api.Get("/wallet/entries", r.Wallet.Entries)

	if r.Profile != nil {
		if r.AdminToken != "" {
			api.Post("/profiles/:id/tokens", middleware.AdminOnly(r.AdminToken), r.Profile.IssueToken)
		}
		api.Get("/me", middleware.Protected(r.Auth), r.Profile.Me)
	}
}
