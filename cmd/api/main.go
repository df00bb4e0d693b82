package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/akshitjain2004/EnvoSafe/internal/adapter/handler"
	"github.com/akshitjain2004/EnvoSafe/internal/adapter/middleware"
	"github.com/akshitjain2004/EnvoSafe/internal/adapter/storage"
	"github.com/akshitjain2004/EnvoSafe/internal/core/catalog"
	"github.com/akshitjain2004/EnvoSafe/internal/core/config"
	"github.com/akshitjain2004/EnvoSafe/internal/core/notifications"
	"github.com/akshitjain2004/EnvoSafe/internal/core/order"
	"github.com/akshitjain2004/EnvoSafe/internal/core/wallet"
	"github.com/akshitjain2004/EnvoSafe/internal/core/worker"
)

func main() {
	// 1. Load Config
	cfg := config.LoadConfig()

	// 2. Setup Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Load Catalog
	plants, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		slog.Error("❌ Catalog load failed", "error", err, "path", cfg.CatalogPath)
		os.Exit(1)
	}

	// 4. Connect to Database (optional)
	var (
		journal  *storage.JournalRepository
		profiles *storage.ProfileRepository
		closeDB  = func() {}
	)
	if cfg.DatabaseURL != "" {
		dbPool, err := storage.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("❌ Database connection failed", "error", err)
			os.Exit(1)
		}
		if err := storage.EnsureSchema(ctx, dbPool); err != nil {
			slog.Error("❌ Schema setup failed", "error", err)
			os.Exit(1)
		}
		journal = storage.NewJournalRepository(dbPool)
		profiles = storage.NewProfileRepository(dbPool)
		closeDB = dbPool.Close
	} else {
		slog.Warn("DATABASE_URL not set: running without profile store and wallet journal")
	}

	// 5. Wallet & Order Workflow
	var walletOpts []wallet.Option
	if journal != nil {
		walletOpts = append(walletOpts, wallet.WithJournal(journal))
	}
	ledger, err := wallet.NewLedger(cfg.InitialBalance, walletOpts...)
	if err != nil {
		slog.Error("❌ Wallet setup failed", "error", err)
		os.Exit(1)
	}

	var orderOpts []order.Option
	if cfg.WebhookURL != "" {
		client := notifications.NewClient(cfg.WebhookSecret)
		if cfg.WebhookSecret == "" {
			slog.Warn("⚠️ WEBHOOK_SECRET is missing, webhooks will be unsigned")
		}
		webhooks := worker.NewWebhookWorker(cfg.WebhookURL, client.SendWebhook)
		go webhooks.Run(ctx)
		orderOpts = append(orderOpts, order.WithPublisher(webhooks))
	}
	session := order.NewSession(order.NewWorkflow(plants, ledger, orderOpts...))

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go sweepVisitors(ctx, limiter)

	app.Use(cors.New())
	app.Use(limiter.Handler())

	// 7. Routes
	routes := handler.Routes{
		Catalog: &handler.CatalogHandler{Catalog: plants},
		Order:   &handler.OrderHandler{Session: session},
		Wallet:  &handler.WalletHandler{Ledger: ledger},
	}
	if journal != nil {
		routes.Wallet.Journal = journal
	}
	if profiles != nil {
		routes.Profile = &handler.ProfileHandler{Repo: profiles, Ledger: ledger}
		routes.Auth = profiles
		routes.AdminToken = cfg.AdminToken
		if cfg.AdminToken == "" {
			slog.Warn("⚠️ ADMIN_TOKEN is missing, session tokens must be issued by the auth service")
		}
	}
	handler.Register(app, routes)

	// 8. Run Server in a separate Goroutine so it doesn't block
	go func() {
		slog.Info("🚀 Server starting", "env", cfg.Env, "port", cfg.Port, "plants", len(plants.Plants()), "balance", ledger.Balance())
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
			stop()
		}
	}()

	// Block here until we receive a stop signal
	<-ctx.Done()
	slog.Info("🛑 Shutting down server...")

	// Tell Fiber to stop accepting new requests and finish active ones
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	closeDB()
	slog.Info("👋 Server exited successfully")
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func sweepVisitors(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Sweep(3 * time.Minute); n > 0 {
				slog.Debug("Rate limiter swept idle visitors", "removed", n)
			}
		}
	}
}
