package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-stockbill/internal/handler"
	"go-stockbill/internal/middleware"
	"go-stockbill/internal/model"
	"go-stockbill/internal/remote"
	"go-stockbill/internal/repository"
	"go-stockbill/internal/service"
	"go-stockbill/internal/ws"
	"go-stockbill/pkg/database"
	"go-stockbill/pkg/kvstore"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Key-value store: Postgres when configured, in-memory otherwise
	store := openStore()

	// 3. Remote inventory API client
	apiHost := os.Getenv("API_HOST")
	if apiHost == "" {
		apiHost = "http://localhost:8080"
	}
	apiClient := remote.NewClient(apiHost)

	// 4. Notification hub
	hub := ws.NewHub()
	go hub.Run()

	// 5. Dependency Injection (Wiring Layers)
	snapshotRepo := repository.NewSnapshotRepo(store)

	verifier := service.NewFixedCredentials(model.DefaultCredentials())
	authService := service.NewAuthService(verifier, store, loginLatency())
	catalogService := service.NewCatalogService(apiClient, snapshotRepo)
	billService := service.NewBillService(apiClient, snapshotRepo)
	draftService := service.NewDraftService(catalogService, billService)
	dashService := service.NewDashboardService(apiClient, snapshotRepo)
	reportService := service.NewReportService(snapshotRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService, hub)
	billHandler := handler.NewBillHandler(billService, draftService, hub)
	dashHandler := handler.NewDashboardHandler(dashService, hub)
	reportHandler := handler.NewReportHandler(reportService)

	// 6. Restore a prior session, trust-on-read
	if user, err := authService.Restore(); err == nil && user != nil {
		log.Printf("Restored session for %s (%s)", user.Username, user.Role)
	}

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Stockbill v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 8. Routes
	api := app.Group("/api/v1")

	// Auth (no token required)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/session", authHandler.Session)

	// Everything else requires a session token
	protected := api.Group("", middleware.RequireAuth())

	protected.Get("/dashboard", dashHandler.GetSummary)

	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/low-stock", productHandler.GetLowStock)
	protected.Get("/products/expired", productHandler.GetExpired)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", middleware.RequireRole("admin"), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequireRole("admin"), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireRole("admin"), productHandler.DeleteProduct)

	protected.Get("/bills", billHandler.GetBills)
	protected.Get("/bills/:id", billHandler.GetBill)

	protected.Post("/drafts", billHandler.OpenDraft)
	protected.Get("/drafts/:id", billHandler.GetDraft)
	protected.Post("/drafts/:id/items", billHandler.AddDraftItem)
	protected.Put("/drafts/:id/items/:productId", billHandler.UpdateDraftItem)
	protected.Delete("/drafts/:id/items/:productId", billHandler.RemoveDraftItem)
	protected.Post("/drafts/:id/submit", billHandler.SubmitDraft)
	protected.Delete("/drafts/:id", billHandler.DiscardDraft)

	protected.Get("/reports/products", reportHandler.ExportProducts)
	protected.Get("/reports/bills", reportHandler.ExportBills)
	protected.Get("/reports/transactions", reportHandler.ExportTransactions)
	protected.Get("/reports/summary", reportHandler.ExportSummary)

	// Notification stream
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// openStore connects the Postgres-backed key-value store when a database is
// configured, falling back to the in-memory store otherwise.
func openStore() kvstore.Store {
	if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
		log.Println("No database configured, using in-memory store")
		return kvstore.NewMemory()
	}

	db, err := database.Connect()
	if err != nil {
		log.Printf("Warning: database unavailable (%v), using in-memory store", err)
		return kvstore.NewMemory()
	}
	store, err := kvstore.NewGorm(db)
	if err != nil {
		log.Printf("Warning: kv migration failed (%v), using in-memory store", err)
		return kvstore.NewMemory()
	}
	log.Println("Database connection established")
	return store
}

// loginLatency is the artificial delay on mock logins so loading states are
// visible in the UI. LOGIN_LATENCY_MS overrides it.
func loginLatency() time.Duration {
	if ms := os.Getenv("LOGIN_LATENCY_MS"); ms != "" {
		if d, err := time.ParseDuration(ms + "ms"); err == nil {
			return d
		}
	}
	return time.Second
}
