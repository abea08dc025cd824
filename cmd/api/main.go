package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"waterpark-pos/internal/handler"
	"waterpark-pos/internal/middleware"
	"waterpark-pos/internal/model"
	"waterpark-pos/internal/repository"
	"waterpark-pos/internal/service"
	"waterpark-pos/internal/ws"
	"waterpark-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Price{},
		&model.Setting{},
		&model.RentalTransaction{},
		&model.TicketTransaction{},
	)

	// 3. Seed default prices, settings, and admin user
	seedDefaults(db)

	// 4. Setup live counter feed
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	priceRepo := repository.NewPriceRepo(db)
	settingRepo := repository.NewSettingRepo(db)
	rentalRepo := repository.NewRentalRepo(db)
	ticketRepo := repository.NewTicketRepo(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	txService := service.NewTransactionService(rentalRepo, userRepo, wsHub)
	ticketService := service.NewTicketService(ticketRepo, userRepo, wsHub)
	dashService := service.NewDashboardService(rentalRepo, ticketRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	txHandler := handler.NewTransactionHandler(txService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	priceHandler := handler.NewPriceHandler(priceRepo)
	settingHandler := handler.NewSettingHandler(settingRepo)
	dashHandler := handler.NewDashboardHandler(dashService)
	receiptHandler := handler.NewReceiptHandler(txService, settingRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Waterpark POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)

	api.Get("/prices", priceHandler.List)
	api.Get("/settings", settingHandler.List)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Counter routes: any assigned role
	counter := protected.Group("", middleware.RequireRole())
	counter.Get("/transactions", txHandler.List)
	counter.Post("/transactions", txHandler.Create)
	counter.Patch("/transactions", txHandler.ReturnAdvance)
	counter.Get("/transactions/:id", txHandler.Get)
	counter.Get("/transactions/:id/receipt", receiptHandler.Receipt)
	counter.Get("/receipts/upi-qr", receiptHandler.UPIQR)
	counter.Get("/ticket-transactions", ticketHandler.List)
	counter.Post("/ticket-transactions", ticketHandler.Create)

	// Admin routes
	admin := protected.Group("", middleware.RequireAdmin())
	admin.Put("/prices", priceHandler.Update)
	admin.Put("/settings", settingHandler.Update)
	admin.Get("/users", userHandler.GetUsers)
	admin.Get("/users/:id", userHandler.GetUser)
	admin.Post("/users", userHandler.CreateUser)
	admin.Put("/users/:id", userHandler.UpdateUser)
	admin.Delete("/users/:id", userHandler.DeleteUser)
	admin.Get("/dashboard/stats", dashHandler.GetStats)
	admin.Get("/dashboard/sales", dashHandler.GetSales)

	// Live counter feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
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

// seedDefaults creates default prices, settings, and the first admin user if
// they don't exist
func seedDefaults(db *gorm.DB) {
	priceRepo := repository.NewPriceRepo(db)
	settingRepo := repository.NewSettingRepo(db)
	userRepo := repository.NewUserRepo(db)

	if err := priceRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed prices: %v", err)
	}
	if err := settingRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed settings: %v", err)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}

	if _, err := userRepo.FindByEmail(adminEmail); err != nil {
		role := model.RoleAdmin
		admin := &model.User{
			Email:    adminEmail,
			FullName: "Administrator",
			Role:     &role,
			IsActive: true,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "admin123"
		}
		if err := admin.SetPassword(password); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Printf("Admin user created: %s", adminEmail)
		}
	}
}
