package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/cache"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/handlers"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/httpx"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/middleware"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/models"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/repository"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Ticketing System Messaging",
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-TS-CSRF",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis cache
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}

	redisCache := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache.", err)
		redisCache = nil
	} else {
		log.Println("Redis cache connected successfully")
	}

	profileCache := cache.NewProfileCache(redisCache)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Initialize services
	messageService := service.NewMessageService(messageRepo, userRepo, profileCache)

	// Initialize handlers
	messageHandler := handlers.NewMessageHandler(messageService)

	// Protected routes
	api := app.Group("/api", middleware.OriginAllowed(), middleware.AuthRequired(), middleware.CSRFRequired())

	api.Get("/conversations", messageHandler.GetConversations)
	api.Post("/conversations/:peer_id/read", messageHandler.MarkConversationRead)

	api.Get("/messages", messageHandler.GetMessages)
	api.Post(
		"/messages",
		limiter.New(limiter.Config{
			Max:        60,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				if uid, err := httpx.LocalUint(c, "userID"); err == nil {
					return "send:" + strconv.FormatUint(uint64(uid), 10)
				}
				return c.IP()
			},
		}),
		messageHandler.SendMessage,
	)
	api.Get("/messages/:id", messageHandler.GetMessage)
	api.Delete("/messages/:id", messageHandler.DeleteMessage)

	// Admin oversight
	api.Get("/admin/messages", middleware.RequireRole(models.RoleAdmin), messageHandler.ListAllMessages)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Messaging service is running",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
