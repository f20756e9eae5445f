package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/cache"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/config"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/database"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/handlers"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/middleware"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/telemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

// @title WareOnGo API
// @version 1.0.0
// @description Warehouse listing and enquiry API
// @host api.wareongo.com
// @BasePath /
// @schemes https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize OpenTelemetry Tracer
	ctx := context.Background()
	tracerShutdown, err := telemetry.InitTracer(ctx, "wareongo-api", cfg.SigNozEndpoint)
	if err != nil {
		log.Printf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	// Initialize OpenTelemetry Metrics
	meterShutdown, err := telemetry.InitMeter(ctx, "wareongo-api", cfg.SigNozEndpoint)
	if err != nil {
		log.Printf("Failed to initialize metrics: %v", err)
	}
	defer func() {
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Error shutting down metrics: %v", err)
		}
	}()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize listing cache. The store degrades gracefully, so an
	// unreachable Redis only disables caching.
	store := cache.NewRedisStore(cfg)
	if err := store.Ping(ctx); err != nil {
		log.Printf("Redis unreachable, listing cache degraded: %v", err)
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "WareOnGo API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	// JSON structured access logging
	app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","status":${status},"latency":"${latency}","ip":"${ip}","method":"${method}","path":"${path}","user_agent":"${ua}","error":"${error}"}` + "\n",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
		TimeZone:   "Asia/Kolkata",
	}))
	app.Use(telemetry.New(telemetry.Config{
		ServiceName: "wareongo-api",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders:     "Accept, Accept-Encoding, Authorization, Content-Type, DNT, Origin, User-Agent, X-Requested-With",
		AllowCredentials: false,
		ExposeHeaders:    "Content-Length, Content-Type",
		MaxAge:           86400,
	}))
	app.Use(middleware.PrometheusMiddleware())

	// Setup routes
	setupRoutes(app, db, store, cfg)

	// Start server
	port := cfg.ServerPort
	if port == "" {
		port = "3000"
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, db *database.DB, store cache.Store, cfg *config.Config) {
	// Prometheus scrape endpoint
	app.Get("/metrics", middleware.PrometheusHandler())

	// Health check endpoints for k8s probes
	app.Get("/healthz", handlers.HealthCheck)
	app.Get("/v1/readiness", handlers.ReadinessCheck(db))
	app.Get("/v1/liveness", handlers.LivenessCheck)

	// Auth routes (no auth required)
	auth := app.Group("/auth")
	handlers.SetupAuthRoutes(auth, db, cfg)

	// Warehouse routes (listing public, writes behind auth)
	warehouses := app.Group("/warehouses")
	handlers.SetupWarehouseRoutes(warehouses, db, store, cfg)

	// Administrative cache endpoints
	cacheGroup := app.Group("/cache")
	handlers.SetupCacheRoutes(cacheGroup, db, store, cfg)

	// Enquiry routes (creation public, listing behind auth)
	enquiries := app.Group("/enquiries")
	handlers.SetupEnquiryRoutes(enquiries, db, cfg)

	// Customer request routes (creation public, listing behind auth)
	customerRequests := app.Group("/customer-requests")
	handlers.SetupCustomerRequestRoutes(customerRequests, db, cfg)
}
