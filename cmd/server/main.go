package main

import (
	"weighbridge/internal/cache"
	"weighbridge/internal/config"
	"weighbridge/internal/database"
	"weighbridge/internal/handlers"
	"weighbridge/internal/repository"
	"weighbridge/internal/schema"
	"weighbridge/internal/sequence"
	"weighbridge/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, cfg.AutoMigrate)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	// Probe the schema once; the result is passed into every layer that
	// builds column lists.
	cols := schema.Detect(db)

	// Initialize Redis-backed lookup cache (optional)
	var cacheClient *cache.Client
	if cfg.RedisURL != "" {
		cacheClient, err = cache.Initialize(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, lookup caching disabled")
			cacheClient = nil
		}
	}

	// Order-number allocation strategy
	allocator := sequence.New(db, cfg.OrderNumberStrategy)
	log.WithField("strategy", cfg.OrderNumberStrategy).Info("order number allocator ready")

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db, cols)
	companyRepo := repository.NewCompanyRepository(db)
	driverRepo := repository.NewDriverRepository(db)

	// Initialize services
	orderService := services.NewOrderService(orderRepo, allocator, cols)
	companyService := services.NewCompanyService(companyRepo, cacheClient)
	driverService := services.NewDriverService(driverRepo, cacheClient)

	// Initialize handlers
	apiHandler := handlers.NewAPIHandler(orderService, companyService, driverService)
	healthHandler := handlers.NewHealthHandler(db)

	// Setup routes
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	router.GET("/health", healthHandler.Check)

	api := router.Group("/api")
	{
		api.GET("/orders", apiHandler.ListOrders)
		api.GET("/orders/:id", apiHandler.GetOrder)
		api.POST("/orders", apiHandler.CreateOrder)
		api.PATCH("/orders/:id", apiHandler.PatchOrder)
		api.DELETE("/orders/:id", apiHandler.DeleteOrder)

		api.GET("/drivers", apiHandler.ListDrivers)
		api.POST("/drivers", apiHandler.UpsertDriver)

		api.GET("/companies", apiHandler.ListCompanies)
		api.POST("/companies", apiHandler.UpsertCompany)
	}

	// Start server
	log.WithField("port", cfg.ServerPort).Info("server starting")
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
