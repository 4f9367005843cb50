package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/larissa-mendes/sales-dashboard-api/config"
	"github.com/larissa-mendes/sales-dashboard-api/controllers"
	"github.com/larissa-mendes/sales-dashboard-api/middleware"
	"github.com/larissa-mendes/sales-dashboard-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Sales Dashboard API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Fetch the CSV sources from S3 when a dataset bucket is configured
	if cfg.UsesS3Dataset() {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		if err := services.FetchDatasetFiles(s3Service, cfg.DatasetS3Prefix, cfg.DatasetDir); err != nil {
			log.Fatalf("Failed to fetch dataset from S3: %v", err)
		}
	}

	// Load the six source tables. Nothing downstream can run without
	// them, so any load failure aborts startup.
	dataset, err := services.LoadDataset(cfg.DatasetDir)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	services.SetDataset(dataset)

	// Persist the snapshot into the analytics store
	if err := services.PersistDataset(config.GetDB(), dataset); err != nil {
		log.Fatalf("Failed to persist dataset: %v", err)
	}
	log.Println("Dataset persisted successfully")

	// Initialize Gin router
	router := setupRouter()

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter configures the router with middleware and all API routes
func setupRouter() *gin.Engine {
	router := gin.Default()

	// Dashboard frontends are served from another origin
	router.Use(cors.Default())
	router.Use(middleware.RequestTimer())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database and dataset status endpoints
		v1.GET("/database/status", controllers.DatabaseStatus)
		v1.GET("/dataset/status", controllers.DatasetStatus)

		// Filter widget options
		v1.GET("/filters/options", controllers.GetFilterOptions)

		// Analytics endpoints
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/summary", controllers.GetAnalyticsSummary)
			analytics.GET("/daily", controllers.GetDailyReport)
			analytics.GET("/categories", controllers.GetCategoryRanking)
			analytics.GET("/states", controllers.GetTopStates)
			analytics.GET("/matrix", controllers.GetCategoryStateMatrix)
			analytics.GET("/export", controllers.ExportAnalytics)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sales Dashboard API is running",
	})
}
