package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"baro_landing_go/config"
	"baro_landing_go/db"
	"baro_landing_go/handlers"
	"baro_landing_go/middleware"
	"baro_landing_go/models"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Consultation{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files
	e.Static("/static", "static")

	// Landing page and SEO surface
	e.GET("/", handlers.LandingHandler)
	e.GET("/robots.txt", handlers.GetRobotsHandler)
	e.GET("/sitemap.xml", handlers.GetSitemapHandler)
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Shareable tracking links for ad channels
	e.GET("/go/:channel", handlers.TrackingRedirectHandler)
	e.GET("/go/:channel/:materialId", handlers.TrackingRedirectHandler)

	// Public submission endpoint
	e.POST("/api/submit", handlers.SubmitConsultationHandler, middleware.SubmitRateLimiter.Middleware())

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
