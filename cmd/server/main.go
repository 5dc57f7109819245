package main

import (
	"log"
	"time"

	"pasahero-backend/internal/api/routes"
	"pasahero-backend/internal/config"
	"pasahero-backend/internal/repository"
	"pasahero-backend/pkg/cleanup"
	"pasahero-backend/pkg/database"
	"pasahero-backend/pkg/email"
	"pasahero-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to MongoDB
	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Disconnect(db.Client())

	// Initialize Redis client
	redisClient := redis.NewClient(cfg.Redis)
	defer redisClient.Close()

	healthStatus := redisClient.HealthCheck()
	if healthStatus.IsConnected {
		log.Printf("Redis connected successfully at %s", healthStatus.ConnectionInfo)
	} else {
		log.Printf("Redis connection failed: %s (will retry automatically)", healthStatus.Error)
	}

	// Email service for OTP delivery
	emailService := email.NewService(cfg.Email)
	if !emailService.Configured() {
		log.Println("Email delivery not configured; OTP sends will fail until EMAIL_USER and EMAIL_APP_PASSWORD are set")
	}

	// Background sweeper for unconfirmed terminal logs
	sweeper := cleanup.NewSweeper(repository.NewTerminalLogRepository(db), 10*time.Minute, 2*time.Hour)
	go sweeper.Start()
	defer sweeper.Stop()

	// Setup Gin router
	router := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}

	// Handle wildcard origin for development
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}

	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, db, redisClient, emailService)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}
