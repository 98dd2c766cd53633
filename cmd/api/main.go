package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"assetpool/internal/routes"
	"assetpool/pkg/config"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Initialize database
	config.InitDB()

	// Versioned SQL migrations, for deployments that do not rely on AutoMigrate
	if os.Getenv("RUN_MIGRATIONS") == "true" {
		config.ExecuteMigrations()
	}

	// Initialize RabbitMQ (optional, events are skipped if not configured)
	if os.Getenv("RABBITMQ_HOST") != "" {
		config.InitRabbitMQ()
		defer func() {
			if config.RabbitMQ != nil {
				config.RabbitMQ.Close()
			}
		}()
		log.Println("RabbitMQ initialized successfully")
	} else {
		log.Println("RabbitMQ not configured, skipping initialization")
	}

	// Set up router
	r := routes.SetupRouter()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
