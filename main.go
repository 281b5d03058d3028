package main

import (
	"log"

	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/controllers"
	"github.com/kay-mensah/DataPlug/routes"
	"github.com/kay-mensah/DataPlug/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Ensure the admin account exists
	if err := controllers.EnsureAdminAccount(); err != nil {
		log.Fatal("Failed to create admin account:", err)
	}

	// Initialize Google OAuth
	config.InitGoogleOAuth()

	// Set up router (middleware is attached inside, before the routes)
	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
