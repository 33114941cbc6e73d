package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"wedding-backend/config"
	"wedding-backend/models"
	"wedding-backend/routes"
	"wedding-backend/services"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Guest{},
		&models.Event{},
		&models.GuestEventInvite{},
		&models.Photo{},
		&models.Activity{},
		&models.GuestActivityInterest{},
		&models.EmailTemplate{},
		&models.EmailLog{},
	)
}

func main() {
	cfg := config.LoadApp()

	reminderService := services.NewReminderService(config.DB, cfg)
	reminderService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter(cfg)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
