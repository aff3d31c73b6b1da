package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stayinubud/config"
	"stayinubud/jobs"
	"stayinubud/models"
	"stayinubud/routes"
	"stayinubud/services"
	"stayinubud/services/logger"
	"stayinubud/services/notification"
)

func migrateTables() {
	if err := config.DB.AutoMigrate(&models.User{}, &models.Villa{}, &models.Booking{}); err != nil {
		panic("Failed to migrate tables: " + err.Error())
	}
}

// ensureAdminAccount provisions the first back-office account from the
// environment, so a fresh deployment is reachable without manual SQL.
func ensureAdminAccount() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	if _, err := services.GetUserByEmail(email); err == nil {
		return
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to create admin account: %v", err)
	}
}

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file found, falling back to the environment: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	migrateTables()
	ensureAdminAccount()

	store := services.NewGormStore(config.DB)
	availability := services.NewAvailabilityService()
	facade := services.NewBookingFacade(services.BookingFacadeOptions{
		Bookings:     store,
		Villas:       store,
		Availability: availability,
		Notifier:     notification.NewHub(m),
		Logger:       logger.NewDefaultLogger(logger.InfoLevel),
	})

	jobs.SetBookingCompleter(facade)
	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, config.RedisClient, facade, availability)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
