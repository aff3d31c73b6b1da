package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"stayinubud/controllers"
	middlewares "stayinubud/middleware"
	"stayinubud/models"
	"stayinubud/services"
)

func SetupRoutes(router *gin.Engine, redisCli *redis.Client, facade *services.BookingFacade, availability *services.AvailabilityService) {

	bookingController := controllers.NewBookingController(facade, redisCli)
	villaController := controllers.NewVillaController(redisCli, availability)

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.SessionMiddleware())

	v1.POST("/auth/login", controllers.Login)
	v1.DELETE("/auth/logout", controllers.Logout)
	v1.POST("/auth/google", controllers.AuthGoogle)

	v1.GET("/villas", villaController.GetVillas)
	v1.GET("/villas/search", villaController.SearchVillas)
	v1.GET("/villas/:id", villaController.GetVillaDetail)
	v1.GET("/villas/:id/bookedDates", villaController.GetVillaBookedDates)
	v1.GET("/villas/:id/calendar", villaController.GetVillaCalendar)
	v1.GET("/villas/:id/checkoutOptions", villaController.GetCheckoutOptions)
	v1.DELETE("/villas/filters", villaController.ClearFilters)
	v1.POST("/villas", middlewares.AuthMiddleware(models.RoleAdmin), villaController.CreateVilla)
	v1.PUT("/villas", middlewares.AuthMiddleware(models.RoleAdmin), villaController.UpdateVilla)
	v1.PUT("/villaStatus", middlewares.AuthMiddleware(models.RoleAdmin), villaController.ChangeVillaStatus)

	v1.GET("/checkAvailability", bookingController.CheckAvailability)
	v1.GET("/quote", bookingController.Quote)
	v1.POST("/bookings", bookingController.CreateBooking)
	v1.PUT("/bookings/:id/cancel", bookingController.CancelBooking)
	v1.GET("/bookingLookup", bookingController.GetBookingByReference)
	v1.GET("/bookings", middlewares.AuthMiddleware(models.RoleStaff, models.RoleAdmin), bookingController.GetBookings)
	v1.GET("/bookings/:id", middlewares.AuthMiddleware(models.RoleStaff, models.RoleAdmin), bookingController.GetBookingDetail)
}
