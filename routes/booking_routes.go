package routes

import (
	"github.com/Team-3XHandymen/fix-backend/handlers"
	"github.com/Team-3XHandymen/fix-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Get("/dashboard", handlers.GetDashboard)
	booking.Post("", handlers.CreateBooking)
	booking.Get("/:bookingId", handlers.GetBooking)
	booking.Post("/:bookingId/transition", handlers.TransitionBooking)

	providerBooking := api.Group("/provider/bookings", middleware.Protected(), middleware.ProviderRequired())
	providerBooking.Get("", handlers.GetProviderBookings)
}
