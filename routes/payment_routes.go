package routes

import (
	"github.com/Team-3XHandymen/fix-backend/handlers"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// The processor calls this directly; it authenticates by shared secret at
	// the gateway, not by user JWT.
	api.Post("/payments/webhook", handlers.HandlePaymentWebhook)
}
