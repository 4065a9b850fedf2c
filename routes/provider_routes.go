package routes

import (
	"github.com/Team-3XHandymen/fix-backend/handlers"
	"github.com/Team-3XHandymen/fix-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProviderRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	providers := api.Group("/providers")
	providers.Get("", handlers.ListProviders)
	providers.Get("/:providerId", handlers.GetProvider)
	providers.Post("/apply", middleware.Protected(), handlers.ApplyAsProvider)
}
