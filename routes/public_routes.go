package routes

import (
	"github.com/Team-3XHandymen/fix-backend/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/services", handlers.ListServices)
}
