package routes

import (
	"github.com/Team-3XHandymen/fix-backend/handlers"
	"github.com/Team-3XHandymen/fix-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func NotificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notifications := api.Group("/notifications", middleware.Protected())
	notifications.Get("", handlers.GetMyNotifications)
	notifications.Patch("/:notificationId/read", handlers.MarkNotificationRead)
}
