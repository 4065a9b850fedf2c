package routes

import (
	"github.com/Team-3XHandymen/fix-backend/handlers"
	"github.com/Team-3XHandymen/fix-backend/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func MessagingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	messages := api.Group("/bookings/:bookingId/messages", middleware.Protected())
	messages.Get("", handlers.GetMessages)
	messages.Post("", handlers.SendMessage)
	messages.Post("/read", handlers.MarkMessagesRead)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
