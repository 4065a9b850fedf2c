package main

import (
	"log"
	"time"

	"github.com/Team-3XHandymen/fix-backend/database"
	"github.com/Team-3XHandymen/fix-backend/handlers"
	"github.com/Team-3XHandymen/fix-backend/jobs"
	"github.com/Team-3XHandymen/fix-backend/notifications"
	"github.com/Team-3XHandymen/fix-backend/repository"
	"github.com/Team-3XHandymen/fix-backend/routes"
	"github.com/Team-3XHandymen/fix-backend/services"
	ws "github.com/Team-3XHandymen/fix-backend/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedServices()
	notifications.InitEmailService()

	hub := ws.NewHub()
	go hub.Run()

	bookingRepo := repository.NewGormBookingRepository(database.DB)
	chatRepo := repository.NewGormChatMessageRepository(database.DB)
	notificationRepo := repository.NewGormNotificationRepository(database.DB)

	var mailer services.Mailer
	if notifications.EmailClient != nil {
		mailer = notifications.EmailClient
	}
	fanout := services.NewFanoutService(notificationRepo, hub, mailer)
	lifecycle := services.NewLifecycleService(bookingRepo, fanout)
	chat := services.NewChatService(bookingRepo, chatRepo, hub)

	handlers.InitServices(lifecycle, chat, hub, notificationRepo)

	c := cron.New()
	c.AddFunc("*/5 * * * *", jobs.SendUpcomingJobReminders)
	go c.Start()
	log.Println("✅ Cron job for reminders scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "FixIt Backend",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to FixIt API",
		})
	})

	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.ProviderRoutes(app)
	routes.BookingRoutes(app)
	routes.MessagingRoutes(app)
	routes.NotificationRoutes(app)
	routes.PaymentRoutes(app)
	routes.UploadRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
