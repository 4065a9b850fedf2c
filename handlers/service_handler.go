package handlers

import (
	"github.com/Team-3XHandymen/fix-backend/database"
	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/gofiber/fiber/v2"
)

func ListServices(c *fiber.Ctx) error {
	var services []models.Service
	if err := database.DB.Order("name asc").Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch services"})
	}
	return c.JSON(services)
}
