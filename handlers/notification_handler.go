package handlers

import (
	"errors"

	"github.com/Team-3XHandymen/fix-backend/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetMyNotifications returns the durable fan-out log for the caller, newest
// first. Sessions that missed live pushes reconstruct state from here.
func GetMyNotifications(c *fiber.Ctx) error {
	userID := currentUserID(c)

	notifications, err := NotificationRepo.ListForRecipient(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}
	return c.JSON(notifications)
}

func MarkNotificationRead(c *fiber.Ctx) error {
	userID := currentUserID(c)

	notificationID, err := uuid.Parse(c.Params("notificationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification id"})
	}

	if err := NotificationRepo.MarkRead(c.Context(), notificationID, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notification"})
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}
