package handlers

import (
	"errors"

	"github.com/Team-3XHandymen/fix-backend/repository"
	"github.com/Team-3XHandymen/fix-backend/services"
	ws "github.com/Team-3XHandymen/fix-backend/websocket"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var validate = validator.New()

var (
	Lifecycle        *services.LifecycleService
	Chat             *services.ChatService
	Hub              *ws.Hub
	NotificationRepo repository.NotificationRepository
)

// InitServices wires the shared services before routes are registered.
func InitServices(lifecycle *services.LifecycleService, chat *services.ChatService, hub *ws.Hub, notifications repository.NotificationRepository) {
	Lifecycle = lifecycle
	Chat = chat
	Hub = hub
	NotificationRepo = notifications
}

func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	return userID
}

func currentUserRole(c *fiber.Ctx) string {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	role, _ := claims["role"].(string)
	return role
}

// lifecycleError maps the domain error taxonomy onto distinct HTTP responses.
// Every kind keeps its own status and code so the UI can show a specific
// message instead of silently dropping a failed request.
func lifecycleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"code": "not_found", "error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"code": "forbidden", "error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"code": "invalid_transition", "error": err.Error()})
	case errors.Is(err, services.ErrPreconditionFailed):
		return c.Status(fiber.StatusPreconditionFailed).JSON(fiber.Map{"code": "precondition_failed", "error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"code": "conflict", "error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"code": "internal", "error": "Something went wrong"})
}
