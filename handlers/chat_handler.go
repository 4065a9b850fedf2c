package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	config "github.com/Team-3XHandymen/fix-backend/configs"
	"github.com/Team-3XHandymen/fix-backend/database"
	"github.com/Team-3XHandymen/fix-backend/models"
	ws "github.com/Team-3XHandymen/fix-backend/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

func SendMessage(c *fiber.Ctx) error {
	senderID := currentUserID(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var sender models.User
	if err := database.DB.First(&sender, "id = ?", senderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	message, err := Chat.SendMessage(c.Context(), bookingID, senderID, sender.FullName, req.Content)
	if err != nil {
		return lifecycleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

func GetMessages(c *fiber.Ctx) error {
	requesterID := currentUserID(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	messages, err := Chat.GetMessages(c.Context(), bookingID, requesterID)
	if err != nil {
		return lifecycleError(c, err)
	}
	return c.JSON(messages)
}

func MarkMessagesRead(c *fiber.Ctx) error {
	readerID := currentUserID(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	if err := Chat.MarkRead(c.Context(), bookingID, readerID); err != nil {
		return lifecycleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Messages marked as read"})
}

// ServeWs is the single push channel per user: after the auth handshake the
// connection receives booking events and chat messages, and accepts outbound
// chat messages. Everything it delivers is also recoverable by refetching, so
// a dropped socket loses nothing.
func ServeWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Unknown user"})
		c.Close()
		return
	}

	client := &ws.Client{UserID: userID, Conn: c}
	Hub.Register <- client
	defer func() {
		Hub.Unregister <- client
		c.Close()
	}()

	type inboundMessage struct {
		BookingID string `json:"booking_id"`
		Content   string `json:"content"`
	}
	for {
		var msg inboundMessage
		if err := c.ReadJSON(&msg); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}

		bookingID, err := uuid.Parse(msg.BookingID)
		if err != nil {
			_ = c.WriteJSON(fiber.Map{"error": "Invalid booking ID"})
			continue
		}

		saved, err := Chat.SendMessage(context.Background(), bookingID, userID, user.FullName, msg.Content)
		if err != nil {
			_ = c.WriteJSON(fiber.Map{"error": err.Error()})
			continue
		}
		// Echo back so the sender's view converges without a refetch.
		_ = c.WriteJSON(saved)
	}
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
