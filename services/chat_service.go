package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/Team-3XHandymen/fix-backend/repository"
	"github.com/google/uuid"
)

// ChatMessageEvent is pushed to the other party when a message lands.
type ChatMessageEvent struct {
	Type    string             `json:"type"`
	Message models.ChatMessage `json:"message"`
}

// ChatService binds a chat room 1:1 to a booking. Messages flow in any booking
// status, including rejected and completed, as long as the booking exists.
type ChatService struct {
	bookings repository.BookingRepository
	messages repository.ChatMessageRepository
	pusher   Pusher
}

func NewChatService(bookings repository.BookingRepository, messages repository.ChatMessageRepository, pusher Pusher) *ChatService {
	return &ChatService{bookings: bookings, messages: messages, pusher: pusher}
}

func (s *ChatService) SendMessage(ctx context.Context, bookingID, senderID uuid.UUID, senderName, content string) (*models.ChatMessage, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: message content is empty", ErrPreconditionFailed)
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	recipientID, err := otherParty(booking, senderID)
	if err != nil {
		return nil, err
	}

	message := models.ChatMessage{
		BookingID:  bookingID,
		SenderID:   senderID,
		SenderName: senderName,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	if err := s.messages.Create(ctx, &message); err != nil {
		return nil, err
	}

	if s.pusher != nil {
		event := ChatMessageEvent{Type: "chat_message", Message: message}
		if err := s.pusher.PushToUser(recipientID, event); err != nil {
			log.Printf("chat: push to %s failed for booking %s: %v", recipientID, bookingID, err)
		}
	}

	return &message, nil
}

// GetMessages returns the full history, oldest first. Callers refetch the
// whole sequence; the list is the source of truth, not the push channel.
func (s *ChatService) GetMessages(ctx context.Context, bookingID, requesterID uuid.UUID) ([]models.ChatMessage, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := otherParty(booking, requesterID); err != nil {
		return nil, err
	}
	return s.messages.ListForBooking(ctx, bookingID)
}

func (s *ChatService) MarkRead(ctx context.Context, bookingID, readerID uuid.UUID) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if _, err := otherParty(booking, readerID); err != nil {
		return err
	}
	return s.messages.MarkRead(ctx, bookingID, readerID)
}

// otherParty verifies userID is one of the booking's two parties and returns
// the opposite one.
func otherParty(booking *models.Booking, userID uuid.UUID) (uuid.UUID, error) {
	switch userID {
	case booking.ClientID:
		return booking.ProviderID, nil
	case booking.ProviderID:
		return booking.ClientID, nil
	}
	return uuid.Nil, fmt.Errorf("%w: not a party on this booking", ErrForbidden)
}
