package repository

import (
	"context"
	"time"

	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]models.ChatMessage, error)

	// MarkRead stamps every unread message in the booking that the reader did
	// not send. Safe to call repeatedly.
	MarkRead(ctx context.Context, bookingID, readerID uuid.UUID) error
}

type GormChatMessageRepository struct {
	db *gorm.DB
}

func NewGormChatMessageRepository(db *gorm.DB) *GormChatMessageRepository {
	return &GormChatMessageRepository{db: db}
}

func (r *GormChatMessageRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *GormChatMessageRepository) ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at asc").
		Find(&messages).Error
	return messages, err
}

func (r *GormChatMessageRepository) MarkRead(ctx context.Context, bookingID, readerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("booking_id = ? AND sender_id <> ? AND read_at IS NULL", bookingID, readerID).
		Update("read_at", time.Now()).Error
}
