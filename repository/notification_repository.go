package repository

import (
	"context"
	"errors"

	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error

	// NextSeq returns the next per-booking sequence number. Fan-out events for
	// one booking carry strictly increasing values.
	NextSeq(ctx context.Context, bookingID uuid.UUID) (int64, error)

	ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
}

type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *GormNotificationRepository) NextSeq(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	var max int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("booking_id = ?", bookingID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *GormNotificationRepository) ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, err
}

func (r *GormNotificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
