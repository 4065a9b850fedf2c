package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	// ErrStatusChanged means the compare-and-swap lost: the row exists but its
	// status no longer matches the expected one.
	ErrStatusChanged = errors.New("booking status changed concurrently")
)

// BookingRepository contains all booking DB interactions needed by the
// lifecycle service.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)

	// UpdateStatus applies the transition only if the stored status still
	// equals from. Extra columns to set alongside the status go in fields.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.BookingStatus, fields map[string]any) (*models.Booking, error)

	ListForClient(ctx context.Context, clientID uuid.UUID) ([]models.Booking, error)
	ListForProvider(ctx context.Context, providerID uuid.UUID) ([]models.Booking, error)
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Provider").
		Preload("Service").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.BookingStatus, fields map[string]any) (*models.Booking, error) {
	updates := map[string]any{
		"status":     to,
		"updated_at": time.Now(),
	}
	for k, v := range fields {
		updates[k] = v
	}

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Distinguish a lost race from a missing booking.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrBookingNotFound
		}
		return nil, ErrStatusChanged
	}

	return r.GetByID(ctx, id)
}

func (r *GormBookingRepository) ListForClient(ctx context.Context, clientID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Provider").
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("scheduled_time desc").
		Find(&bookings).Error
	return bookings, err
}

func (r *GormBookingRepository) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("provider_id = ?", providerID).
		Order("scheduled_time desc").
		Find(&bookings).Error
	return bookings, err
}
