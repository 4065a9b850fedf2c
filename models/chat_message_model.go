package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage belongs to exactly one booking. Messages are append-only and
// allowed in every booking status, including rejected and completed.
type ChatMessage struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID  uuid.UUID `gorm:"not null;index" json:"booking_id"`
	SenderID   uuid.UUID `gorm:"not null" json:"sender_id"`
	SenderName string    `gorm:"size:255" json:"sender_name"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	ReadAt     *time.Time `json:"read_at"`

	Sender  User    `gorm:"foreignkey:SenderID" json:"-"`
	Booking Booking `gorm:"foreignkey:BookingID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
