package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the durable half of the fan-out: one row per recipient per
// accepted transition, so a session that missed the live push can catch up.
// Seq is monotonic per booking and doubles as the receiver's dedupe key.
type Notification struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RecipientID uuid.UUID     `gorm:"not null;index" json:"recipient_id"`
	BookingID   uuid.UUID     `gorm:"not null;index" json:"booking_id"`
	OldStatus   BookingStatus `gorm:"size:20;not null" json:"old_status"`
	NewStatus   BookingStatus `gorm:"size:20;not null" json:"new_status"`
	Seq         int64         `gorm:"not null" json:"seq"`
	Summary     string        `gorm:"size:255;not null" json:"summary"`
	Read        bool          `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
