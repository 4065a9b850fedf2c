package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID     *uuid.UUID `json:"booking_id"`
	Amount        float64    `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency      string     `gorm:"size:3" json:"currency"`
	Provider      string     `gorm:"size:50" json:"provider"`
	Status        string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	ProviderTxnID *string    `gorm:"size:100" json:"provider_txn_id"`

	Booking *Booking `gorm:"foreignkey:BookingID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
