package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAccepted  BookingStatus = "accepted"
	StatusRejected  BookingStatus = "rejected"
	StatusPaid      BookingStatus = "paid"
	StatusDone      BookingStatus = "done"
	StatusCompleted BookingStatus = "completed"
)

// IsTerminal reports whether a booking in this status can never move again.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusPaid, StatusDone, StatusCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID         uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Reference  string        `gorm:"size:12;unique" json:"reference"`
	ClientID   uuid.UUID     `gorm:"not null" json:"client_id"`
	ProviderID uuid.UUID     `gorm:"not null" json:"provider_id"`
	ServiceID  uuid.UUID     `gorm:"not null" json:"service_id"`
	Status     BookingStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	// Fee stays null while pending and is set by the provider on accept.
	Fee *float64 `gorm:"type:numeric(10,2)" json:"fee"`

	Description   string    `gorm:"type:text;not null" json:"description"`
	Address       string    `gorm:"size:255;not null" json:"address"`
	City          string    `gorm:"size:100" json:"city"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	ScheduledTime time.Time `gorm:"not null" json:"scheduled_time"`
	PhotoURL      *string   `gorm:"size:255" json:"photo_url"`
	ReceiptURL    *string   `gorm:"size:255" json:"receipt_url"`

	Client   User    `gorm:"foreignkey:ClientID" json:"client,omitempty"`
	Provider User    `gorm:"foreignkey:ProviderID" json:"provider,omitempty"`
	Service  Service `gorm:"foreignkey:ServiceID" json:"service,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
