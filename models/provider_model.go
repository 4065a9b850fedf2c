package models

import (
	"time"

	"github.com/google/uuid"
)

// Provider is the professional profile a user gains after applying. A user can
// hold a client account and a provider profile at the same time.
type Provider struct {
	UserID     uuid.UUID  `gorm:"primary_key" json:"user_id"`
	Headline   *string    `gorm:"size:255" json:"headline"`
	Bio        *string    `gorm:"type:text" json:"bio"`
	Status     string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	HourlyRate *float64   `gorm:"type:numeric(10,2)" json:"hourly_rate"`
	AvgRating  float32    `gorm:"default:0" json:"avg_rating"`
	Services   []*Service `gorm:"many2many:provider_services;" json:"services"`
	User       User       `gorm:"foreignkey:UserID" json:"user"`
	CreatedAt  time.Time  `json:"-"`
	UpdatedAt  time.Time  `json:"-"`
}
