package models

import (
	"time"

	"github.com/google/uuid"
)

// Service is a category of handyman work (plumbing, roofing, ...).
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:100;not null;unique" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IconURL     *string   `gorm:"size:255" json:"icon_url"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
