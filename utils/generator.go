package utils

import (
	"math/rand"
	"time"

	"github.com/Team-3XHandymen/fix-backend/models"
	"gorm.io/gorm"
)

const referenceSuffixLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueBookingReference returns a short human-readable code like
// FIX-7K2M9Q4X that is not yet used by any booking.
func GenerateUniqueBookingReference(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, referenceSuffixLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		reference := "FIX-" + string(b)

		var booking models.Booking
		err := tx.Where("reference = ?", reference).First(&booking).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return reference, nil
			}
			return "", err
		}
	}
}
