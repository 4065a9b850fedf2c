package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/Team-3XHandymen/fix-backend/database"
	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/Team-3XHandymen/fix-backend/notifications"
)

// SendUpcomingJobReminders emails both parties of paid bookings starting
// within the next hour. Runs every 5 minutes; the window widths keep a
// booking from being picked up twice.
func SendUpcomingJobReminders() {
	log.Println("Running job: SendUpcomingJobReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcomingBookings []models.Booking

	err := database.DB.
		Preload("Client").
		Preload("Provider").
		Preload("Service").
		Where("status = ? AND scheduled_time BETWEEN ? AND ?", models.StatusPaid, lowerBound, upperBound).
		Find(&upcomingBookings).Error
	if err != nil {
		log.Printf("Error checking for upcoming jobs: %v", err)
		return
	}

	if len(upcomingBookings) == 0 {
		return
	}

	for _, booking := range upcomingBookings {
		log.Printf("Sending reminder for booking %s", booking.Reference)

		emailSubject := "Reminder: Your Job Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Job Reminder</h1><p>Hi there,</p><p>This is a friendly reminder that the %s job (%s) is scheduled for %s at %s.</p>",
			booking.Service.Name,
			booking.Reference,
			booking.ScheduledTime.Format(time.Kitchen),
			booking.Address,
		)

		go notifications.SendEmail(booking.Client.FullName, booking.Client.Email, emailSubject, emailBody)
		go notifications.SendEmail(booking.Provider.FullName, booking.Provider.Email, emailSubject, emailBody)
	}
}
