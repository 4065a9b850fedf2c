package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/Team-3XHandymen/fix-backend/repository"
	"github.com/google/uuid"
)

// Pusher delivers a payload to every live session of one user. The websocket
// hub implements it; absent sessions are not an error.
type Pusher interface {
	PushToUser(userID uuid.UUID, payload any) error
}

// Mailer sends a rendered email. The Brevo client implements it.
type Mailer interface {
	Send(toName, toEmail, subject, htmlContent string) error
}

// BookingEvent is the wire payload pushed to both parties on every committed
// transition. Seq is monotonic per booking so receivers can dedupe instead of
// guessing by content and timestamps.
type BookingEvent struct {
	Type      string               `json:"type"`
	BookingID uuid.UUID            `json:"booking_id"`
	Reference string               `json:"reference"`
	OldStatus models.BookingStatus `json:"old_status"`
	NewStatus models.BookingStatus `json:"new_status"`
	ActorID   uuid.UUID            `json:"actor_id"`
	Seq       int64                `json:"seq"`
	Timestamp time.Time            `json:"timestamp"`
}

type FanoutService struct {
	notifications repository.NotificationRepository
	pusher        Pusher
	mailer        Mailer
}

func NewFanoutService(notifications repository.NotificationRepository, pusher Pusher, mailer Mailer) *FanoutService {
	return &FanoutService{notifications: notifications, pusher: pusher, mailer: mailer}
}

// BookingStatusChanged fans one committed transition out to both parties:
// a durable notification row each, a live push each, and an email where it
// matters. Every step is best-effort; the transition itself is already
// committed and a reconnecting client recovers by refetching.
func (f *FanoutService) BookingStatusChanged(ctx context.Context, booking *models.Booking, oldStatus models.BookingStatus, actorID uuid.UUID) {
	seq, err := f.notifications.NextSeq(ctx, booking.ID)
	if err != nil {
		log.Printf("fanout: failed to allocate seq for booking %s: %v", booking.ID, err)
		seq = 1
	}

	summary := transitionSummary(booking, oldStatus)

	for _, recipientID := range []uuid.UUID{booking.ClientID, booking.ProviderID} {
		n := models.Notification{
			RecipientID: recipientID,
			BookingID:   booking.ID,
			OldStatus:   oldStatus,
			NewStatus:   booking.Status,
			Seq:         seq,
			Summary:     summary,
		}
		if err := f.notifications.Create(ctx, &n); err != nil {
			log.Printf("fanout: failed to persist notification for %s on booking %s: %v", recipientID, booking.ID, err)
		}
	}

	event := BookingEvent{
		Type:      "booking_event",
		BookingID: booking.ID,
		Reference: booking.Reference,
		OldStatus: oldStatus,
		NewStatus: booking.Status,
		ActorID:   actorID,
		Seq:       seq,
		Timestamp: booking.UpdatedAt,
	}
	if f.pusher != nil {
		for _, recipientID := range []uuid.UUID{booking.ClientID, booking.ProviderID} {
			if err := f.pusher.PushToUser(recipientID, event); err != nil {
				log.Printf("fanout: push to %s failed for booking %s: %v", recipientID, booking.ID, err)
			}
		}
	}

	f.sendTransitionEmails(booking, summary)
}

func (f *FanoutService) sendTransitionEmails(booking *models.Booking, summary string) {
	if f.mailer == nil {
		return
	}

	subject := "Booking Update"
	body := fmt.Sprintf("<h1>Booking Update</h1><p>%s</p>", summary)

	switch booking.Status {
	case models.StatusAccepted, models.StatusRejected:
		go func() {
			if err := f.mailer.Send(booking.Client.FullName, booking.Client.Email, subject, body); err != nil {
				log.Printf("fanout: email to client failed for booking %s: %v", booking.ID, err)
			}
		}()
	case models.StatusPaid, models.StatusCompleted:
		go func() {
			if err := f.mailer.Send(booking.Provider.FullName, booking.Provider.Email, subject, body); err != nil {
				log.Printf("fanout: email to provider failed for booking %s: %v", booking.ID, err)
			}
		}()
	}
}

func transitionSummary(booking *models.Booking, oldStatus models.BookingStatus) string {
	switch booking.Status {
	case models.StatusAccepted:
		if booking.Fee != nil {
			return fmt.Sprintf("Booking %s was accepted with a fee of %.2f", booking.Reference, *booking.Fee)
		}
		return fmt.Sprintf("Booking %s was accepted", booking.Reference)
	case models.StatusRejected:
		return fmt.Sprintf("Booking %s was declined by the provider", booking.Reference)
	case models.StatusPaid:
		return fmt.Sprintf("Booking %s has been paid", booking.Reference)
	case models.StatusDone:
		return fmt.Sprintf("The provider marked booking %s as done", booking.Reference)
	case models.StatusCompleted:
		return fmt.Sprintf("Booking %s is complete", booking.Reference)
	}
	return fmt.Sprintf("Booking %s moved from %s to %s", booking.Reference, oldStatus, booking.Status)
}
