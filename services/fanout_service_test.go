package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/Team-3XHandymen/fix-backend/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification.ID = uuid.New()
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) NextSeq(_ context.Context, bookingID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var max int64
	for _, n := range r.notifications {
		if n.BookingID == bookingID && n.Seq > max {
			max = n.Seq
		}
	}
	return max + 1, nil
}

func (r *fakeNotificationRepo) ListForRecipient(_ context.Context, recipientID uuid.UUID) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, recipientID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		n := &r.notifications[i]
		if n.ID == id && n.RecipientID == recipientID {
			n.Read = true
			return nil
		}
	}
	return repository.ErrNotificationNotFound
}

type fakeMailer struct {
	sent chan string // recipient emails
}

func (m *fakeMailer) Send(_, toEmail, _, _ string) error {
	m.sent <- toEmail
	return nil
}

func TestFanout_PersistsRowForBothParties(t *testing.T) {
	booking := newTestBooking(models.StatusAccepted)
	booking.Fee = feePtr(150)
	booking.UpdatedAt = time.Now()

	notifRepo := &fakeNotificationRepo{}
	pusher := newFakePusher()
	fanout := NewFanoutService(notifRepo, pusher, nil)

	fanout.BookingStatusChanged(context.Background(), booking, models.StatusPending, booking.ProviderID)

	require.Len(t, notifRepo.notifications, 2)
	recipients := map[uuid.UUID]bool{}
	for _, n := range notifRepo.notifications {
		recipients[n.RecipientID] = true
		assert.Equal(t, booking.ID, n.BookingID)
		assert.Equal(t, models.StatusPending, n.OldStatus)
		assert.Equal(t, models.StatusAccepted, n.NewStatus)
		assert.Equal(t, int64(1), n.Seq)
		assert.Contains(t, n.Summary, booking.Reference)
		assert.False(t, n.Read)
	}
	assert.True(t, recipients[booking.ClientID])
	assert.True(t, recipients[booking.ProviderID])
}

func TestFanout_PushesEventToBothParties(t *testing.T) {
	booking := newTestBooking(models.StatusPaid)
	booking.Fee = feePtr(150)
	booking.UpdatedAt = time.Now()

	notifRepo := &fakeNotificationRepo{}
	pusher := newFakePusher()
	fanout := NewFanoutService(notifRepo, pusher, nil)

	fanout.BookingStatusChanged(context.Background(), booking, models.StatusAccepted, booking.ClientID)

	for _, partyID := range []uuid.UUID{booking.ClientID, booking.ProviderID} {
		pushes := pusher.pushedTo(partyID)
		require.Len(t, pushes, 1)
		event, ok := pushes[0].(BookingEvent)
		require.True(t, ok)
		assert.Equal(t, "booking_event", event.Type)
		assert.Equal(t, booking.ID, event.BookingID)
		assert.Equal(t, models.StatusAccepted, event.OldStatus)
		assert.Equal(t, models.StatusPaid, event.NewStatus)
		assert.Equal(t, booking.ClientID, event.ActorID)
		assert.Equal(t, int64(1), event.Seq)
	}
}

func TestFanout_SeqIsMonotonicPerBooking(t *testing.T) {
	booking := newTestBooking(models.StatusAccepted)
	booking.Fee = feePtr(150)
	other := newTestBooking(models.StatusAccepted)
	other.Fee = feePtr(90)

	notifRepo := &fakeNotificationRepo{}
	pusher := newFakePusher()
	fanout := NewFanoutService(notifRepo, pusher, nil)
	ctx := context.Background()

	fanout.BookingStatusChanged(ctx, booking, models.StatusPending, booking.ProviderID)

	booking.Status = models.StatusPaid
	fanout.BookingStatusChanged(ctx, booking, models.StatusAccepted, booking.ClientID)

	booking.Status = models.StatusDone
	fanout.BookingStatusChanged(ctx, booking, models.StatusPaid, booking.ProviderID)

	// A second booking starts its own sequence.
	fanout.BookingStatusChanged(ctx, other, models.StatusPending, other.ProviderID)

	events := pusher.pushedTo(booking.ClientID)
	require.Len(t, events, 3)
	for i, raw := range events {
		event := raw.(BookingEvent)
		assert.Equal(t, int64(i+1), event.Seq)
	}

	otherEvents := pusher.pushedTo(other.ClientID)
	require.Len(t, otherEvents, 1)
	assert.Equal(t, int64(1), otherEvents[0].(BookingEvent).Seq)
}

func TestFanout_EmailRouting(t *testing.T) {
	tests := []struct {
		status       models.BookingStatus
		oldStatus    models.BookingStatus
		wantsEmail   bool
		recipientKey string // "client" or "provider"
	}{
		{models.StatusAccepted, models.StatusPending, true, "client"},
		{models.StatusRejected, models.StatusPending, true, "client"},
		{models.StatusPaid, models.StatusAccepted, true, "provider"},
		{models.StatusCompleted, models.StatusDone, true, "provider"},
		{models.StatusDone, models.StatusPaid, false, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			booking := newTestBooking(tt.status)
			booking.Client = models.User{Email: "client@example.com", FullName: "Alice"}
			booking.Provider = models.User{Email: "provider@example.com", FullName: "Bob"}

			mailer := &fakeMailer{sent: make(chan string, 2)}
			fanout := NewFanoutService(&fakeNotificationRepo{}, newFakePusher(), mailer)

			fanout.BookingStatusChanged(context.Background(), booking, tt.oldStatus, booking.ClientID)

			if !tt.wantsEmail {
				select {
				case email := <-mailer.sent:
					t.Fatalf("unexpected email to %s", email)
				case <-time.After(100 * time.Millisecond):
				}
				return
			}

			want := "client@example.com"
			if tt.recipientKey == "provider" {
				want = "provider@example.com"
			}
			select {
			case email := <-mailer.sent:
				assert.Equal(t, want, email)
			case <-time.After(2 * time.Second):
				t.Fatal("expected an email, got none")
			}
		})
	}
}

func TestFanout_NilPusherAndMailerAreSafe(t *testing.T) {
	booking := newTestBooking(models.StatusAccepted)
	booking.Fee = feePtr(150)

	fanout := NewFanoutService(&fakeNotificationRepo{}, nil, nil)

	assert.NotPanics(t, func() {
		fanout.BookingStatusChanged(context.Background(), booking, models.StatusPending, booking.ProviderID)
	})
}
