package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/Team-3XHandymen/fix-backend/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatRepo struct {
	mu       sync.Mutex
	messages []models.ChatMessage
}

func (r *fakeChatRepo) Create(_ context.Context, message *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = uuid.New()
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeChatRepo) ListForBooking(_ context.Context, bookingID uuid.UUID) ([]models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.ChatMessage
	for _, m := range r.messages {
		if m.BookingID == bookingID {
			result = append(result, m)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeChatRepo) MarkRead(_ context.Context, bookingID, readerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for i := range r.messages {
		m := &r.messages[i]
		if m.BookingID == bookingID && m.SenderID != readerID && m.ReadAt == nil {
			m.ReadAt = &now
		}
	}
	return nil
}

type fakePusher struct {
	mu     sync.Mutex
	pushes map[uuid.UUID][]any
}

func newFakePusher() *fakePusher {
	return &fakePusher{pushes: make(map[uuid.UUID][]any)}
}

func (p *fakePusher) PushToUser(userID uuid.UUID, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes[userID] = append(p.pushes[userID], payload)
	return nil
}

func (p *fakePusher) pushedTo(userID uuid.UUID) []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.pushes[userID]...)
}

func setupChat(t *testing.T, booking *models.Booking) (*ChatService, *fakeChatRepo, *fakePusher) {
	t.Helper()
	bookings := newFakeBookingRepo()
	if booking != nil {
		clone := *booking
		bookings.bookings[booking.ID] = &clone
	}
	chatRepo := &fakeChatRepo{}
	pusher := newFakePusher()
	return NewChatService(bookings, chatRepo, pusher), chatRepo, pusher
}

func TestChat_SendAndListOrdered(t *testing.T) {
	booking := newTestBooking(models.StatusAccepted)
	svc, _, _ := setupChat(t, booking)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		sender, name := booking.ClientID, "Alice"
		if i%2 == 1 {
			sender, name = booking.ProviderID, "Bob"
		}
		_, err := svc.SendMessage(ctx, booking.ID, sender, name, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	history, err := svc.GetMessages(ctx, booking.ID, booking.ProviderID)
	require.NoError(t, err)
	require.Len(t, history, 5)
	for i, m := range history {
		assert.Equal(t, fmt.Sprintf("message %d", i), m.Content, "history is oldest first")
	}
}

func TestChat_MessagesFlowOnTerminalBookings(t *testing.T) {
	for _, status := range []models.BookingStatus{models.StatusRejected, models.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			booking := newTestBooking(status)
			svc, _, _ := setupChat(t, booking)
			ctx := context.Background()

			_, err := svc.SendMessage(ctx, booking.ID, booking.ClientID, "Alice", "are you still available next week?")
			require.NoError(t, err)

			history, err := svc.GetMessages(ctx, booking.ID, booking.ClientID)
			require.NoError(t, err)
			assert.Len(t, history, 1)
		})
	}
}

func TestChat_MessagePushedToOtherParty(t *testing.T) {
	booking := newTestBooking(models.StatusAccepted)
	svc, _, pusher := setupChat(t, booking)

	_, err := svc.SendMessage(context.Background(), booking.ID, booking.ClientID, "Alice", "hello")
	require.NoError(t, err)

	assert.Len(t, pusher.pushedTo(booking.ProviderID), 1)
	assert.Empty(t, pusher.pushedTo(booking.ClientID), "sender does not get their own push")
}

func TestChat_OutsiderIsForbidden(t *testing.T) {
	booking := newTestBooking(models.StatusAccepted)
	svc, chatRepo, _ := setupChat(t, booking)
	ctx := context.Background()
	stranger := uuid.New()

	_, err := svc.SendMessage(ctx, booking.ID, stranger, "Mallory", "hi")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, chatRepo.messages)

	_, err = svc.GetMessages(ctx, booking.ID, stranger)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.MarkRead(ctx, booking.ID, stranger)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestChat_MissingBooking(t *testing.T) {
	svc, _, _ := setupChat(t, nil)

	_, err := svc.SendMessage(context.Background(), uuid.New(), uuid.New(), "Alice", "hello")
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestChat_EmptyContentRejected(t *testing.T) {
	booking := newTestBooking(models.StatusAccepted)
	svc, chatRepo, _ := setupChat(t, booking)

	_, err := svc.SendMessage(context.Background(), booking.ID, booking.ClientID, "Alice", "")
	assert.ErrorIs(t, err, ErrPreconditionFailed)
	assert.Empty(t, chatRepo.messages)
}

func TestChat_MarkReadOnlyTouchesOthersMessages(t *testing.T) {
	booking := newTestBooking(models.StatusAccepted)
	svc, _, _ := setupChat(t, booking)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, booking.ID, booking.ClientID, "Alice", "from client")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, booking.ID, booking.ProviderID, "Bob", "from provider")
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, booking.ID, booking.ClientID))

	history, err := svc.GetMessages(ctx, booking.ID, booking.ClientID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, m := range history {
		if m.SenderID == booking.ProviderID {
			assert.NotNil(t, m.ReadAt, "provider's message is now read")
		} else {
			assert.Nil(t, m.ReadAt, "client's own message untouched")
		}
	}
}
