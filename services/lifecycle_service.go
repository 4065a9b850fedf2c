package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/Team-3XHandymen/fix-backend/repository"
	"github.com/google/uuid"
)

type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
)

var (
	ErrForbidden          = errors.New("actor is not allowed to perform this transition")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPreconditionFailed = errors.New("transition precondition failed")
	ErrConflict           = errors.New("booking was updated concurrently, refetch and retry")
)

type transitionRule struct {
	actor       Role
	requiresFee bool
}

// transitionTable is the single source of truth for the booking state machine:
// pending -> accepted -> paid -> done -> completed, with pending -> rejected
// as the only side branch. rejected and completed are terminal.
var transitionTable = map[models.BookingStatus]map[models.BookingStatus]transitionRule{
	models.StatusPending: {
		models.StatusAccepted: {actor: RoleProvider, requiresFee: true},
		models.StatusRejected: {actor: RoleProvider},
	},
	models.StatusAccepted: {
		models.StatusPaid: {actor: RoleClient},
	},
	models.StatusPaid: {
		models.StatusDone: {actor: RoleProvider},
	},
	models.StatusDone: {
		models.StatusCompleted: {actor: RoleClient},
	},
}

// TransitionNotifier receives every committed transition. Delivery is
// best-effort: the transition is already durable when this runs.
type TransitionNotifier interface {
	BookingStatusChanged(ctx context.Context, booking *models.Booking, oldStatus models.BookingStatus, actorID uuid.UUID)
}

type LifecycleService struct {
	bookings repository.BookingRepository
	notifier TransitionNotifier
}

func NewLifecycleService(bookings repository.BookingRepository, notifier TransitionNotifier) *LifecycleService {
	return &LifecycleService{bookings: bookings, notifier: notifier}
}

// Create persists a new booking in pending with no fee set.
func (s *LifecycleService) Create(ctx context.Context, booking *models.Booking) error {
	booking.Status = models.StatusPending
	booking.Fee = nil
	return s.bookings.Create(ctx, booking)
}

// Transition validates and applies one edge of the state machine.
//
// Checks run in a fixed order: booking exists, actor is a party on the booking
// (which also decides whether they act as client or provider here), the edge
// exists, the actor role matches the edge, edge preconditions hold. The status
// write is a compare-and-swap on the loaded status, so two racing calls on the
// same booking cannot both succeed; the loser gets ErrConflict.
func (s *LifecycleService) Transition(ctx context.Context, bookingID, actorID uuid.UUID, to models.BookingStatus, fee *float64) (*models.Booking, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var actorRole Role
	switch actorID {
	case booking.ClientID:
		actorRole = RoleClient
	case booking.ProviderID:
		actorRole = RoleProvider
	default:
		return nil, fmt.Errorf("%w: not a party on this booking", ErrForbidden)
	}

	rule, ok := transitionTable[booking.Status][to]
	if !ok {
		return nil, fmt.Errorf("%w: cannot move booking from %q to %q", ErrInvalidTransition, booking.Status, to)
	}
	if rule.actor != actorRole {
		return nil, fmt.Errorf("%w: transition %q -> %q requires the %s", ErrForbidden, booking.Status, to, rule.actor)
	}

	fields := map[string]any{}
	if rule.requiresFee {
		if fee == nil || *fee <= 0 {
			return nil, fmt.Errorf("%w: a fee greater than zero is required to accept", ErrPreconditionFailed)
		}
		fields["fee"] = *fee
	} else if fee != nil {
		// The fee is fixed once set at accept; no renegotiation edge exists.
		return nil, fmt.Errorf("%w: fee can only be set when accepting", ErrPreconditionFailed)
	}

	oldStatus := booking.Status
	updated, err := s.bookings.UpdateStatus(ctx, bookingID, oldStatus, to, fields)
	if err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return nil, fmt.Errorf("%w: expected status %q", ErrConflict, oldStatus)
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.BookingStatusChanged(ctx, updated, oldStatus, actorID)
	}

	return updated, nil
}

func (s *LifecycleService) Get(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	return s.bookings.GetByID(ctx, bookingID)
}

func (s *LifecycleService) ListForClient(ctx context.Context, clientID uuid.UUID) ([]models.Booking, error) {
	return s.bookings.ListForClient(ctx, clientID)
}

func (s *LifecycleService) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]models.Booking, error) {
	return s.bookings.ListForProvider(ctx, providerID)
}
