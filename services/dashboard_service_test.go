package services

import (
	"testing"

	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/stretchr/testify/assert"
)

func bookingsWithStatuses(statuses ...models.BookingStatus) []models.Booking {
	bookings := make([]models.Booking, 0, len(statuses))
	for _, status := range statuses {
		b := newTestBooking(status)
		bookings = append(bookings, *b)
	}
	return bookings
}

func statusesOf(bookings []models.Booking) []models.BookingStatus {
	statuses := make([]models.BookingStatus, 0, len(bookings))
	for _, b := range bookings {
		statuses = append(statuses, b.Status)
	}
	return statuses
}

func TestBucketBookings_ClientView(t *testing.T) {
	all := bookingsWithStatuses(
		models.StatusPending,
		models.StatusAccepted,
		models.StatusPaid,
		models.StatusDone,
		models.StatusRejected,
		models.StatusCompleted,
	)

	view := BucketBookings(all, RoleClient)

	assert.ElementsMatch(t,
		[]models.BookingStatus{models.StatusAccepted, models.StatusDone},
		statusesOf(view.ActionRequired),
		"client acts by paying and confirming completion")
	assert.ElementsMatch(t,
		[]models.BookingStatus{models.StatusPending, models.StatusPaid},
		statusesOf(view.Ongoing))
	assert.ElementsMatch(t,
		[]models.BookingStatus{models.StatusRejected, models.StatusCompleted},
		statusesOf(view.Recent))
}

func TestBucketBookings_ProviderView(t *testing.T) {
	all := bookingsWithStatuses(
		models.StatusPending,
		models.StatusAccepted,
		models.StatusPaid,
		models.StatusDone,
		models.StatusRejected,
		models.StatusCompleted,
	)

	view := BucketBookings(all, RoleProvider)

	assert.ElementsMatch(t,
		[]models.BookingStatus{models.StatusPending, models.StatusPaid},
		statusesOf(view.ActionRequired),
		"provider acts on new requests and paid jobs")
	assert.ElementsMatch(t,
		[]models.BookingStatus{models.StatusAccepted, models.StatusDone},
		statusesOf(view.Ongoing))
	assert.ElementsMatch(t,
		[]models.BookingStatus{models.StatusRejected, models.StatusCompleted},
		statusesOf(view.Recent))
}

func TestBucketBookings_EmptyInput(t *testing.T) {
	view := BucketBookings(nil, RoleClient)

	// Empty slices, not nil, so the JSON renders [] instead of null.
	assert.NotNil(t, view.ActionRequired)
	assert.NotNil(t, view.Ongoing)
	assert.NotNil(t, view.Recent)
	assert.Empty(t, view.ActionRequired)
	assert.Empty(t, view.Ongoing)
	assert.Empty(t, view.Recent)
}

func TestBucketBookings_EveryBookingLandsInExactlyOneBucket(t *testing.T) {
	all := bookingsWithStatuses(
		models.StatusPending, models.StatusPending,
		models.StatusAccepted,
		models.StatusPaid,
		models.StatusDone,
		models.StatusRejected,
		models.StatusCompleted, models.StatusCompleted,
	)

	for _, role := range []Role{RoleClient, RoleProvider} {
		view := BucketBookings(all, role)
		total := len(view.ActionRequired) + len(view.Ongoing) + len(view.Recent)
		assert.Equal(t, len(all), total, "role %s", role)
	}
}
