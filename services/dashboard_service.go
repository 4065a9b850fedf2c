package services

import (
	"github.com/Team-3XHandymen/fix-backend/models"
)

// DashboardView is the bucketed list the client and provider dashboards
// render. Derived entirely from status; recomputed on every read.
type DashboardView struct {
	ActionRequired []models.Booking `json:"action_required"`
	Ongoing        []models.Booking `json:"ongoing"`
	Recent         []models.Booking `json:"recent"`
}

// BucketBookings sorts bookings into dashboard buckets for the given role.
//
// A provider acts on pending (accept/decline) and paid (do the work); a client
// acts on accepted (pay) and done (confirm completion). Terminal bookings land
// in recent for both.
func BucketBookings(bookings []models.Booking, role Role) DashboardView {
	view := DashboardView{
		ActionRequired: []models.Booking{},
		Ongoing:        []models.Booking{},
		Recent:         []models.Booking{},
	}

	for _, booking := range bookings {
		switch booking.Status {
		case models.StatusRejected, models.StatusCompleted:
			view.Recent = append(view.Recent, booking)
		case models.StatusPending, models.StatusPaid:
			if role == RoleProvider {
				view.ActionRequired = append(view.ActionRequired, booking)
			} else {
				view.Ongoing = append(view.Ongoing, booking)
			}
		case models.StatusAccepted, models.StatusDone:
			if role == RoleClient {
				view.ActionRequired = append(view.ActionRequired, booking)
			} else {
				view.Ongoing = append(view.Ongoing, booking)
			}
		}
	}

	return view
}
