package handlers

import (
	"time"

	"github.com/Team-3XHandymen/fix-backend/database"
	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/Team-3XHandymen/fix-backend/notifications"
	"github.com/Team-3XHandymen/fix-backend/services"
	"github.com/Team-3XHandymen/fix-backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ProviderID    string   `json:"provider_id" validate:"required,uuid"`
	ServiceID     string   `json:"service_id" validate:"required,uuid"`
	Description   string   `json:"description" validate:"required,min=10"`
	Address       string   `json:"address" validate:"required"`
	City          string   `json:"city"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	ScheduledTime string   `json:"scheduled_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	PhotoURL      *string  `json:"photo_url,omitempty"`
}

func CreateBooking(c *fiber.Ctx) error {
	clientID := currentUserID(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	providerID, _ := uuid.Parse(req.ProviderID)
	serviceID, _ := uuid.Parse(req.ServiceID)

	if providerID == clientID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot book your own services"})
	}

	var provider models.Provider
	if err := database.DB.Preload("User").First(&provider, "user_id = ?", providerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Provider not found"})
	}
	if provider.Status != "approved" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Provider is not accepting bookings"})
	}

	var service models.Service
	if err := database.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	scheduledTime, _ := time.Parse(time.RFC3339, req.ScheduledTime)
	if scheduledTime.Before(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Scheduled time cannot be in the past"})
	}

	reference, err := utils.GenerateUniqueBookingReference(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	booking := models.Booking{
		Reference:     reference,
		ClientID:      clientID,
		ProviderID:    providerID,
		ServiceID:     serviceID,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ScheduledTime: scheduledTime,
		PhotoURL:      req.PhotoURL,
	}
	if err := Lifecycle.Create(c.Context(), &booking); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	go notifications.SendEmail(provider.User.FullName, provider.User.Email,
		"You Have a New Booking Request!",
		"<h1>New Booking Request</h1><p>A client has requested your services. Review it on your dashboard to accept or decline.</p>")

	return c.Status(fiber.StatusCreated).JSON(booking)
}

type TransitionRequest struct {
	To  string   `json:"to" validate:"required"`
	Fee *float64 `json:"fee,omitempty"`
}

func TransitionBooking(c *fiber.Ctx) error {
	actorID := currentUserID(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := Lifecycle.Transition(c.Context(), bookingID, actorID, models.BookingStatus(req.To), req.Fee)
	if err != nil {
		return lifecycleError(c, err)
	}

	if booking.Status == models.StatusCompleted {
		go services.GenerateBookingReceipt(*booking)
	}

	return c.JSON(booking)
}

func GetBooking(c *fiber.Ctx) error {
	userID := currentUserID(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := Lifecycle.Get(c.Context(), bookingID)
	if err != nil {
		return lifecycleError(c, err)
	}
	if booking.ClientID != userID && booking.ProviderID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
	}

	return c.JSON(booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	clientID := currentUserID(c)

	bookings, err := Lifecycle.ListForClient(c.Context(), clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}
	return c.JSON(bookings)
}

func GetProviderBookings(c *fiber.Ctx) error {
	providerID := currentUserID(c)

	bookings, err := Lifecycle.ListForProvider(c.Context(), providerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}
	return c.JSON(bookings)
}

// GetDashboard serves the bucketed view for the caller's role. Pure
// recomputation on every read; polling this endpoint is the fallback when the
// websocket channel is down.
func GetDashboard(c *fiber.Ctx) error {
	userID := currentUserID(c)

	role := services.RoleClient
	if currentUserRole(c) == "provider" && c.Query("as") != "client" {
		role = services.RoleProvider
	}

	var bookings []models.Booking
	var err error
	if role == services.RoleProvider {
		bookings, err = Lifecycle.ListForProvider(c.Context(), userID)
	} else {
		bookings, err = Lifecycle.ListForClient(c.Context(), userID)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}

	return c.JSON(services.BucketBookings(bookings, role))
}
