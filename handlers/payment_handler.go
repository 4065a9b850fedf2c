package handlers

import (
	"errors"
	"log"

	"github.com/Team-3XHandymen/fix-backend/database"
	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/Team-3XHandymen/fix-backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PaymentWebhookPayload struct {
	BookingID  string  `json:"booking_id"`
	ResultCode int     `json:"result_code"`
	TxnID      string  `json:"txn_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
}

// HandlePaymentWebhook is called by the payment processor once a charge
// settles. A successful charge drives the accepted -> paid transition through
// the same lifecycle engine as every other status change, with the client as
// the acting party. Replayed webhooks are acknowledged without re-applying.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	var payload PaymentWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse webhook payload"})
	}

	bookingID, err := uuid.Parse(payload.BookingID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	log.Printf("Received payment webhook for booking %s, ResultCode: %d", bookingID, payload.ResultCode)

	var existing models.Payment
	if err := database.DB.Where("booking_id = ? AND status = ?", bookingID, "succeeded").First(&existing).Error; err == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Webhook already processed"})
	}

	booking, err := Lifecycle.Get(c.Context(), bookingID)
	if err != nil {
		return lifecycleError(c, err)
	}

	if payload.ResultCode != 0 {
		failed := models.Payment{
			BookingID: &booking.ID,
			Amount:    payload.Amount,
			Currency:  payload.Currency,
			Provider:  "card",
			Status:    "failed",
		}
		if err := database.DB.Create(&failed).Error; err != nil {
			log.Printf("🔥 Failed to record failed payment for booking %s: %v", bookingID, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Acknowledged failed payment"})
	}

	payment := models.Payment{
		BookingID:     &booking.ID,
		Amount:        payload.Amount,
		Currency:      payload.Currency,
		Provider:      "card",
		Status:        "succeeded",
		ProviderTxnID: &payload.TxnID,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		log.Printf("🔥 CRITICAL: Failed to record payment for booking %s: %v", bookingID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	_, err = Lifecycle.Transition(c.Context(), bookingID, booking.ClientID, models.StatusPaid, nil)
	if err != nil {
		// A replay that raced the first delivery lands here; the charge is
		// recorded either way, so acknowledge instead of making the
		// processor retry forever.
		if errors.Is(err, services.ErrInvalidTransition) || errors.Is(err, services.ErrConflict) {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Booking already paid"})
		}
		return lifecycleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Payment processed"})
}
