package handlers

import (
	"github.com/Team-3XHandymen/fix-backend/database"
	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplyAsProviderRequest struct {
	Headline   string   `json:"headline" validate:"required,min=5"`
	Bio        string   `json:"bio" validate:"required,min=20"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	ServiceIDs []string `json:"service_ids" validate:"required,min=1,dive,uuid"`
}

// ApplyAsProvider creates the provider profile for the calling user. The
// account keeps working as a client; the provider role is additive.
func ApplyAsProvider(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req ApplyAsProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.Provider
	if err := database.DB.First(&existing, "user_id = ?", userID).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You already have a provider profile"})
	}

	var services []*models.Service
	if err := database.DB.Where("id IN ?", req.ServiceIDs).Find(&services).Error; err != nil || len(services) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service selection"})
	}

	var provider models.Provider
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		provider = models.Provider{
			UserID:     userID,
			Headline:   &req.Headline,
			Bio:        &req.Bio,
			HourlyRate: req.HourlyRate,
			Status:     "approved",
			Services:   services,
		}
		if err := tx.Create(&provider).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("role", "provider").Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create provider profile"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Provider profile created. Log in again to refresh your role.",
		"provider": provider,
	})
}

func ListProviders(c *fiber.Ctx) error {
	query := database.DB.
		Preload("User").
		Preload("Services").
		Where("status = ?", "approved")

	if serviceID := c.Query("service_id"); serviceID != "" {
		if _, err := uuid.Parse(serviceID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service id"})
		}
		query = query.
			Joins("JOIN provider_services ps ON ps.provider_user_id = providers.user_id").
			Where("ps.service_id = ?", serviceID)
	}

	var providers []models.Provider
	if err := query.Order("avg_rating desc").Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch providers"})
	}
	return c.JSON(providers)
}

func GetProvider(c *fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("providerId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid provider id"})
	}

	var provider models.Provider
	if err := database.DB.Preload("User").Preload("Services").First(&provider, "user_id = ?", providerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Provider not found"})
	}
	return c.JSON(provider)
}
