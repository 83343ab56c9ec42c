package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
	"github.com/OmarModa/souq_khadamat_be/internal/services/market"
)

type RatingHandler struct {
	DB     *gorm.DB
	Market *market.Service
}

func NewRatingHandler(db *gorm.DB, svc *market.Service) *RatingHandler {
	return &RatingHandler{DB: db, Market: svc}
}

type RateReq struct {
	Score int `json:"score"`
}

// Create records the customer's 1-10 score on a completed request. One per
// request, no updates.
func (h *RatingHandler) Create(c *fiber.Ctx) error {
	customerID, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid id",
		})
	}

	var req RateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	rating, err := h.Market.Rate(customerID, uint(id), req.Score)
	if err != nil {
		if handled, resp := marketError(c, err); handled {
			return resp
		}
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Request not found",
			})
		}
		log.Printf("[Rate] request=%d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save rating",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Rating saved",
		"data":    rating,
	})
}

// providerAverage computes the provider's mean score (one decimal, 0 when
// unrated) and the rating count.
func (h *RatingHandler) providerAverage(providerID uuid.UUID) (float64, int, error) {
	var scores []int
	if err := h.DB.Model(&models.Rating{}).
		Where("provider_id = ?", providerID).
		Pluck("score", &scores).Error; err != nil {
		return 0, 0, err
	}
	return market.AverageRating(scores), len(scores), nil
}

// ProviderSummary returns a provider's average rating and count.
func (h *RatingHandler) ProviderSummary(c *fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid provider id",
		})
	}

	avg, count, err := h.providerAverage(providerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load ratings",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"provider_id":    providerID,
			"average_rating": avg,
			"rating_count":   count,
		},
	})
}
