package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
	"github.com/OmarModa/souq_khadamat_be/internal/services/commission"
)

type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// CommissionReport rolls up platform fees over every completed request.
func (h *AdminHandler) CommissionReport(c *fiber.Ctx) error {
	var requests []models.ServiceRequest
	if err := h.DB.Where("status = ? AND accepted_bid_id IS NOT NULL", models.RequestStatusCompleted).
		Find(&requests).Error; err != nil {
		log.Printf("[CommissionReport] load requests: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to build report",
		})
	}

	bidIDs := make([]uint, 0, len(requests))
	for _, r := range requests {
		if r.AcceptedBidID != nil {
			bidIDs = append(bidIDs, *r.AcceptedBidID)
		}
	}

	bidsByID := map[uint]models.Bid{}
	if len(bidIDs) > 0 {
		var bids []models.Bid
		if err := h.DB.Where("id IN ?", bidIDs).Find(&bids).Error; err != nil {
			log.Printf("[CommissionReport] load bids: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to build report",
			})
		}
		for _, b := range bids {
			bidsByID[b.ID] = b
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    commission.Rollup(requests, bidsByID),
	})
}

// Stats returns headline counts for the admin dashboard.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	var customers, providers int64
	var open, assigned, completed int64
	var bids, ratings int64

	h.DB.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&customers)
	h.DB.Model(&models.User{}).Where("role = ?", models.RoleProvider).Count(&providers)
	h.DB.Model(&models.ServiceRequest{}).Where("status = ?", models.RequestStatusOpen).Count(&open)
	h.DB.Model(&models.ServiceRequest{}).Where("status = ?", models.RequestStatusAssigned).Count(&assigned)
	h.DB.Model(&models.ServiceRequest{}).Where("status = ?", models.RequestStatusCompleted).Count(&completed)
	h.DB.Model(&models.Bid{}).Count(&bids)
	h.DB.Model(&models.Rating{}).Count(&ratings)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"customers": customers,
			"providers": providers,
			"requests": fiber.Map{
				"open":      open,
				"assigned":  assigned,
				"completed": completed,
			},
			"bids":    bids,
			"ratings": ratings,
		},
	})
}

// Users lists accounts, optionally filtered by role.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	q := h.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Order("created_at desc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load users",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
	})
}

// SetUserActive toggles an account on or off.
func (h *AdminHandler) SetUserActive(c *fiber.Ctx) error {
	id := c.Params("id")

	var body struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	res := h.DB.Model(&models.User{}).Where("id = ?", id).Update("is_active", body.IsActive)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update user",
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User updated",
	})
}
