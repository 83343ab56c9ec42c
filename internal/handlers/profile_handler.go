package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
	"github.com/OmarModa/souq_khadamat_be/internal/services/market"
)

type ProfileHandler struct {
	DB *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{DB: db}
}

func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    u,
	})
}

type UpdateProfileReq struct {
	Name             *string `json:"name"`
	ContactInfo      *string `json:"contact_info"`
	Region           *string `json:"region"`
	Address          *string `json:"address"`
	SpecializationID *uint   `json:"specialization_id"`
}

// Update patches the caller's profile. Only fields present in the body change.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	var req UpdateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.ContactInfo != nil {
		u.ContactInfo = strings.TrimSpace(*req.ContactInfo)
	}
	if req.Region != nil && strings.TrimSpace(*req.Region) != "" {
		u.Region = strings.TrimSpace(*req.Region)
	}
	if req.Address != nil {
		u.Address = strings.TrimSpace(*req.Address)
	}
	if req.SpecializationID != nil && u.Role == models.RoleProvider {
		u.SpecializationID = req.SpecializationID
	}

	if err := h.DB.Save(&u).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update profile",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated",
		"data":    u,
	})
}

type PortfolioReq struct {
	Images      []string `json:"images"`
	Description string   `json:"description"`
}

// UpdatePortfolio replaces the provider's portfolio JSON document.
func (h *ProfileHandler) UpdatePortfolio(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	var req PortfolioReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}
	if req.Images == nil {
		req.Images = []string{}
	}

	doc, err := json.Marshal(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid portfolio",
		})
	}

	if err := h.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("portfolio", datatypes.JSON(doc)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update portfolio",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Portfolio updated",
	})
}

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".webm": true,
}

// UploadVerificationVideo stores the provider's intro/verification clip.
func (h *ProfileHandler) UploadVerificationVideo(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	url, err := saveUpload(c, "video", videoExts)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	if err := h.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("verification_video_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save video",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Video uploaded",
		"data":    fiber.Map{"verification_video_url": url},
	})
}

// Providers lists active providers with their average ratings, optionally
// filtered by specialization and region.
func (h *ProfileHandler) Providers(c *fiber.Ctx) error {
	q := h.DB.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleProvider, true)

	if specID := c.QueryInt("specialization_id"); specID > 0 {
		q = q.Where("specialization_id = ?", specID)
	}
	if region := c.Query("region"); region != "" {
		q = q.Where("region = ?", region)
	}

	var providers []models.User
	if err := q.Order("created_at desc").Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load providers",
		})
	}

	out := make([]fiber.Map, 0, len(providers))
	for _, p := range providers {
		var scores []int
		if err := h.DB.Model(&models.Rating{}).
			Where("provider_id = ?", p.ID).
			Pluck("score", &scores).Error; err != nil {
			scores = nil
		}

		out = append(out, fiber.Map{
			"id":                p.ID,
			"name":              p.Name,
			"region":            p.Region,
			"specialization_id": p.SpecializationID,
			"portfolio":         p.Portfolio,
			"average_rating":    market.AverageRating(scores),
			"rating_count":      len(scores),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}
