package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
	"github.com/OmarModa/souq_khadamat_be/internal/services/catalog"
)

type PurchaseHandler struct {
	DB      *gorm.DB
	Catalog *catalog.Service
}

func NewPurchaseHandler(db *gorm.DB, svc *catalog.Service) *PurchaseHandler {
	return &PurchaseHandler{DB: db, Catalog: svc}
}

type PurchaseReq struct {
	Notes         string `json:"notes"`
	ScheduledDate string `json:"scheduled_date"` // YYYY-MM-DD, optional
}

// Create books the offering for the calling customer.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
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

	var req PurchaseReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	var scheduled *time.Time
	if s := strings.TrimSpace(req.ScheduledDate); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			errs := FieldErrors{}
			errs.Add("scheduled_date", "Date must be YYYY-MM-DD")
			return validationFail(c, errs)
		}
		scheduled = &d
	}

	purchase, err := h.Catalog.Purchase(customerID, catalog.PurchaseInput{
		ServiceID:     uint(id),
		Notes:         strings.TrimSpace(req.Notes),
		ScheduledDate: scheduled,
	})
	if err != nil {
		if handled, resp := catalogError(c, err); handled {
			return resp
		}
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Service not found",
			})
		}
		log.Printf("[Purchase] service=%d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to book service",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Booking created",
		"data":    purchase,
	})
}

// List returns the caller's bookings, scoped by role: customers see what they
// booked, providers what was booked from them. Both sides get the other
// party's name and contact info.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	role, _ := c.Locals("role").(string)

	q := h.DB.Model(&models.ServicePurchase{}).
		Preload("Service").
		Preload("Customer").
		Preload("Provider")

	switch role {
	case string(models.RoleProvider):
		q = q.Where("provider_id = ?", userID)
	case string(models.RoleAdmin):
		// admins see everything
	default:
		q = q.Where("customer_id = ?", userID)
	}

	var purchases []models.ServicePurchase
	if err := q.Order("created_at desc").Find(&purchases).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load bookings",
		})
	}

	out := make([]fiber.Map, 0, len(purchases))
	for _, p := range purchases {
		entry := fiber.Map{
			"id":             p.ID,
			"service_id":     p.ServiceID,
			"status":         p.Status,
			"total_price":    p.TotalPrice,
			"notes":          p.Notes,
			"scheduled_date": p.ScheduledDate,
			"created_at":     p.CreatedAt,
			"completed_at":   p.CompletedAt,
		}
		if p.Service != nil {
			entry["service_title"] = p.Service.Title
			entry["service_description"] = p.Service.Description
		}
		if p.Provider != nil {
			entry["provider_name"] = p.Provider.Name
			entry["provider_contact"] = p.Provider.ContactInfo
		}
		if p.Customer != nil {
			entry["customer_name"] = p.Customer.Name
			entry["customer_contact"] = p.Customer.ContactInfo
		}
		out = append(out, entry)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// Confirm, Cancel, and Complete are provider moves on a booking.
func (h *PurchaseHandler) Confirm(c *fiber.Ctx) error {
	return h.applyTransition(c, h.Catalog.Confirm, "Booking confirmed")
}

func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	return h.applyTransition(c, h.Catalog.Cancel, "Booking cancelled")
}

func (h *PurchaseHandler) Complete(c *fiber.Ctx) error {
	return h.applyTransition(c, h.Catalog.CompletePurchase, "Booking completed")
}

func (h *PurchaseHandler) applyTransition(c *fiber.Ctx, move func(uuid.UUID, uint) (*models.ServicePurchase, error), okMsg string) error {
	providerID, err := getUserUUID(c)
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

	purchase, err := move(providerID, uint(id))
	if err != nil {
		if handled, resp := catalogError(c, err); handled {
			return resp
		}
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Booking not found",
			})
		}
		log.Printf("[Purchase] transition id=%d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update booking",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": okMsg,
		"data":    purchase,
	})
}
