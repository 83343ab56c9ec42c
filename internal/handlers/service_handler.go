package handlers

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
	"github.com/OmarModa/souq_khadamat_be/internal/services/catalog"
)

type ServiceHandler struct {
	DB      *gorm.DB
	Catalog *catalog.Service
}

func NewServiceHandler(db *gorm.DB, svc *catalog.Service) *ServiceHandler {
	return &ServiceHandler{DB: db, Catalog: svc}
}

type CreateServiceReq struct {
	Title       string  `json:"title" validate:"required,min=3,max=150"`
	Description string  `json:"description" validate:"required,min=10"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	CategoryID  uint    `json:"category_id" validate:"required"`
	ImageURL    string  `json:"image_url" validate:"omitempty,max=500"`
	WarrantyID  *uint   `json:"warranty_id"`
}

// Create publishes a fixed-price offering for the calling provider.
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	providerID, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	var req CreateServiceReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	if err := validate.Struct(req); err != nil {
		errs := FieldErrors{}
		for _, fe := range err.(validator.ValidationErrors) {
			errs.Add(strings.ToLower(fe.Field()), "failed on "+fe.Tag())
		}
		return validationFail(c, errs)
	}

	var cat models.Category
	if err := h.DB.First(&cat, "id = ?", req.CategoryID).Error; err != nil {
		errs := FieldErrors{}
		errs.Add("category_id", "Unknown category")
		return validationFail(c, errs)
	}

	if req.WarrantyID != nil {
		var w models.WarrantyOption
		if err := h.DB.First(&w, "id = ? AND is_active = ?", *req.WarrantyID, true).Error; err != nil {
			errs := FieldErrors{}
			errs.Add("warranty_id", "Unknown warranty option")
			return validationFail(c, errs)
		}
	}

	svc, err := h.Catalog.CreateService(providerID, catalog.CreateServiceInput{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		WarrantyID:  req.WarrantyID,
	})
	if err != nil {
		if handled, resp := catalogError(c, err); handled {
			return resp
		}
		log.Printf("[CreateService] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create service",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Service created",
		"data":    svc,
	})
}

// List browses active offerings, optionally filtered by category, with
// provider name and region attached.
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	q := h.DB.Model(&models.ProviderService{}).
		Preload("Provider").
		Preload("Category").
		Preload("Warranty").
		Where("is_active = ?", true)

	if catID := c.QueryInt("category_id"); catID > 0 {
		q = q.Where("category_id = ?", catID)
	}

	var services []models.ProviderService
	if err := q.Order("created_at desc").Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load services",
		})
	}

	out := make([]fiber.Map, 0, len(services))
	for _, s := range services {
		entry := fiber.Map{
			"id":          s.ID,
			"provider_id": s.ProviderID,
			"title":       s.Title,
			"description": s.Description,
			"price":       s.Price,
			"category":    s.Category,
			"image_url":   s.ImageURL,
			"warranty":    s.Warranty,
			"created_at":  s.CreatedAt,
		}
		if s.Provider != nil {
			entry["provider_name"] = s.Provider.Name
			entry["provider_region"] = s.Provider.Region
		}
		out = append(out, entry)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// Mine lists the calling provider's offerings, active or not.
func (h *ServiceHandler) Mine(c *fiber.Ctx) error {
	providerID, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	var services []models.ProviderService
	if err := h.DB.Preload("Category").Preload("Warranty").
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load services",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    services,
	})
}

// Toggle flips an offering active/inactive.
func (h *ServiceHandler) Toggle(c *fiber.Ctx) error {
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

	svc, err := h.Catalog.ToggleService(providerID, uint(id))
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
		log.Printf("[ToggleService] id=%d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update service",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Service updated",
		"data":    svc,
	})
}

// Delete removes an offering.
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
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

	if err := h.Catalog.DeleteService(providerID, uint(id)); err != nil {
		if handled, resp := catalogError(c, err); handled {
			return resp
		}
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Service not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete service",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Service deleted",
	})
}

// Warranties lists the active warranty options, shortest coverage first.
func (h *ServiceHandler) Warranties(c *fiber.Ctx) error {
	var warranties []models.WarrantyOption
	if err := h.DB.Where("is_active = ?", true).
		Order("days asc nulls first").
		Find(&warranties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load warranty options",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    warranties,
	})
}
