package handlers

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
	"github.com/OmarModa/souq_khadamat_be/internal/services/market"
	"github.com/OmarModa/souq_khadamat_be/internal/utils"
)

var validate = validator.New()

type RequestHandler struct {
	DB           *gorm.DB
	Market       *market.Service
	IDEncryptKey string
}

func NewRequestHandler(db *gorm.DB, svc *market.Service, idKey string) *RequestHandler {
	return &RequestHandler{DB: db, Market: svc, IDEncryptKey: idKey}
}

type CreateRequestReq struct {
	Title           string   `json:"title" validate:"required,min=3,max=150"`
	Description     string   `json:"description" validate:"required,min=10"`
	CategoryID      uint     `json:"category_id" validate:"required"`
	Region          string   `json:"region" validate:"required,max=80"`
	SuggestedBudget *float64 `json:"suggested_budget" validate:"omitempty,gt=0"`
	BeforeImageURL  string   `json:"before_image_url" validate:"omitempty,max=500"`
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	var req CreateRequestReq
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

	created, err := h.Market.CreateRequest(userID, market.CreateRequestInput{
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		CategoryID:      req.CategoryID,
		Region:          strings.TrimSpace(req.Region),
		SuggestedBudget: req.SuggestedBudget,
		BeforeImageURL:  req.BeforeImageURL,
	})
	if err != nil {
		log.Printf("[CreateRequest] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Request created",
		"data":    created,
	})
}

// List returns requests newest-first. Filters: status, category_id, region,
// and mine=1 to scope to the caller (as customer or assigned provider).
func (h *RequestHandler) List(c *fiber.Ctx) error {
	q := h.DB.Model(&models.ServiceRequest{}).Preload("Category")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if catID := c.QueryInt("category_id"); catID > 0 {
		q = q.Where("category_id = ?", catID)
	}
	if region := c.Query("region"); region != "" {
		q = q.Where("region = ?", region)
	}

	if c.Query("mine") == "1" {
		userID, err := getUserUUID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized",
			})
		}
		q = q.Where("customer_id = ? OR assigned_provider_id = ?", userID, userID)
	}

	var requests []models.ServiceRequest
	if err := q.Order("created_at desc").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load requests",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    requests,
	})
}

// Detail returns one request with its category and customer name. The
// assigned provider's contact info is only revealed to the owning customer
// once the request has been assigned.
func (h *RequestHandler) Detail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid id",
		})
	}

	var req models.ServiceRequest
	if err := h.DB.Preload("Category").Preload("Customer").First(&req, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Request not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load request",
		})
	}

	data := fiber.Map{
		"request": req,
	}

	userID, _ := getUserUUID(c)
	if req.AssignedProviderID != nil && userID == req.CustomerID {
		var provider models.User
		if err := h.DB.First(&provider, "id = ?", *req.AssignedProviderID).Error; err == nil {
			data["assigned_provider"] = fiber.Map{
				"id":           provider.ID,
				"name":         provider.Name,
				"contact_info": provider.ContactInfo,
				"region":       provider.Region,
			}
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func (h *RequestHandler) Complete(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
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

	req, err := h.Market.Complete(userID, uint(id))
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
		log.Printf("[CompleteRequest] id=%d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to complete request",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Request completed",
		"data":    req,
	})
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

func saveUpload(c *fiber.Ctx, field string, allowed map[string]bool) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("missing file field %q", field)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}

	filename := uuid.New().String() + ext
	if err := c.SaveFile(file, "./uploads/"+filename); err != nil {
		return "", err
	}

	return "/uploads/" + filename, nil
}

// UploadBeforeImage attaches the before-photo. Customer-owned and only
// while the request is still open.
func (h *RequestHandler) UploadBeforeImage(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
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

	var req models.ServiceRequest
	if err := h.DB.First(&req, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Request not found",
		})
	}
	if req.CustomerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Not your request",
		})
	}

	url, err := saveUpload(c, "image", imageExts)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	req.BeforeImageURL = url
	if err := h.DB.Save(&req).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save image",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Image uploaded",
		"data":    fiber.Map{"before_image_url": url},
	})
}

// UploadAfterImage attaches the after-photo. Either participant may upload it.
func (h *RequestHandler) UploadAfterImage(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
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

	url, err := saveUpload(c, "image", imageExts)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	req, err := h.Market.SetAfterImage(userID, uint(id), url)
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
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save image",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Image uploaded",
		"data":    fiber.Map{"after_image_url": req.AfterImageURL},
	})
}

// ShareLink mints an opaque token for the request so it can be shared
// publicly without exposing sequential ids.
func (h *RequestHandler) ShareLink(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid id",
		})
	}

	var req models.ServiceRequest
	if err := h.DB.First(&req, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Request not found",
		})
	}

	token, err := utils.EncryptRequestID(req.ID, h.IDEncryptKey)
	if err != nil {
		log.Printf("[ShareLink] encrypt id=%d: %v", req.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create share link",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token": token,
			"path":  "/public/requests/" + token,
		},
	})
}

// PublicDetail resolves a share token to a trimmed, unauthenticated view.
func (h *RequestHandler) PublicDetail(c *fiber.Ctx) error {
	token := c.Params("token")

	id, err := utils.DecryptRequestID(token, h.IDEncryptKey)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Request not found",
		})
	}

	var req models.ServiceRequest
	if err := h.DB.Preload("Category").First(&req, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Request not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"title":            req.Title,
			"description":      req.Description,
			"category":         req.Category,
			"region":           req.Region,
			"suggested_budget": req.SuggestedBudget,
			"status":           req.Status,
			"before_image_url": req.BeforeImageURL,
			"after_image_url":  req.AfterImageURL,
			"created_at":       req.CreatedAt,
		},
	})
}
