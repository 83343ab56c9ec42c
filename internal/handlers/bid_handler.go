package handlers

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OmarModa/souq_khadamat_be/internal/alerts"
	"github.com/OmarModa/souq_khadamat_be/internal/models"
	"github.com/OmarModa/souq_khadamat_be/internal/services/market"
)

type BidHandler struct {
	DB     *gorm.DB
	Market *market.Service
}

func NewBidHandler(db *gorm.DB, svc *market.Service) *BidHandler {
	return &BidHandler{DB: db, Market: svc}
}

type PlaceBidReq struct {
	RequestID uint     `json:"request_id" validate:"required"`
	Kind      string   `json:"kind" validate:"omitempty,oneof=priced budget_acceptance"`
	Price     *float64 `json:"price" validate:"omitempty,gt=0"`
	Message   string   `json:"message" validate:"omitempty,max=2000"`
}

// Place creates a bid. kind=budget_acceptance takes the request's suggested
// budget; otherwise price is required. On success the request's customer gets
// a best-effort bid-received mail.
func (h *BidHandler) Place(c *fiber.Ctx) error {
	providerID, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	var req PlaceBidReq
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

	kind := models.BidKind(req.Kind)
	if kind == "" {
		kind = models.BidKindPriced
	}
	if kind == models.BidKindPriced && req.Price == nil {
		errs := FieldErrors{}
		errs.Add("price", "Price is required for a priced bid")
		return validationFail(c, errs)
	}

	bid, request, err := h.Market.PlaceBid(providerID, market.PlaceBidInput{
		RequestID: req.RequestID,
		Kind:      kind,
		Price:     req.Price,
		Message:   strings.TrimSpace(req.Message),
	})
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
		log.Printf("[PlaceBid] request=%d: %v", req.RequestID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to place bid",
		})
	}

	h.enqueueBidMail(bid, request, providerID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Bid placed",
		"data":    bid,
	})
}

// enqueueBidMail looks up both sides and schedules the bid-received mail.
// Failures are logged, never surfaced: the bid already committed.
func (h *BidHandler) enqueueBidMail(bid *models.Bid, req *models.ServiceRequest, providerID uuid.UUID) {
	var customer, provider models.User
	if err := h.DB.First(&customer, "id = ?", req.CustomerID).Error; err != nil {
		log.Printf("[PlaceBid] mail lookup customer %s: %v", req.CustomerID, err)
		return
	}
	if err := h.DB.First(&provider, "id = ?", providerID).Error; err != nil {
		log.Printf("[PlaceBid] mail lookup provider %s: %v", providerID, err)
		return
	}

	price, _ := bid.EffectivePrice(req)
	if err := alerts.EnqueueBidReceived(req.ID, req.Title, provider.Name, price, customer.Name, customer.Email); err != nil {
		log.Printf("[PlaceBid] bid mail enqueue for request %d: %v", req.ID, err)
	}
}

// ListByRequest returns all bids on a request, newest first, with provider
// names attached.
func (h *BidHandler) ListByRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid id",
		})
	}

	var bids []models.Bid
	if err := h.DB.Preload("Provider").
		Where("request_id = ?", id).
		Order("created_at desc").
		Find(&bids).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load bids",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    bids,
	})
}

// MyBids returns the calling provider's bids with their requests.
func (h *BidHandler) MyBids(c *fiber.Ctx) error {
	providerID, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	var bids []models.Bid
	if err := h.DB.Preload("Request").
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Find(&bids).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load bids",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    bids,
	})
}

// Accept assigns the bid's request to its provider and rejects every other
// bid on the request.
func (h *BidHandler) Accept(c *fiber.Ctx) error {
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

	request, bid, err := h.Market.AcceptBid(customerID, uint(id))
	if err != nil {
		if handled, resp := marketError(c, err); handled {
			return resp
		}
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Bid not found",
			})
		}
		log.Printf("[AcceptBid] bid=%d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to accept bid",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Bid accepted",
		"data": fiber.Map{
			"request": request,
			"bid":     bid,
		},
	})
}
