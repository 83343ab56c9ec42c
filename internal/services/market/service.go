package market

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
	"github.com/OmarModa/souq_khadamat_be/internal/notify"
)

// Service is the request lifecycle engine. Every mutation runs in a DB
// transaction with the request row locked, so the open -> assigned ->
// completed progression only ever moves forward, even under racing writers.
type Service struct {
	DB     *gorm.DB
	Notify *notify.Dispatcher
}

func NewService(db *gorm.DB, dispatcher *notify.Dispatcher) *Service {
	return &Service{DB: db, Notify: dispatcher}
}

type CreateRequestInput struct {
	Title           string
	Description     string
	CategoryID      uint
	Region          string
	SuggestedBudget *float64
	BeforeImageURL  string
}

// CreateRequest opens a new service request for the customer.
func (s *Service) CreateRequest(customerID uuid.UUID, in CreateRequestInput) (*models.ServiceRequest, error) {
	req := models.ServiceRequest{
		CustomerID:      customerID,
		Title:           in.Title,
		Description:     in.Description,
		CategoryID:      in.CategoryID,
		Region:          in.Region,
		SuggestedBudget: in.SuggestedBudget,
		BeforeImageURL:  in.BeforeImageURL,
		Status:          models.RequestStatusOpen,
	}
	if err := s.DB.Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

type PlaceBidInput struct {
	RequestID uint
	Kind      models.BidKind
	Price     *float64 // nil for budget acceptance
	Message   string
}

// PlaceBid creates a pending bid against an open request and notifies the
// request's customer. Returns the bid and the locked request so the caller
// can enqueue the bid-received mail.
func (s *Service) PlaceBid(providerID uuid.UUID, in PlaceBidInput) (*models.Bid, *models.ServiceRequest, error) {
	var bid models.Bid
	var req models.ServiceRequest
	var pending []*models.Notification

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&req, "id = ?", in.RequestID).Error; err != nil {
			return err
		}

		if err := BidGuard(&req, providerID, in.Kind); err != nil {
			return err
		}

		bid = models.Bid{
			RequestID:  req.ID,
			ProviderID: providerID,
			Kind:       in.Kind,
			Price:      in.Price,
			Message:    in.Message,
			Status:     models.BidStatusPending,
		}
		if in.Kind == models.BidKindBudgetAcceptance {
			bid.Price = nil
		}
		if err := tx.Create(&bid).Error; err != nil {
			return err
		}

		price, _ := bid.EffectivePrice(&req)
		msg := fmt.Sprintf("New bid of %.2f KD on your request \"%s\"", price, req.Title)
		if bid.Kind == models.BidKindBudgetAcceptance {
			msg = fmt.Sprintf("A provider accepted the suggested budget on your request \"%s\"", req.Title)
		}
		n, err := s.Notify.Record(tx, req.CustomerID, msg, models.NotificationInfo, &req.ID)
		if err != nil {
			return err
		}
		pending = append(pending, n)

		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	s.Notify.PublishAll(pending)

	return &bid, &req, nil
}

// AcceptBid assigns the request to the bid's provider. Inside one
// transaction: the request row is locked and must still be open, the chosen
// bid becomes accepted, and every sibling bid is rejected.
func (s *Service) AcceptBid(customerID uuid.UUID, bidID uint) (*models.ServiceRequest, *models.Bid, error) {
	var req models.ServiceRequest
	var bid models.Bid
	var pending []*models.Notification

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bid, "id = ?", bidID).Error; err != nil {
			return err
		}

		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&req, "id = ?", bid.RequestID).Error; err != nil {
			return err
		}

		if err := AcceptGuard(&req, &bid, customerID); err != nil {
			return err
		}

		req.Status = models.RequestStatusAssigned
		req.AssignedProviderID = &bid.ProviderID
		req.AcceptedBidID = &bid.ID
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		bid.Status = models.BidStatusAccepted
		if err := tx.Save(&bid).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Bid{}).
			Where("request_id = ? AND id != ?", req.ID, bid.ID).
			Update("status", models.BidStatusRejected).Error; err != nil {
			return err
		}

		msg := fmt.Sprintf("Your bid on \"%s\" was accepted", req.Title)
		n, err := s.Notify.Record(tx, bid.ProviderID, msg, models.NotificationSuccess, &req.ID)
		if err != nil {
			return err
		}
		pending = append(pending, n)

		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	s.Notify.PublishAll(pending)

	log.Printf("[AcceptBid] request=%d bid=%d provider=%s", req.ID, bid.ID, bid.ProviderID)
	return &req, &bid, nil
}

// Complete marks an assigned request completed and stamps CompletedAt.
// Calling it again returns ErrAlreadyCompleted instead of re-applying the
// timestamp. When the assigned provider triggers it, the customer gets a
// notification asking them to rate the work.
func (s *Service) Complete(actorID uuid.UUID, requestID uint) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	var pending []*models.Notification

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&req, "id = ?", requestID).Error; err != nil {
			return err
		}

		if err := CompleteGuard(&req, actorID); err != nil {
			return err
		}

		now := time.Now()
		req.Status = models.RequestStatusCompleted
		req.CompletedAt = &now
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		if req.AssignedProviderID != nil && *req.AssignedProviderID == actorID {
			msg := fmt.Sprintf("Your request \"%s\" was marked completed by the provider. You can now rate the service.", req.Title)
			n, err := s.Notify.Record(tx, req.CustomerID, msg, models.NotificationSuccess, &req.ID)
			if err != nil {
				return err
			}
			pending = append(pending, n)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Notify.PublishAll(pending)

	return &req, nil
}

// Rate records the customer's score for a completed request. A second rating
// on the same request is rejected (also backed by a unique index).
func (s *Service) Rate(customerID uuid.UUID, requestID uint, score int) (*models.Rating, error) {
	var rating models.Rating
	var pending []*models.Notification

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var req models.ServiceRequest
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&req, "id = ?", requestID).Error; err != nil {
			return err
		}

		if err := RateGuard(&req, customerID, score); err != nil {
			return err
		}

		var existing models.Rating
		if err := tx.Where("request_id = ?", requestID).First(&existing).Error; err == nil {
			return ErrAlreadyRated
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		rating = models.Rating{
			RequestID:  req.ID,
			ProviderID: *req.AssignedProviderID,
			CustomerID: customerID,
			Score:      score,
		}
		if err := tx.Create(&rating).Error; err != nil {
			return err
		}

		msg := fmt.Sprintf("You received a rating of %d/10 for \"%s\"", score, req.Title)
		n, err := s.Notify.Record(tx, rating.ProviderID, msg, models.NotificationInfo, &req.ID)
		if err != nil {
			return err
		}
		pending = append(pending, n)

		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Notify.PublishAll(pending)

	return &rating, nil
}

// SetAfterImage records the after-photo on a request. No status change.
func (s *Service) SetAfterImage(actorID uuid.UUID, requestID uint, url string) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	if err := s.DB.First(&req, "id = ?", requestID).Error; err != nil {
		return nil, err
	}

	if req.CustomerID != actorID && (req.AssignedProviderID == nil || *req.AssignedProviderID != actorID) {
		return nil, ErrNotParticipant
	}

	req.AfterImageURL = url
	if err := s.DB.Save(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}
