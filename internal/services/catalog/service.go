package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
	"github.com/OmarModa/souq_khadamat_be/internal/notify"
)

// Service runs the fixed-price offering catalog: providers publish up to two
// active offerings, customers book them, and bookings move pending ->
// confirmed -> completed (or pending -> cancelled) under the provider's
// control. Mutations run in transactions like the request lifecycle does.
type Service struct {
	DB     *gorm.DB
	Notify *notify.Dispatcher
}

func NewService(db *gorm.DB, dispatcher *notify.Dispatcher) *Service {
	return &Service{DB: db, Notify: dispatcher}
}

type CreateServiceInput struct {
	Title       string
	Description string
	Price       float64
	CategoryID  uint
	ImageURL    string
	WarrantyID  *uint
}

// CreateService publishes a new active offering, enforcing the cap inside
// the transaction.
func (s *Service) CreateService(providerID uuid.UUID, in CreateServiceInput) (*models.ProviderService, error) {
	var svc models.ProviderService

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&models.ProviderService{}).
			Where("provider_id = ? AND is_active = ?", providerID, true).
			Count(&active).Error; err != nil {
			return err
		}
		if err := ActivateGuard(active); err != nil {
			return err
		}

		svc = models.ProviderService{
			ProviderID:  providerID,
			Title:       in.Title,
			Description: in.Description,
			Price:       in.Price,
			CategoryID:  in.CategoryID,
			ImageURL:    in.ImageURL,
			WarrantyID:  in.WarrantyID,
			IsActive:    true,
		}
		return tx.Create(&svc).Error
	})
	if err != nil {
		return nil, err
	}

	return &svc, nil
}

// ToggleService flips an offering between active and inactive. Activation
// re-checks the cap.
func (s *Service) ToggleService(providerID uuid.UUID, serviceID uint) (*models.ProviderService, error) {
	var svc models.ProviderService

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&svc, "id = ?", serviceID).Error; err != nil {
			return err
		}
		if svc.ProviderID != providerID {
			return ErrNotServiceOwner
		}

		if !svc.IsActive {
			var active int64
			if err := tx.Model(&models.ProviderService{}).
				Where("provider_id = ? AND is_active = ?", providerID, true).
				Count(&active).Error; err != nil {
				return err
			}
			if err := ActivateGuard(active); err != nil {
				return err
			}
		}

		svc.IsActive = !svc.IsActive
		return tx.Save(&svc).Error
	})
	if err != nil {
		return nil, err
	}

	return &svc, nil
}

// DeleteService removes an offering. Past purchases keep their snapshot data.
func (s *Service) DeleteService(providerID uuid.UUID, serviceID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var svc models.ProviderService
		if err := tx.First(&svc, "id = ?", serviceID).Error; err != nil {
			return err
		}
		if svc.ProviderID != providerID {
			return ErrNotServiceOwner
		}
		return tx.Delete(&svc).Error
	})
}

type PurchaseInput struct {
	ServiceID     uint
	Notes         string
	ScheduledDate *time.Time
}

// Purchase books an offering for the customer at the offering's current
// price and notifies the provider.
func (s *Service) Purchase(customerID uuid.UUID, in PurchaseInput) (*models.ServicePurchase, error) {
	var purchase models.ServicePurchase
	var pending []*models.Notification

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var svc models.ProviderService
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&svc, "id = ?", in.ServiceID).Error; err != nil {
			return err
		}

		if err := PurchaseGuard(&svc, customerID); err != nil {
			return err
		}

		purchase = models.ServicePurchase{
			ServiceID:     svc.ID,
			CustomerID:    customerID,
			ProviderID:    svc.ProviderID,
			Status:        models.PurchaseStatusPending,
			TotalPrice:    svc.Price,
			Notes:         in.Notes,
			ScheduledDate: in.ScheduledDate,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		msg := fmt.Sprintf("New booking for your service \"%s\" (%.2f KD)", svc.Title, svc.Price)
		n, err := s.Notify.Record(tx, svc.ProviderID, msg, models.NotificationInfo, nil)
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

	return &purchase, nil
}

// Confirm moves a pending booking to confirmed and notifies the customer.
func (s *Service) Confirm(providerID uuid.UUID, purchaseID uint) (*models.ServicePurchase, error) {
	return s.transition(purchaseID, func(p *models.ServicePurchase) (string, error) {
		if err := ConfirmGuard(p, providerID); err != nil {
			return "", err
		}
		p.Status = models.PurchaseStatusConfirmed
		return "Your booking was confirmed by the provider", nil
	})
}

// Cancel rejects a pending booking and notifies the customer.
func (s *Service) Cancel(providerID uuid.UUID, purchaseID uint) (*models.ServicePurchase, error) {
	return s.transition(purchaseID, func(p *models.ServicePurchase) (string, error) {
		if err := ConfirmGuard(p, providerID); err != nil {
			return "", err
		}
		p.Status = models.PurchaseStatusCancelled
		return "Your booking was cancelled by the provider", nil
	})
}

// CompletePurchase finishes a confirmed booking and stamps CompletedAt.
func (s *Service) CompletePurchase(providerID uuid.UUID, purchaseID uint) (*models.ServicePurchase, error) {
	return s.transition(purchaseID, func(p *models.ServicePurchase) (string, error) {
		if err := CompleteGuard(p, providerID); err != nil {
			return "", err
		}
		now := time.Now()
		p.Status = models.PurchaseStatusCompleted
		p.CompletedAt = &now
		return "Your booked service was marked completed", nil
	})
}

// transition locks the purchase row, applies the status move, and notifies
// the customer after commit.
func (s *Service) transition(purchaseID uint, apply func(*models.ServicePurchase) (string, error)) (*models.ServicePurchase, error) {
	var purchase models.ServicePurchase
	var pending []*models.Notification

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&purchase, "id = ?", purchaseID).Error; err != nil {
			return err
		}

		msg, err := apply(&purchase)
		if err != nil {
			return err
		}
		if err := tx.Save(&purchase).Error; err != nil {
			return err
		}

		n, err := s.Notify.Record(tx, purchase.CustomerID, msg, models.NotificationInfo, nil)
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

	return &purchase, nil
}
