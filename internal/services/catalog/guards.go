package catalog

import (
	"github.com/google/uuid"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
)

// MaxActiveServices caps how many offerings a provider may keep live at once.
const MaxActiveServices = 2

// Pure transition guards, called inside the transactions in service.go after
// the relevant rows are locked.

// ActivateGuard checks whether a provider with activeCount live offerings may
// bring another one up.
func ActivateGuard(activeCount int64) error {
	if activeCount >= MaxActiveServices {
		return ErrTooManyActive
	}
	return nil
}

// PurchaseGuard checks whether customer may book svc.
func PurchaseGuard(svc *models.ProviderService, customerID uuid.UUID) error {
	if !svc.IsActive {
		return ErrServiceInactive
	}
	if svc.ProviderID == customerID {
		return ErrSelfPurchase
	}
	return nil
}

// ConfirmGuard checks whether provider may confirm or cancel p. Both moves
// only leave the pending state.
func ConfirmGuard(p *models.ServicePurchase, providerID uuid.UUID) error {
	if p.ProviderID != providerID {
		return ErrNotPurchaseProvider
	}
	if p.Status == models.PurchaseStatusCompleted {
		return ErrPurchaseCompleted
	}
	if p.Status != models.PurchaseStatusPending {
		return ErrPurchaseNotPending
	}
	return nil
}

// CompleteGuard checks whether provider may complete p. Only a confirmed
// booking completes; a second completion is an error.
func CompleteGuard(p *models.ServicePurchase, providerID uuid.UUID) error {
	if p.ProviderID != providerID {
		return ErrNotPurchaseProvider
	}
	if p.Status == models.PurchaseStatusCompleted {
		return ErrPurchaseCompleted
	}
	if p.Status != models.PurchaseStatusConfirmed {
		return ErrPurchaseNotConfirmed
	}
	return nil
}
