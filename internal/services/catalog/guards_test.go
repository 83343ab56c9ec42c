package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
)

func TestActivateGuard(t *testing.T) {
	assert.NoError(t, ActivateGuard(0))
	assert.NoError(t, ActivateGuard(1))
	assert.ErrorIs(t, ActivateGuard(2), ErrTooManyActive)
	assert.ErrorIs(t, ActivateGuard(3), ErrTooManyActive)
}

func TestPurchaseGuard(t *testing.T) {
	provider := uuid.New()
	customer := uuid.New()

	svc := &models.ProviderService{ID: 1, ProviderID: provider, Title: "AC cleaning", Price: 15, IsActive: true}

	t.Run("active offering can be booked", func(t *testing.T) {
		assert.NoError(t, PurchaseGuard(svc, customer))
	})

	t.Run("inactive offering cannot be booked", func(t *testing.T) {
		off := *svc
		off.IsActive = false
		assert.ErrorIs(t, PurchaseGuard(&off, customer), ErrServiceInactive)
	})

	t.Run("provider cannot book own offering", func(t *testing.T) {
		assert.ErrorIs(t, PurchaseGuard(svc, provider), ErrSelfPurchase)
	})
}

func TestConfirmGuard(t *testing.T) {
	provider := uuid.New()
	other := uuid.New()

	pendingPurchase := func() *models.ServicePurchase {
		return &models.ServicePurchase{ID: 1, ProviderID: provider, Status: models.PurchaseStatusPending}
	}

	t.Run("provider confirms a pending booking", func(t *testing.T) {
		assert.NoError(t, ConfirmGuard(pendingPurchase(), provider))
	})

	t.Run("only the booked provider acts", func(t *testing.T) {
		assert.ErrorIs(t, ConfirmGuard(pendingPurchase(), other), ErrNotPurchaseProvider)
	})

	t.Run("confirmed booking cannot be confirmed again", func(t *testing.T) {
		p := pendingPurchase()
		p.Status = models.PurchaseStatusConfirmed
		assert.ErrorIs(t, ConfirmGuard(p, provider), ErrPurchaseNotPending)
	})

	t.Run("cancelled booking stays cancelled", func(t *testing.T) {
		p := pendingPurchase()
		p.Status = models.PurchaseStatusCancelled
		assert.ErrorIs(t, ConfirmGuard(p, provider), ErrPurchaseNotPending)
	})

	t.Run("completed booking is terminal", func(t *testing.T) {
		p := pendingPurchase()
		p.Status = models.PurchaseStatusCompleted
		assert.ErrorIs(t, ConfirmGuard(p, provider), ErrPurchaseCompleted)
	})
}

func TestCompleteGuard(t *testing.T) {
	provider := uuid.New()
	other := uuid.New()

	confirmed := func() *models.ServicePurchase {
		return &models.ServicePurchase{ID: 1, ProviderID: provider, Status: models.PurchaseStatusConfirmed}
	}

	t.Run("provider completes a confirmed booking", func(t *testing.T) {
		assert.NoError(t, CompleteGuard(confirmed(), provider))
	})

	t.Run("only the booked provider completes", func(t *testing.T) {
		assert.ErrorIs(t, CompleteGuard(confirmed(), other), ErrNotPurchaseProvider)
	})

	t.Run("pending booking cannot skip confirmation", func(t *testing.T) {
		p := confirmed()
		p.Status = models.PurchaseStatusPending
		assert.ErrorIs(t, CompleteGuard(p, provider), ErrPurchaseNotConfirmed)
	})

	t.Run("repeat completion conflicts", func(t *testing.T) {
		p := confirmed()
		p.Status = models.PurchaseStatusCompleted
		assert.ErrorIs(t, CompleteGuard(p, provider), ErrPurchaseCompleted)
	})
}
