package market

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
)

func f64(v float64) *float64 { return &v }

func openRequest(customer uuid.UUID) *models.ServiceRequest {
	return &models.ServiceRequest{
		ID:         1,
		CustomerID: customer,
		Title:      "Fix AC",
		Status:     models.RequestStatusOpen,
	}
}

func TestBidGuard(t *testing.T) {
	customer := uuid.New()
	provider := uuid.New()

	t.Run("open request accepts a priced bid", func(t *testing.T) {
		req := openRequest(customer)
		assert.NoError(t, BidGuard(req, provider, models.BidKindPriced))
	})

	t.Run("assigned request rejects bids", func(t *testing.T) {
		req := openRequest(customer)
		req.Status = models.RequestStatusAssigned
		assert.ErrorIs(t, BidGuard(req, provider, models.BidKindPriced), ErrRequestNotOpen)
	})

	t.Run("completed request rejects bids", func(t *testing.T) {
		req := openRequest(customer)
		req.Status = models.RequestStatusCompleted
		assert.ErrorIs(t, BidGuard(req, provider, models.BidKindPriced), ErrRequestNotOpen)
	})

	t.Run("customer cannot bid on own request", func(t *testing.T) {
		req := openRequest(customer)
		assert.ErrorIs(t, BidGuard(req, customer, models.BidKindPriced), ErrSelfBid)
	})

	t.Run("budget acceptance needs a suggested budget", func(t *testing.T) {
		req := openRequest(customer)
		assert.ErrorIs(t, BidGuard(req, provider, models.BidKindBudgetAcceptance), ErrNoBudget)

		req.SuggestedBudget = f64(40)
		assert.NoError(t, BidGuard(req, provider, models.BidKindBudgetAcceptance))
	})
}

func TestAcceptGuard(t *testing.T) {
	customer := uuid.New()
	provider := uuid.New()

	pending := &models.Bid{ID: 7, RequestID: 1, ProviderID: provider, Status: models.BidStatusPending}

	t.Run("owner accepts a pending bid on an open request", func(t *testing.T) {
		req := openRequest(customer)
		assert.NoError(t, AcceptGuard(req, pending, customer))
	})

	t.Run("non-owner cannot accept", func(t *testing.T) {
		req := openRequest(customer)
		assert.ErrorIs(t, AcceptGuard(req, pending, provider), ErrNotOwner)
	})

	t.Run("second accept sees an assigned request", func(t *testing.T) {
		req := openRequest(customer)
		req.Status = models.RequestStatusAssigned
		assert.ErrorIs(t, AcceptGuard(req, pending, customer), ErrAlreadyAssigned)
	})

	t.Run("rejected bid cannot be accepted", func(t *testing.T) {
		req := openRequest(customer)
		rejected := &models.Bid{ID: 8, RequestID: 1, ProviderID: provider, Status: models.BidStatusRejected}
		assert.ErrorIs(t, AcceptGuard(req, rejected, customer), ErrBidNotPending)
	})
}

func TestCompleteGuard(t *testing.T) {
	customer := uuid.New()
	provider := uuid.New()
	stranger := uuid.New()

	assigned := func() *models.ServiceRequest {
		req := openRequest(customer)
		req.Status = models.RequestStatusAssigned
		req.AssignedProviderID = &provider
		return req
	}

	t.Run("customer can complete", func(t *testing.T) {
		assert.NoError(t, CompleteGuard(assigned(), customer))
	})

	t.Run("assigned provider can complete", func(t *testing.T) {
		assert.NoError(t, CompleteGuard(assigned(), provider))
	})

	t.Run("stranger cannot complete", func(t *testing.T) {
		assert.ErrorIs(t, CompleteGuard(assigned(), stranger), ErrNotParticipant)
	})

	t.Run("open request cannot be completed", func(t *testing.T) {
		assert.ErrorIs(t, CompleteGuard(openRequest(customer), customer), ErrNotAssigned)
	})

	t.Run("repeat completion conflicts", func(t *testing.T) {
		req := assigned()
		req.Status = models.RequestStatusCompleted
		assert.ErrorIs(t, CompleteGuard(req, customer), ErrAlreadyCompleted)
	})
}

func TestRateGuard(t *testing.T) {
	customer := uuid.New()
	provider := uuid.New()

	completed := func() *models.ServiceRequest {
		req := openRequest(customer)
		req.Status = models.RequestStatusCompleted
		req.AssignedProviderID = &provider
		return req
	}

	t.Run("owner rates a completed request", func(t *testing.T) {
		assert.NoError(t, RateGuard(completed(), customer, 7))
	})

	t.Run("score bounds are 1 to 10", func(t *testing.T) {
		assert.ErrorIs(t, RateGuard(completed(), customer, 0), ErrInvalidScore)
		assert.ErrorIs(t, RateGuard(completed(), customer, 11), ErrInvalidScore)
		assert.NoError(t, RateGuard(completed(), customer, 1))
		assert.NoError(t, RateGuard(completed(), customer, 10))
	})

	t.Run("only the owner rates", func(t *testing.T) {
		assert.ErrorIs(t, RateGuard(completed(), provider, 5), ErrNotOwner)
	})

	t.Run("uncompleted request cannot be rated", func(t *testing.T) {
		req := completed()
		req.Status = models.RequestStatusAssigned
		assert.ErrorIs(t, RateGuard(req, customer, 5), ErrNotCompleted)
	})

	t.Run("completed row without a provider cannot be rated", func(t *testing.T) {
		req := completed()
		req.AssignedProviderID = nil
		assert.ErrorIs(t, RateGuard(req, customer, 5), ErrNotAssigned)
	})
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 0.0, AverageRating([]int{}))
	assert.Equal(t, 7.0, AverageRating([]int{7}))
	assert.Equal(t, 7.5, AverageRating([]int{9, 6}))
	assert.Equal(t, 8.0, AverageRating([]int{9, 7, 8}))
	assert.Equal(t, 8.3, AverageRating([]int{8, 8, 9}))
	assert.Equal(t, 1.7, AverageRating([]int{1, 2, 2}))
}
