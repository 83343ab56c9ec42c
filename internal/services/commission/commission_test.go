package commission

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
)

func f64(v float64) *float64 { return &v }
func u(v uint) *uint         { return &v }

func TestFees(t *testing.T) {
	customerFee, providerFee, totalFee := Fees(20.0)
	assert.Equal(t, 1.0, customerFee)
	assert.Equal(t, 1.0, providerFee)
	assert.Equal(t, 2.0, totalFee)

	customerFee, providerFee, totalFee = Fees(0)
	assert.Equal(t, 0.0, customerFee)
	assert.Equal(t, 0.0, providerFee)
	assert.Equal(t, 0.0, totalFee)
}

func TestRollup(t *testing.T) {
	provider := uuid.New()
	customer := uuid.New()

	requests := []models.ServiceRequest{
		{
			ID: 1, CustomerID: customer, Title: "Fix AC",
			Status: models.RequestStatusCompleted, AssignedProviderID: &provider, AcceptedBidID: u(10),
		},
		{
			ID: 2, CustomerID: customer, Title: "Paint fence",
			Status: models.RequestStatusCompleted, AssignedProviderID: &provider, AcceptedBidID: u(11),
			SuggestedBudget: f64(50),
		},
		// still open, must not count
		{
			ID: 3, CustomerID: customer, Title: "Move sofa",
			Status: models.RequestStatusOpen,
		},
		// completed but its accepted bid is missing from the map
		{
			ID: 4, CustomerID: customer, Title: "Orphan",
			Status: models.RequestStatusCompleted, AssignedProviderID: &provider, AcceptedBidID: u(99),
		},
	}

	bids := map[uint]models.Bid{
		10: {ID: 10, RequestID: 1, ProviderID: provider, Kind: models.BidKindPriced, Price: f64(100), Status: models.BidStatusAccepted},
		11: {ID: 11, RequestID: 2, ProviderID: provider, Kind: models.BidKindBudgetAcceptance, Status: models.BidStatusAccepted},
	}

	sum := Rollup(requests, bids)

	require.Len(t, sum.Lines, 2)
	assert.Equal(t, 2, sum.CompletedCount)
	assert.Equal(t, 150.0, sum.TotalRevenue)
	assert.Equal(t, 15.0, sum.TotalCommission)

	assert.Equal(t, uint(1), sum.Lines[0].RequestID)
	assert.Equal(t, 100.0, sum.Lines[0].Price)
	assert.Equal(t, 5.0, sum.Lines[0].CustomerFee)
	assert.Equal(t, 5.0, sum.Lines[0].ProviderFee)
	assert.Equal(t, 10.0, sum.Lines[0].TotalFee)

	// budget acceptance resolves to the request's suggested budget
	assert.Equal(t, 50.0, sum.Lines[1].Price)
	assert.Equal(t, 5.0, sum.Lines[1].TotalFee)
}

func TestRollupEmpty(t *testing.T) {
	sum := Rollup(nil, nil)
	assert.Equal(t, 0, sum.CompletedCount)
	assert.Equal(t, 0.0, sum.TotalRevenue)
	assert.Equal(t, 0.0, sum.TotalCommission)
	assert.NotNil(t, sum.Lines)
	assert.Len(t, sum.Lines, 0)
}

func TestRollupSkipsBudgetAcceptanceWithoutBudget(t *testing.T) {
	provider := uuid.New()
	requests := []models.ServiceRequest{
		{
			ID: 1, Title: "No budget", Status: models.RequestStatusCompleted,
			AssignedProviderID: &provider, AcceptedBidID: u(5),
		},
	}
	bids := map[uint]models.Bid{
		5: {ID: 5, RequestID: 1, Kind: models.BidKindBudgetAcceptance, Status: models.BidStatusAccepted},
	}

	sum := Rollup(requests, bids)
	assert.Equal(t, 0, sum.CompletedCount)
	assert.Len(t, sum.Lines, 0)
}
