package commission

import "github.com/OmarModa/souq_khadamat_be/internal/models"

// Platform cut: 5% from the customer side, 5% from the provider side,
// so 10% of every completed transaction in total. Reporting only; nothing
// is deducted from any balance.
const (
	CustomerFeeRate = 0.05
	ProviderFeeRate = 0.05
)

// Line is the commission breakdown for one completed request.
type Line struct {
	RequestID    uint    `json:"request_id"`
	RequestTitle string  `json:"request_title"`
	Price        float64 `json:"price"`
	CustomerFee  float64 `json:"customer_fee"`
	ProviderFee  float64 `json:"provider_fee"`
	TotalFee     float64 `json:"total_fee"`
}

// Summary is the aggregate financial rollup for the admin dashboard.
type Summary struct {
	CompletedCount  int     `json:"completed_count"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCommission float64 `json:"total_commission"`
	Lines           []Line  `json:"lines"`
}

// Fees splits a transaction price into the platform's cuts.
func Fees(price float64) (customerFee, providerFee, totalFee float64) {
	customerFee = price * CustomerFeeRate
	providerFee = price * ProviderFeeRate
	return customerFee, providerFee, customerFee + providerFee
}

// Rollup derives the commission report from completed requests and their
// accepted bids (keyed by bid id). Completed requests whose accepted bid
// cannot be resolved to a price are skipped.
func Rollup(requests []models.ServiceRequest, bidsByID map[uint]models.Bid) Summary {
	sum := Summary{Lines: []Line{}}

	for i := range requests {
		req := &requests[i]
		if req.Status != models.RequestStatusCompleted || req.AcceptedBidID == nil {
			continue
		}

		bid, ok := bidsByID[*req.AcceptedBidID]
		if !ok {
			continue
		}
		price, ok := bid.EffectivePrice(req)
		if !ok {
			continue
		}

		customerFee, providerFee, totalFee := Fees(price)
		sum.Lines = append(sum.Lines, Line{
			RequestID:    req.ID,
			RequestTitle: req.Title,
			Price:        price,
			CustomerFee:  customerFee,
			ProviderFee:  providerFee,
			TotalFee:     totalFee,
		})

		sum.CompletedCount++
		sum.TotalRevenue += price
		sum.TotalCommission += totalFee
	}

	return sum
}
