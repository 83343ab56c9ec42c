package market

import (
	"math"

	"github.com/google/uuid"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
)

// Pure transition guards. The transactional methods in service.go call these
// after locking the rows, so every rule here holds under concurrent writers.

// BidGuard checks whether provider may place a bid of the given kind on req.
func BidGuard(req *models.ServiceRequest, providerID uuid.UUID, kind models.BidKind) error {
	if req.Status != models.RequestStatusOpen {
		return ErrRequestNotOpen
	}
	if req.CustomerID == providerID {
		return ErrSelfBid
	}
	if kind == models.BidKindBudgetAcceptance && req.SuggestedBudget == nil {
		return ErrNoBudget
	}
	return nil
}

// AcceptGuard checks whether customer may accept bid for req. The request
// must still be open: this is the optimistic check that prevents
// double-assignment when two accepts race.
func AcceptGuard(req *models.ServiceRequest, bid *models.Bid, customerID uuid.UUID) error {
	if req.CustomerID != customerID {
		return ErrNotOwner
	}
	if req.Status != models.RequestStatusOpen {
		return ErrAlreadyAssigned
	}
	if bid.Status != models.BidStatusPending {
		return ErrBidNotPending
	}
	return nil
}

// CompleteGuard checks whether actor may mark req completed. Either side of
// the assignment can do it; a second call is an error, not a silent no-op.
func CompleteGuard(req *models.ServiceRequest, actorID uuid.UUID) error {
	if req.Status == models.RequestStatusCompleted {
		return ErrAlreadyCompleted
	}
	if req.Status != models.RequestStatusAssigned || req.AssignedProviderID == nil {
		return ErrNotAssigned
	}
	if req.CustomerID != actorID && *req.AssignedProviderID != actorID {
		return ErrNotParticipant
	}
	return nil
}

// RateGuard checks whether customer may rate req with score.
func RateGuard(req *models.ServiceRequest, customerID uuid.UUID, score int) error {
	if score < 1 || score > 10 {
		return ErrInvalidScore
	}
	if req.CustomerID != customerID {
		return ErrNotOwner
	}
	if req.Status != models.RequestStatusCompleted {
		return ErrNotCompleted
	}
	if req.AssignedProviderID == nil {
		return ErrNotAssigned
	}
	return nil
}

// AverageRating is the arithmetic mean of scores rounded to one decimal
// place; 0 when there are none.
func AverageRating(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0
	for _, s := range scores {
		total += s
	}
	avg := float64(total) / float64(len(scores))
	return math.Round(avg*10) / 10
}
