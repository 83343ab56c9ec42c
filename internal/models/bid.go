package models

import (
	"time"

	"github.com/google/uuid"
)

type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
)

type BidKind string

const (
	// BidKindPriced is a normal bid carrying its own price.
	BidKindPriced BidKind = "priced"
	// BidKindBudgetAcceptance is "I'll do it for the suggested budget":
	// Price is nil and the effective price comes from the request.
	BidKindBudgetAcceptance BidKind = "budget_acceptance"
)

// Bid is a provider's response to an open request. For a given request at
// most one bid is ever accepted, and it matches the request's AcceptedBidID.
type Bid struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RequestID  uint      `gorm:"not null;index" json:"request_id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index" json:"provider_id"`

	Kind    BidKind   `gorm:"type:varchar(20);not null;default:'priced'" json:"kind"`
	Price   *float64  `json:"price,omitempty"` // KD, nil for budget acceptance
	Message string    `gorm:"type:text" json:"message,omitempty"`
	Status  BidStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Request  *ServiceRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	Provider *User           `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

// EffectivePrice resolves what the bid is actually worth: its own price, or
// the request's suggested budget for a budget acceptance. ok is false when
// neither is available (inconsistent data, callers skip the row).
func (b *Bid) EffectivePrice(req *ServiceRequest) (float64, bool) {
	if b.Kind == BidKindBudgetAcceptance {
		if req == nil || req.SuggestedBudget == nil {
			return 0, false
		}
		return *req.SuggestedBudget, true
	}
	if b.Price == nil {
		return 0, false
	}
	return *b.Price, true
}
