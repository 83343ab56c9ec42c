package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	price := 75.0
	budget := 40.0

	t.Run("priced bid uses its own price", func(t *testing.T) {
		bid := Bid{Kind: BidKindPriced, Price: &price}
		got, ok := bid.EffectivePrice(&ServiceRequest{SuggestedBudget: &budget})
		assert.True(t, ok)
		assert.Equal(t, 75.0, got)
	})

	t.Run("priced bid without price is unresolvable", func(t *testing.T) {
		bid := Bid{Kind: BidKindPriced}
		_, ok := bid.EffectivePrice(&ServiceRequest{SuggestedBudget: &budget})
		assert.False(t, ok)
	})

	t.Run("budget acceptance takes the request budget", func(t *testing.T) {
		bid := Bid{Kind: BidKindBudgetAcceptance}
		got, ok := bid.EffectivePrice(&ServiceRequest{SuggestedBudget: &budget})
		assert.True(t, ok)
		assert.Equal(t, 40.0, got)
	})

	t.Run("budget acceptance without budget is unresolvable", func(t *testing.T) {
		bid := Bid{Kind: BidKindBudgetAcceptance}
		_, ok := bid.EffectivePrice(&ServiceRequest{})
		assert.False(t, ok)

		_, ok = bid.EffectivePrice(nil)
		assert.False(t, ok)
	})
}
