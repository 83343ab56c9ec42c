package market

import "errors"

var (
	// ErrRequestNotOpen is returned when a bid targets a request that has
	// already been assigned or completed.
	ErrRequestNotOpen = errors.New("request is not open for bids")

	// ErrAlreadyAssigned guards the accept transaction: the request must
	// still be open at accept time.
	ErrAlreadyAssigned = errors.New("request already assigned to a provider")

	// ErrAlreadyCompleted rejects a repeated completion call.
	ErrAlreadyCompleted = errors.New("request already completed")

	// ErrNotAssigned means completion was attempted before any bid was accepted.
	ErrNotAssigned = errors.New("request has no assigned provider")

	// ErrAlreadyRated blocks a second rating on the same request.
	ErrAlreadyRated = errors.New("request already rated")

	// ErrNotCompleted means rating was attempted before completion.
	ErrNotCompleted = errors.New("request is not completed yet")

	// ErrSelfBid blocks a customer bidding on their own request.
	ErrSelfBid = errors.New("cannot bid on your own request")

	// ErrNotOwner means the caller doesn't own the request.
	ErrNotOwner = errors.New("not the owner of this request")

	// ErrNotParticipant means the caller is neither the customer nor the
	// assigned provider.
	ErrNotParticipant = errors.New("not a participant of this request")

	// ErrInvalidScore means the rating score is outside 1..10.
	ErrInvalidScore = errors.New("score must be between 1 and 10")

	// ErrNoBudget means a budget acceptance targets a request without a
	// suggested budget.
	ErrNoBudget = errors.New("request has no suggested budget to accept")

	// ErrBidNotPending means the bid was already accepted or rejected.
	ErrBidNotPending = errors.New("bid is not pending")
)
