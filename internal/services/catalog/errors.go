package catalog

import "errors"

var (
	// ErrTooManyActive enforces the two-active-offerings cap per provider.
	ErrTooManyActive = errors.New("provider already has two active services")

	// ErrServiceInactive rejects bookings of a deactivated offering.
	ErrServiceInactive = errors.New("service is not active")

	// ErrSelfPurchase blocks a provider booking their own offering.
	ErrSelfPurchase = errors.New("cannot purchase your own service")

	// ErrNotServiceOwner means the caller doesn't own the offering.
	ErrNotServiceOwner = errors.New("not the owner of this service")

	// ErrNotPurchaseProvider means the caller isn't the booked provider.
	ErrNotPurchaseProvider = errors.New("not the provider of this purchase")

	// ErrPurchaseNotPending means confirm/cancel hit a booking that already
	// left the pending state.
	ErrPurchaseNotPending = errors.New("purchase is not pending")

	// ErrPurchaseNotConfirmed means completion was attempted before the
	// booking was confirmed.
	ErrPurchaseNotConfirmed = errors.New("purchase is not confirmed")

	// ErrPurchaseCompleted rejects changes to a completed booking.
	ErrPurchaseCompleted = errors.New("purchase already completed")
)
