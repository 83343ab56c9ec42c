package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/OmarModa/souq_khadamat_be/internal/services/catalog"
	"github.com/OmarModa/souq_khadamat_be/internal/services/market"
)

func getUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("userId")
	if v == nil {
		return uuid.Nil, fmt.Errorf("unauthorized")
	}

	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		return uuid.Parse(t)
	case []byte:
		return uuid.ParseBytes(t)
	default:
		return uuid.Nil, fmt.Errorf("invalid userId type: %T", v)
	}
}

// marketError maps lifecycle errors to a response. Unknown errors fall
// through to a logged 500 at the call site.
func marketError(c *fiber.Ctx, err error) (bool, error) {
	status := 0
	switch err {
	case market.ErrRequestNotOpen,
		market.ErrNotAssigned,
		market.ErrNotCompleted,
		market.ErrSelfBid,
		market.ErrInvalidScore,
		market.ErrNoBudget,
		market.ErrBidNotPending:
		status = fiber.StatusBadRequest
	case market.ErrAlreadyAssigned,
		market.ErrAlreadyCompleted,
		market.ErrAlreadyRated:
		status = fiber.StatusConflict
	case market.ErrNotOwner, market.ErrNotParticipant:
		status = fiber.StatusForbidden
	default:
		return false, nil
	}

	return true, c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

// catalogError is the offering/booking counterpart of marketError.
func catalogError(c *fiber.Ctx, err error) (bool, error) {
	status := 0
	switch err {
	case catalog.ErrServiceInactive,
		catalog.ErrSelfPurchase,
		catalog.ErrPurchaseNotPending,
		catalog.ErrPurchaseNotConfirmed:
		status = fiber.StatusBadRequest
	case catalog.ErrTooManyActive, catalog.ErrPurchaseCompleted:
		status = fiber.StatusConflict
	case catalog.ErrNotServiceOwner, catalog.ErrNotPurchaseProvider:
		status = fiber.StatusForbidden
	default:
		return false, nil
	}

	return true, c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}
