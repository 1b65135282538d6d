package orders

import (
	"github.com/google/uuid"

	"github.com/oakhollow/orderdesk-backend/pkg/enums"
)

// SubmitInput carries everything the submission pipeline needs beyond the
// cart itself, which is loaded from the user's slot.
type SubmitInput struct {
	UserID  uuid.UUID
	StoreID *uuid.UUID
	Notes   *string
}

// ListFilter narrows admin order listings.
type ListFilter struct {
	StoreID *uuid.UUID
	Status  *enums.OrderStatus
}

// SubmitRequest is the HTTP payload for creating an order. StoreID is
// checked by the submission pipeline, after the cart itself, so an empty
// cart is always the first complaint.
type SubmitRequest struct {
	StoreID *uuid.UUID `json:"store_id"`
	Notes   *string    `json:"notes" validate:"omitempty,max=2000"`
}

// StatusRequest is the HTTP payload for changing an order's status.
type StatusRequest struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}
