package dto

import "github.com/spec-kit/booking-gateway/internal/domain"

// CheckoutStepResponse is the payload for a checkout page that may render.
type CheckoutStepResponse struct {
	Step    domain.CheckoutStep `json:"step"`
	Booking *domain.Booking     `json:"booking,omitempty"`
}
