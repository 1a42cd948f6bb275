package checkout

import "github.com/spec-kit/booking-gateway/internal/domain"

// Canonical checkout page paths, one per step.
const (
	PathInfo     = "/checkout"
	PathPayment  = "/checkout/payment"
	PathConfirm  = "/checkout/confirm"
	PathComplete = "/checkout/complete"
)

// StepOrder ranks how far a booking has progressed through checkout.
// Unknown statuses rank as 1 so an unexpected upstream value never unlocks
// a later step than warranted.
func StepOrder(status domain.BookingStatus) int {
	switch status {
	case domain.BookingStatusPending, domain.BookingStatusPendingInfo:
		return 1
	case domain.BookingStatusPendingPayment:
		return 2
	case domain.BookingStatusPendingConfirm:
		return 3
	case domain.BookingStatusWaitingSupplier, domain.BookingStatusConfirmed:
		return 4
	default:
		return 1
	}
}

// PathForStatus maps a booking status to its canonical checkout page.
func PathForStatus(status domain.BookingStatus) string {
	switch status {
	case domain.BookingStatusPendingPayment:
		return PathPayment
	case domain.BookingStatusPendingConfirm:
		return PathConfirm
	case domain.BookingStatusWaitingSupplier, domain.BookingStatusConfirmed:
		return PathComplete
	default:
		return PathInfo
	}
}

// requiredOrder is the minimum progress a booking must have reached for a
// step to be viewable.
func requiredOrder(step domain.CheckoutStep) int {
	switch step {
	case domain.CheckoutStepPayment:
		return 2
	case domain.CheckoutStepConfirm:
		return 3
	case domain.CheckoutStepWaitingSupplier:
		return 4
	default:
		return 1
	}
}

// CanAccessStep reports whether the step may be rendered for a booking in
// the given status. Earlier, already-completed steps stay reachable so the
// customer can navigate backward; steps past the booking's actual progress
// never are. A confirmed booking is locked to the completion page so the
// payment and confirm forms cannot be replayed.
func CanAccessStep(status domain.BookingStatus, step domain.CheckoutStep) bool {
	if status == domain.BookingStatusConfirmed {
		return step == domain.CheckoutStepWaitingSupplier
	}
	return StepOrder(status) >= requiredOrder(step)
}

// RedirectTarget decides whether a request for the given step must be
// redirected. ok is false when the step may be rendered as requested;
// otherwise the returned path is the page matching the booking's true
// progress, never an arbitrary step.
func RedirectTarget(status domain.BookingStatus, step domain.CheckoutStep) (string, bool) {
	if CanAccessStep(status, step) {
		return "", false
	}
	return PathForStatus(status), true
}
