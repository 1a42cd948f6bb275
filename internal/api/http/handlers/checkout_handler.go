package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-gateway/internal/api/dto"
	"github.com/spec-kit/booking-gateway/internal/auth"
	"github.com/spec-kit/booking-gateway/internal/domain"
	"github.com/spec-kit/booking-gateway/internal/service"
)

// CheckoutHandler serves the guarded checkout flow pages.
type CheckoutHandler struct {
	checkout *service.CheckoutService
}

// NewCheckoutHandler constructs handler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkoutService}
}

// Info handles GET /checkout.
func (h *CheckoutHandler) Info(c *fiber.Ctx) error {
	return h.serveStep(c, domain.CheckoutStepInfo)
}

// Payment handles GET /checkout/payment.
func (h *CheckoutHandler) Payment(c *fiber.Ctx) error {
	return h.serveStep(c, domain.CheckoutStepPayment)
}

// Confirm handles GET /checkout/confirm.
func (h *CheckoutHandler) Confirm(c *fiber.Ctx) error {
	return h.serveStep(c, domain.CheckoutStepConfirm)
}

// Complete handles GET /checkout/complete.
func (h *CheckoutHandler) Complete(c *fiber.Ctx) error {
	return h.serveStep(c, domain.CheckoutStepWaitingSupplier)
}

func (h *CheckoutHandler) serveStep(c *fiber.Ctx, step domain.CheckoutStep) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	decision, err := h.checkout.GuardStep(c.UserContext(), session, step)
	if err != nil {
		return err
	}
	if decision.Redirect {
		return c.Redirect(decision.Target, http.StatusTemporaryRedirect)
	}

	return c.JSON(fiber.Map{
		"data": dto.CheckoutStepResponse{
			Step:    step,
			Booking: decision.Booking,
		},
	})
}
