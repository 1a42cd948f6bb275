package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/booking-gateway/internal/checkout"
	"github.com/spec-kit/booking-gateway/internal/domain"
	"github.com/spec-kit/booking-gateway/internal/events"
	"github.com/spec-kit/booking-gateway/internal/observability"
	"github.com/spec-kit/booking-gateway/internal/service"
)

type stubBookingAPI struct {
	mock.Mock
}

func (m *stubBookingAPI) CurrentBooking(ctx context.Context, accessToken string) (*domain.Booking, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func newCheckoutApp(t *testing.T, booking *domain.Booking) *fiber.App {
	t.Helper()

	api := new(stubBookingAPI)
	api.On("CurrentBooking", mock.Anything, mock.Anything).Return(booking, nil)

	svc := service.NewCheckoutService(api, nil, events.NewInMemoryDispatcher(), observability.NewMetrics(), zap.NewNop())
	handler := NewCheckoutHandler(svc)

	app := fiber.New()
	// Stand-in for the session middleware.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session_view", &domain.Session{
			User:        domain.User{ID: "user-1"},
			AccessToken: "access-1",
		})
		return c.Next()
	})
	app.Get("/checkout", handler.Info)
	app.Get("/checkout/payment", handler.Payment)
	app.Get("/checkout/confirm", handler.Confirm)
	app.Get("/checkout/complete", handler.Complete)
	return app
}

func TestCheckoutPageRendersMatchingStep(t *testing.T) {
	app := newCheckoutApp(t, &domain.Booking{ID: "bk-1", Status: domain.BookingStatusPendingPayment})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/checkout/payment", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCheckoutPageRedirectsToTrueProgress(t *testing.T) {
	app := newCheckoutApp(t, &domain.Booking{ID: "bk-1", Status: domain.BookingStatusPendingPayment})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/checkout/confirm", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, checkout.PathPayment, resp.Header.Get("Location"))
}

func TestCheckoutConfirmedBookingRedirectsToCompletion(t *testing.T) {
	app := newCheckoutApp(t, &domain.Booking{ID: "bk-1", Status: domain.BookingStatusConfirmed})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/checkout", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, checkout.PathComplete, resp.Header.Get("Location"))
}
