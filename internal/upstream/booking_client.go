package upstream

import (
	"context"
	"net/http"

	"github.com/spec-kit/booking-gateway/internal/domain"
)

// BookingClient reads booking state from the platform API.
type BookingClient struct {
	*Client
}

// NewBookingClient wraps the shared client.
func NewBookingClient(client *Client) *BookingClient {
	return &BookingClient{Client: client}
}

// CurrentBooking fetches the customer's in-progress booking via
// GET /user/booking/current. ErrNotFound means no checkout is underway.
func (c *BookingClient) CurrentBooking(ctx context.Context, accessToken string) (*domain.Booking, error) {
	var resp struct {
		Booking domain.Booking `json:"booking"`
	}
	if err := c.do(ctx, http.MethodGet, "/user/booking/current", accessToken, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Booking, nil
}
