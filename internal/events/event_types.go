package events

import (
	"time"

	"github.com/spec-kit/booking-gateway/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded     EventType = "login_succeeded"
	EventSessionRefreshed   EventType = "session_refreshed"
	EventSessionInvalidated EventType = "session_invalidated"
	EventCheckoutRedirected EventType = "checkout_redirected"
)

// Event represents a gateway event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	Email string `json:"email"`
}

// SessionRefreshedPayload payload.
type SessionRefreshedPayload struct {
	Rotated bool `json:"rotated"`
}

// SessionInvalidatedPayload payload. Reason is a SessionError tag or
// "logout" for an explicit sign-out.
type SessionInvalidatedPayload struct {
	Reason string `json:"reason"`
}

// CheckoutRedirectedPayload payload.
type CheckoutRedirectedPayload struct {
	BookingID     string               `json:"booking_id"`
	BookingStatus domain.BookingStatus `json:"booking_status"`
	RequestedStep domain.CheckoutStep  `json:"requested_step"`
	Target        string               `json:"target"`
}
