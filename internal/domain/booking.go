package domain

import "time"

// BookingStatus enumerates server-reported lifecycle states for a booking.
// The upstream booking API owns the value; the gateway only reads it.
type BookingStatus string

const (
	BookingStatusPending         BookingStatus = "pending"
	BookingStatusPendingInfo     BookingStatus = "pending_info"
	BookingStatusPendingPayment  BookingStatus = "pending_payment"
	BookingStatusPendingConfirm  BookingStatus = "pending_confirm"
	BookingStatusWaitingSupplier BookingStatus = "waiting_supplier"
	BookingStatusConfirmed       BookingStatus = "confirmed"
	BookingStatusCancelled       BookingStatus = "cancelled"
)

// Booking is the gateway's read model of the customer's current booking.
type Booking struct {
	ID          string        `json:"id"`
	TourID      string        `json:"tour_id"`
	TourName    string        `json:"tour_name"`
	Status      BookingStatus `json:"status"`
	TotalAmount int64         `json:"total_amount"`
	Currency    string        `json:"currency"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
