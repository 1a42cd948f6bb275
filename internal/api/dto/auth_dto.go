package dto

import "github.com/spec-kit/booking-gateway/internal/domain"

// LoginRequest payload for sign-in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is the materialized session returned to the storefront.
type SessionResponse struct {
	User      domain.User `json:"user"`
	ExpiresAt int64       `json:"expires_at"`
}
