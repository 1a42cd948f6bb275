package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-gateway/internal/api/dto"
	"github.com/spec-kit/booking-gateway/internal/auth"
	"github.com/spec-kit/booking-gateway/internal/service"
)

// AuthHandler exposes the session surface: login, logout, session view.
type AuthHandler struct {
	sessions *service.SessionService
	cookies  *auth.SessionMiddleware
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions *service.SessionService, cookies *auth.SessionMiddleware) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookies: cookies}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	state, err := h.sessions.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	if err := h.cookies.WriteState(c, state); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.SessionResponse{
			User:      state.User,
			ExpiresAt: state.AccessTokenExpires,
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if state, ok := auth.StateFromContext(c); ok {
		h.sessions.Logout(c.UserContext(), state)
	}
	h.cookies.ClearState(c)
	return c.SendStatus(http.StatusNoContent)
}

// Session handles GET /auth/session. An unauthenticated visitor gets a
// null session, not an error; the storefront uses this to decide what to
// render.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{
		"data": dto.SessionResponse{
			User:      session.User,
			ExpiresAt: session.ExpiresAt,
		},
	})
}

// RefreshProfile handles POST /auth/session/refresh: re-fetches the user
// snapshot embedded in the session cookie after a profile update.
func (h *AuthHandler) RefreshProfile(c *fiber.Ctx) error {
	state, ok := auth.StateFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	next, err := h.sessions.RefreshProfile(c.UserContext(), state)
	if err != nil {
		return err
	}
	if err := h.cookies.WriteState(c, next); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.SessionResponse{
			User:      next.User,
			ExpiresAt: next.AccessTokenExpires,
		},
	})
}
