package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/booking-gateway/internal/domain"
)

const (
	stateKey   = "session_state"
	sessionKey = "session_view"
)

// SessionNotifier observes lifecycle transitions so the audit pipeline can
// record them. Implementations must be cheap; they run on the request path.
type SessionNotifier interface {
	Refreshed(ctx context.Context, userID string, rotated bool)
	Invalidated(ctx context.Context, userID string, reason domain.SessionError)
}

// SessionMiddleware resolves the cookie-backed session on every request:
// it opens the session cookie, lets the lifecycle refresh a stale token
// pair, persists the updated state back into the cookie, and exposes the
// materialized session to handlers.
type SessionMiddleware struct {
	codec     *CookieCodec
	lifecycle *Lifecycle
	notifier  SessionNotifier
	logger    *zap.Logger
}

// NewSessionMiddleware constructs the middleware. notifier may be nil.
func NewSessionMiddleware(codec *CookieCodec, lifecycle *Lifecycle, notifier SessionNotifier, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{codec: codec, lifecycle: lifecycle, notifier: notifier, logger: logger}
}

// Handle runs the resolve-refresh-persist cycle for the request.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	raw := c.Cookies(m.codec.Name())
	state, ok := m.codec.Decode(raw)
	if !ok {
		// No cookie, or one we cannot trust: plain visitor.
		if raw != "" {
			m.clearCookie(c)
		}
		return c.Next()
	}

	resolved := m.lifecycle.Resolve(c.UserContext(), state)

	if resolved.Error != "" {
		m.logger.Info("session invalidated",
			zap.String("reason", string(resolved.Error)),
			zap.String("user_id", state.User.ID))
		m.clearCookie(c)
		if m.notifier != nil {
			m.notifier.Invalidated(c.UserContext(), state.User.ID, resolved.Error)
		}
	} else if resolved != state {
		if err := m.writeCookie(c, resolved); err != nil {
			m.logger.Error("persist session cookie", zap.Error(err))
		}
		if m.notifier != nil {
			m.notifier.Refreshed(c.UserContext(), resolved.User.ID, resolved.RefreshToken != state.RefreshToken)
		}
	}

	c.Locals(stateKey, resolved)
	if session, valid := Materialize(resolved); valid {
		c.Locals(sessionKey, session)
	}
	return c.Next()
}

// WriteState seals a fresh state into the response cookie; used by the
// login handler after the upstream accepted credentials.
func (m *SessionMiddleware) WriteState(c *fiber.Ctx, state TokenState) error {
	return m.writeCookie(c, state)
}

// ClearState drops the session cookie; used by logout.
func (m *SessionMiddleware) ClearState(c *fiber.Ctx) {
	m.clearCookie(c)
}

func (m *SessionMiddleware) writeCookie(c *fiber.Ctx, state TokenState) error {
	value, err := m.codec.Encode(state)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     m.codec.Name(),
		Value:    value,
		Expires:  time.Now().Add(m.codec.TTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return nil
}

func (m *SessionMiddleware) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.codec.Name(),
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// SessionFromContext retrieves the materialized session, if any.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*domain.Session)
	return session, ok
}

// StateFromContext retrieves the resolved token state, if any.
func StateFromContext(c *fiber.Ctx) (TokenState, bool) {
	val := c.Locals(stateKey)
	if val == nil {
		return TokenState{}, false
	}
	state, ok := val.(TokenState)
	return state, ok
}

// RequireSession rejects requests without a valid materialized session.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := SessionFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
