package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/booking-gateway/internal/auth"
	"github.com/spec-kit/booking-gateway/internal/domain"
	"github.com/spec-kit/booking-gateway/internal/events"
	"github.com/spec-kit/booking-gateway/internal/observability"
	"github.com/spec-kit/booking-gateway/internal/upstream"
	apperrors "github.com/spec-kit/booking-gateway/pkg/util"
)

// AuthAPI is the slice of the upstream auth surface the session service needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (upstream.LoginResult, error)
	Me(ctx context.Context, accessToken string) (domain.User, error)
}

// SessionService drives login, logout and profile refresh against the
// upstream auth API, producing token states for the cookie session.
type SessionService struct {
	authAPI    AuthAPI
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewSessionService builds the service.
func NewSessionService(authAPI AuthAPI, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *SessionService {
	return &SessionService{
		authAPI:    authAPI,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// Login proxies credentials upstream and seeds a fresh token state.
func (s *SessionService) Login(ctx context.Context, email, password string) (auth.TokenState, error) {
	result, err := s.authAPI.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return auth.TokenState{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return auth.TokenState{}, apperrors.NewUpstreamError(err)
	}

	state := auth.TokenState{
		AccessToken:        result.Tokens.AccessToken,
		RefreshToken:       result.Tokens.RefreshToken,
		AccessTokenExpires: auth.DecodeExpiry(result.Tokens.AccessToken),
		User:               result.User,
	}

	s.publish(ctx, events.Event{
		Type:    events.EventLoginSucceeded,
		UserID:  result.User.ID,
		Payload: events.LoginSucceededPayload{Email: result.User.Email},
	})
	return state, nil
}

// RefreshProfile re-fetches the user snapshot carried in the session; used
// when the storefront signals the profile changed (name, avatar).
func (s *SessionService) RefreshProfile(ctx context.Context, state auth.TokenState) (auth.TokenState, error) {
	if state.AccessToken == "" {
		return state, apperrors.NewUnauthorized("no active session")
	}

	user, err := s.authAPI.Me(ctx, state.AccessToken)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return state, apperrors.NewUnauthorized("session expired")
		}
		return state, apperrors.NewUpstreamError(err)
	}

	next := state
	next.User = user
	return next, nil
}

// Refreshed records a successful transparent token refresh.
func (s *SessionService) Refreshed(ctx context.Context, userID string, rotated bool) {
	s.metrics.RecordTokenRefresh("success")
	s.publish(ctx, events.Event{
		Type:    events.EventSessionRefreshed,
		UserID:  userID,
		Payload: events.SessionRefreshedPayload{Rotated: rotated},
	})
}

// Invalidated records a session collapse: refresh failure or a state that
// never held a refresh token.
func (s *SessionService) Invalidated(ctx context.Context, userID string, reason domain.SessionError) {
	s.metrics.RecordTokenRefresh("failure")
	s.publish(ctx, events.Event{
		Type:    events.EventSessionInvalidated,
		UserID:  userID,
		Payload: events.SessionInvalidatedPayload{Reason: string(reason)},
	})
}

// Logout records the explicit sign-out. The cookie is cleared by the
// handler; the upstream holds no per-session server state to revoke.
func (s *SessionService) Logout(ctx context.Context, state auth.TokenState) {
	s.publish(ctx, events.Event{
		Type:    events.EventSessionInvalidated,
		UserID:  state.User.ID,
		Payload: events.SessionInvalidatedPayload{Reason: "logout"},
	})
}

func (s *SessionService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
