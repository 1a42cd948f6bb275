package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/booking-gateway/internal/domain"
)

const (
	// refreshMargin is subtracted from the access token expiry so a
	// refresh happens before the token actually dies mid-request.
	refreshMargin = 30 * time.Second
	// expiryFallback is assumed when a token's expiry cannot be decoded,
	// so the next resolution still attempts a refresh instead of trusting
	// a dead token indefinitely.
	expiryFallback = 10 * time.Minute
)

// TokenState is the per-session snapshot persisted between requests. It is
// never mutated in place; every transition returns a fresh value.
type TokenState struct {
	AccessToken        string              `json:"access_token,omitempty"`
	RefreshToken       string              `json:"refresh_token,omitempty"`
	AccessTokenExpires int64               `json:"access_token_expires,omitempty"`
	User               domain.User         `json:"user,omitempty"`
	Error              domain.SessionError `json:"error,omitempty"`
}

// TokenPair is the result of an upstream refresh. RefreshToken may be empty
// when the upstream chooses not to rotate.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenRefresher exchanges a refresh token for a new pair.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

// DecodeExpiry extracts the exp claim of an access token as epoch
// milliseconds. The token is decoded without signature verification; the
// gateway does not hold the upstream's signing key and only needs the
// expiry for refresh scheduling. Returns 0 for an empty token and a
// conservative now+10min estimate for anything that cannot be decoded.
func DecodeExpiry(token string) int64 {
	if token == "" {
		return 0
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Now().Add(expiryFallback).UnixMilli()
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Now().Add(expiryFallback).UnixMilli()
	}
	return exp.Time.UnixMilli()
}

// Lifecycle keeps a session's token pair valid for as long as the refresh
// token allows, and collapses the state to an unauthenticated one when it
// no longer does.
type Lifecycle struct {
	refresher TokenRefresher
	logger    *zap.Logger
	now       func() time.Time
}

// NewLifecycle builds the lifecycle manager.
func NewLifecycle(refresher TokenRefresher, logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		refresher: refresher,
		logger:    logger,
		now:       time.Now,
	}
}

// Resolve returns the state to use for the current request: fresh states
// pass through untouched, stale ones trigger a single refresh attempt.
func (l *Lifecycle) Resolve(ctx context.Context, state TokenState) TokenState {
	if state.Error != "" {
		return state
	}
	if state.AccessToken != "" && l.now().UnixMilli() < state.AccessTokenExpires-refreshMargin.Milliseconds() {
		return state
	}
	return l.Refresh(ctx, state)
}

// Refresh exchanges the state's refresh token for a new access token. It is
// total: every failure branch is captured in the returned state's Error tag,
// never raised, because the session hook invoking it has no way to translate
// a failure into a response. Failed states carry no token material at all.
func (l *Lifecycle) Refresh(ctx context.Context, state TokenState) TokenState {
	if state.RefreshToken == "" {
		return TokenState{Error: domain.SessionErrorMissingRefreshToken}
	}

	pair, err := l.refresher.Refresh(ctx, state.RefreshToken)
	if err != nil || pair.AccessToken == "" {
		l.logger.Warn("access token refresh failed", zap.Error(err))
		return TokenState{Error: domain.SessionErrorRefreshFailed}
	}

	next := TokenState{
		AccessToken:        pair.AccessToken,
		RefreshToken:       pair.RefreshToken,
		AccessTokenExpires: DecodeExpiry(pair.AccessToken),
		User:               state.User,
	}
	if next.RefreshToken == "" {
		// Upstream rotation is optional; keep the old token when the
		// response omits a replacement.
		next.RefreshToken = state.RefreshToken
	}
	return next
}

// Materialize converts a token state into the session visible to handlers.
// A state with an error tag yields no session at all, regardless of what
// its token fields literally contain.
func Materialize(state TokenState) (*domain.Session, bool) {
	if state.Error != "" || state.AccessToken == "" {
		return nil, false
	}
	return &domain.Session{
		User:        state.User,
		AccessToken: state.AccessToken,
		ExpiresAt:   state.AccessTokenExpires,
	}, true
}
