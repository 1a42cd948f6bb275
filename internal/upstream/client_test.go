package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/booking-gateway/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.UpstreamConfig{
		BaseURL:        server.URL,
		TimeoutSeconds: 5,
	}, zap.NewNop())
	return client, server
}

func TestAuthClientRefreshSendsBearerRefreshToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/refresh", r.URL.Path)
		assert.Equal(t, "Bearer refresh-1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": map[string]string{
				"access_token":  "access-2",
				"refresh_token": "refresh-2",
			},
		})
	})

	pair, err := NewAuthClient(client).Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "access-2", pair.AccessToken)
	assert.Equal(t, "refresh-2", pair.RefreshToken)
}

func TestAuthClientRefreshOmittedRotation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": map[string]string{"access_token": "access-2"},
		})
	})

	pair, err := NewAuthClient(client).Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "access-2", pair.AccessToken)
	assert.Empty(t, pair.RefreshToken)
}

func TestAuthClientRefreshUnauthorized(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := NewAuthClient(client).Refresh(context.Background(), "revoked")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthClientLogin(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "u@example.com", body["email"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": map[string]string{
				"access_token":  "access-1",
				"refresh_token": "refresh-1",
			},
			"user": map[string]string{"id": "user-1", "email": "u@example.com"},
		})
	})

	result, err := NewAuthClient(client).Login(context.Background(), "u@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", result.User.ID)
	assert.Equal(t, "access-1", result.Tokens.AccessToken)
	assert.Equal(t, "refresh-1", result.Tokens.RefreshToken)
}

func TestBookingClientCurrentBooking(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/booking/current", r.URL.Path)
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"booking": map[string]any{
				"id":     "bk-1",
				"status": "pending_payment",
			},
		})
	})

	booking, err := NewBookingClient(client).CurrentBooking(context.Background(), "access-1")
	require.NoError(t, err)
	assert.Equal(t, "bk-1", booking.ID)
	assert.Equal(t, "pending_payment", string(booking.Status))
}

func TestBookingClientNoCurrentBooking(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := NewBookingClient(client).CurrentBooking(context.Background(), "access-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientTimeoutConfig(t *testing.T) {
	client := NewClient(config.UpstreamConfig{BaseURL: "http://example.com/", TimeoutSeconds: 3}, zap.NewNop())
	assert.Equal(t, "http://example.com", client.baseURL)
	assert.Equal(t, 3*time.Second, client.http.Timeout)
}
