package upstream

import (
	"context"
	"net/http"

	"github.com/spec-kit/booking-gateway/internal/auth"
	"github.com/spec-kit/booking-gateway/internal/domain"
)

// AuthClient talks to the booking platform's auth endpoints.
type AuthClient struct {
	*Client
}

// NewAuthClient wraps the shared client.
func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{Client: client}
}

type tokenEnvelope struct {
	Token struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	} `json:"token"`
}

type loginResponse struct {
	tokenEnvelope
	User domain.User `json:"user"`
}

// LoginResult carries what the upstream returned for accepted credentials.
type LoginResult struct {
	User   domain.User
	Tokens auth.TokenPair
}

// Login proxies credentials to POST /auth/login. The gateway never inspects
// the password; credential verification is entirely upstream.
func (c *AuthClient) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var resp loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &resp); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{
		User: resp.User,
		Tokens: auth.TokenPair{
			AccessToken:  resp.Token.AccessToken,
			RefreshToken: resp.Token.RefreshToken,
		},
	}, nil
}

// Refresh exchanges a refresh token via POST /auth/refresh, where the
// bearer is the refresh token itself. Satisfies auth.TokenRefresher.
func (c *AuthClient) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	var resp tokenEnvelope
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", refreshToken, nil, &resp); err != nil {
		return auth.TokenPair{}, err
	}
	return auth.TokenPair{
		AccessToken:  resp.Token.AccessToken,
		RefreshToken: resp.Token.RefreshToken,
	}, nil
}

// Me fetches the authenticated profile via GET /auth/me.
func (c *AuthClient) Me(ctx context.Context, accessToken string) (domain.User, error) {
	var resp struct {
		User domain.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", accessToken, nil, &resp); err != nil {
		return domain.User{}, err
	}
	return resp.User, nil
}
