package domain

// SessionError tags a token state whose session must be treated as absent.
type SessionError string

const (
	// SessionErrorMissingRefreshToken means the state never carried a
	// refresh token; re-authentication is the only way out.
	SessionErrorMissingRefreshToken SessionError = "MissingRefreshToken"
	// SessionErrorRefreshFailed means a refresh attempt was made and did
	// not succeed; the session is invalidated.
	SessionErrorRefreshFailed SessionError = "RefreshAccessTokenError"
)

// Session is the materialized, trustworthy view handed to request handlers.
// It only exists for token states without an error tag.
type Session struct {
	User        User   `json:"user"`
	AccessToken string `json:"-"`
	ExpiresAt   int64  `json:"expires_at"`
}
