package domain

// User is the authenticated customer as reported by the upstream auth API.
// The gateway never stores credentials; it only mirrors the profile fields
// needed to render the session.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}
