package entity

import "time"

// AuthLoginRequest is the login request payload.
type AuthLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthRefreshRequest carries the refresh token used to mint a new access
// token.
type AuthRefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthLogoutRequest carries the refresh token to revoke. The token is
// optional: logout without one is a no-op that still succeeds.
type AuthLogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthLoginResponse is returned after a successful login.
type AuthLoginResponse struct {
	User         UserSummary `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

// AuthRefreshResponse is returned after a successful token refresh.
type AuthRefreshResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
