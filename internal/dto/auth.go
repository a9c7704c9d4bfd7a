package dto

import "time"

// LoginRequest authenticates the admin user.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the minted session token and its deadline.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionInfo describes a session without echoing its token.
type SessionInfo struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ValidateResponse reports whether a token is usable. Not-found and
// expired are both invalid but carry distinguishable reasons.
type ValidateResponse struct {
	Valid   bool         `json:"valid"`
	Reason  string       `json:"reason,omitempty"`
	Session *SessionInfo `json:"session,omitempty"`
}

// SessionStats summarizes the session collection for monitoring.
type SessionStats struct {
	Total        int        `json:"total"`
	Active       int        `json:"active"`
	Expired      int        `json:"expired"`
	OldestActive *time.Time `json:"oldestActive,omitempty"`
	NewestActive *time.Time `json:"newestActive,omitempty"`
}
