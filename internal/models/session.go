package models

import "time"

// RefreshSession tracks an issued refresh token so logout can revoke it
// before its expiry. Only a hash of the token is stored.
type RefreshSession struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"refresh_token_hash"`
	CreatedAt        time.Time `json:"created_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	IsActive         bool      `json:"is_active"`
}
