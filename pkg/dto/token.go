package dto

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenRead is a persisted refresh token record.
type RefreshTokenRead struct {
	ID            uuid.UUID // Also the token's jti claim
	UserID        uuid.UUID
	TokenHash     string
	IssuedAt      time.Time
	ExpiresAt     time.Time
	RevokedAt     *time.Time
	RevokedReason string
}

// RefreshTokenCreate is a DTO for persisting a refresh token record.
type RefreshTokenCreate struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is an access token plus a server-tracked refresh token.
type TokenPair struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
}
