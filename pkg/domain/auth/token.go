// Package auth models refresh token lifecycle.
package auth

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
)

// State is where a refresh token record is in its lifecycle. Only Issued
// tokens can be redeemed; the other states are terminal.
type State string

const (
	Issued  State = "ISSUED"
	Rotated State = "ROTATED"
	Revoked State = "REVOKED"
	Expired State = "EXPIRED"
)

// Reasons recorded when a refresh token is revoked.
const (
	ReasonRotated = "rotated"
	ReasonLogout  = "logout"
)

// StateOf derives the state of a refresh token record at now.
func StateOf(revokedAt *time.Time, reason string, expiresAt, now time.Time) State {
	switch {
	case revokedAt != nil && reason == ReasonRotated:
		return Rotated
	case revokedAt != nil:
		return Revoked
	case !now.Before(expiresAt):
		return Expired
	default:
		return Issued
	}
}

// RedeemError returns the error for redeeming a token in state s, or nil
// when the token may be rotated.
func (s State) RedeemError() error {
	switch s {
	case Issued:
		return nil
	case Expired:
		return domain.ErrRefreshTokenExpired
	default:
		return domain.ErrRefreshTokenRevoked
	}
}
