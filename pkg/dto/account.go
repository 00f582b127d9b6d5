package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountRead is a read-optimized DTO for account queries and API responses.
type AccountRead struct {
	ID                  uuid.UUID
	UserID              uuid.UUID // User who owns the account
	Name                string
	Type                string
	Currency            string
	BalanceCents        int64 // Current balance in minor units
	OpeningBalanceCents int64 // Balance the account was created with
	IsArchived          bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// AccountCreate is a DTO for creating a new account.
type AccountCreate struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Name                string
	Type                string
	Currency            string
	OpeningBalanceCents int64 // Also the initial balance
}

// AccountUpdate is a DTO for updating one or more fields of an account.
// Nil fields keep their stored value.
type AccountUpdate struct {
	Name       *string
	Type       *string
	Currency   *string
	IsArchived *bool
}

// AccountRef is the compact account shape embedded in transaction views.
type AccountRef struct {
	ID       uuid.UUID
	Name     string
	Type     string
	Currency string
}

// AccountAudit reconciles an account's stored balance with its history.
type AccountAudit struct {
	AccountID           uuid.UUID
	OpeningBalanceCents int64
	EffectsCents        int64 // Sum of signed effects of live transactions
	ExpectedCents       int64 // Opening balance plus effects
	BalanceCents        int64 // Stored balance
	DriftCents          int64 // Stored minus expected
	TransactionCount    int64
}

// Consistent reports whether the stored balance matches the history.
func (a AccountAudit) Consistent() bool {
	return a.DriftCents == 0
}
