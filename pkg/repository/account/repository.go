package account

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for account data access. Every lookup is
// scoped by owner; a foreign account is reported as not found.
type Repository interface {
	// Create inserts a new account record from a DTO.
	Create(ctx context.Context, create dto.AccountCreate) error

	// Update applies the non-nil fields of update to the owner's account.
	Update(ctx context.Context, id, userID uuid.UUID, update dto.AccountUpdate) error

	// Get retrieves the owner's account by its ID.
	Get(ctx context.Context, id, userID uuid.UUID) (*dto.AccountRead, error)

	// ListByUser lists all accounts of a user ordered by creation time.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error)

	// AdjustBalance atomically adds delta minor units to the balance.
	// It is reserved for the ledger.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) error
}
