package transaction

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for transaction rows. It never touches
// account balances; the ledger service pairs every write with the matching
// balance adjustment inside one unit of work.
type Repository interface {
	// Create inserts a new transaction row.
	Create(ctx context.Context, create dto.TransactionCreate) error

	// Update overwrites the mutable fields of the owner's transaction.
	Update(ctx context.Context, id, userID uuid.UUID, update dto.TransactionUpdate) error

	// Get retrieves the owner's transaction with its related accounts and category.
	Get(ctx context.Context, id, userID uuid.UUID) (*dto.TransactionRead, error)

	// GetForUpdate is Get after taking a row lock held until the unit of
	// work ends. Update and Delete read through it so the effect they revert
	// is the one still stored.
	GetForUpdate(ctx context.Context, id, userID uuid.UUID) (*dto.TransactionRead, error)

	// Delete removes the owner's transaction row.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// List returns one page of transactions matching filter and the total match count.
	List(ctx context.Context, filter dto.TransactionFilter) ([]*dto.TransactionRead, int64, error)

	// SumEffects returns the signed sum of all effects on an account and the
	// number of transactions referencing it.
	SumEffects(ctx context.Context, accountID uuid.UUID) (sum int64, count int64, err error)
}
