package refreshtoken

import (
	"context"
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// Repository stores refresh token records. Records are never deleted;
// revocation marks them.
type Repository interface {
	Create(ctx context.Context, create dto.RefreshTokenCreate) error

	// Get retrieves a record by token id and owner.
	Get(ctx context.Context, id, userID uuid.UUID) (*dto.RefreshTokenRead, error)

	// Revoke marks an unrevoked record as revoked. It reports false when the
	// record was already revoked or does not exist.
	Revoke(ctx context.Context, id uuid.UUID, reason string, at time.Time) (bool, error)
}
