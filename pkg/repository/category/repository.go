package category

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for category data access.
type Repository interface {
	Create(ctx context.Context, create dto.CategoryCreate) error
	Update(ctx context.Context, id, userID uuid.UUID, update dto.CategoryUpdate) error
	Get(ctx context.Context, id, userID uuid.UUID) (*dto.CategoryRead, error)
	// ListByUser returns the user's categories ordered by type then name.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.CategoryRead, error)
	// Delete removes the category. Referencing transactions keep a null category.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
