// Package category provides the category registry and the typed
// resolution the ledger uses to validate a transaction's category.
package category

import (
	"context"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/domain"
	categorydomain "github.com/amirasaad/fintrack/pkg/domain/category"
	txdomain "github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	categoryrepo "github.com/amirasaad/fintrack/pkg/repository/category"
	"github.com/google/uuid"
)

// Service provides category registry operations scoped by owner.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new category Service.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, logger: logger}
}

// ResolveTyped loads the user's category and checks it may be attached to
// a transaction of type t.
func ResolveTyped(
	ctx context.Context,
	repo categoryrepo.Repository,
	userID, categoryID uuid.UUID,
	t txdomain.Type,
) (*dto.CategoryRead, error) {
	c, err := repo.Get(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}
	expected, ok := t.CategoryType()
	if !ok {
		return nil, domain.ErrTransferCategoryNotAllowed
	}
	if c.Type != string(expected) {
		return nil, domain.ErrCategoryTypeMismatch
	}
	return c, nil
}

// EnsureTyped is ResolveTyped outside a unit of work.
func (s *Service) EnsureTyped(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	t txdomain.Type,
) (*dto.CategoryRead, error) {
	repo, err := s.uow.CategoryRepository()
	if err != nil {
		return nil, err
	}
	return ResolveTyped(ctx, repo, userID, categoryID, t)
}

// List returns the user's categories ordered by type then name.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*dto.CategoryRead, error) {
	repo, err := s.uow.CategoryRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, userID)
}

// Create adds a category. A category with the same name and type fails
// with ErrCategoryExists.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	name, typ string,
) (out *dto.CategoryRead, err error) {
	name, err = categorydomain.NormalizeName(name)
	if err != nil {
		return nil, err
	}
	t, err := categorydomain.ParseType(typ)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, dto.CategoryCreate{
			ID:     id,
			UserID: userID,
			Name:   name,
			Type:   string(t),
		}); err != nil {
			return err
		}
		out, err = repo.Get(ctx, id, userID)
		return err
	})
	if err != nil {
		s.logger.Error("Create category failed", "userID", userID, "name", name, "error", err)
		return nil, err
	}
	return out, nil
}

// Rename changes a category's name. Its type is fixed.
func (s *Service) Rename(
	ctx context.Context,
	userID, id uuid.UUID,
	name string,
) (out *dto.CategoryRead, err error) {
	name, err = categorydomain.NormalizeName(name)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, id, userID, dto.CategoryUpdate{Name: &name}); err != nil {
			return err
		}
		out, err = repo.Get(ctx, id, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a category; transactions that used it keep a null category.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		return repo.Delete(ctx, id, userID)
	})
	if err != nil {
		s.logger.Error("Delete category failed", "userID", userID, "categoryID", id, "error", err)
		return err
	}
	s.logger.Info("Category deleted", "userID", userID, "categoryID", id)
	return nil
}
