// Package user provides business logic for user profile operations.
package user

import (
	"context"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
)

// Service provides read and profile update operations for users.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
	}
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(
	ctx context.Context,
	userID uuid.UUID,
) (*dto.UserRead, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, userID)
}

// GetUserByEmail retrieves a user by exact email.
func (s *Service) GetUserByEmail(
	ctx context.Context,
	email string,
) (*dto.UserRead, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.GetByEmail(ctx, email)
}

// UpdateName changes the user's display name, the only mutable profile
// field, and returns the updated user.
func (s *Service) UpdateName(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("userID", userID)
	name, err = user.NormalizeName(name)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, userID, dto.UserUpdate{Name: &name}); err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		log.Error("UpdateName failed", "error", err)
		return nil, err
	}
	log.Info("User name updated")
	return u, nil
}
