// Package account provides the account registry: listing, creation,
// partial updates, archiving and balance audits. Balances are only moved
// by the ledger in package transaction.
package account

import (
	"context"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/config"
	accountdomain "github.com/amirasaad/fintrack/pkg/domain/account"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/money"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
)

// CreateInput describes a new account. Empty Type defaults to OTHER and
// empty Currency to the configured default currency.
type CreateInput struct {
	Name           string
	Type           string
	Currency       string
	InitialBalance float64 // Decimal amount, may be negative
}

// UpdateInput carries a partial account update. Nil fields keep their
// stored value.
type UpdateInput struct {
	Name       *string
	Type       *string
	Currency   *string
	IsArchived *bool
}

// Service provides account registry operations scoped by owner.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Ledger
	logger *slog.Logger
}

// New creates a new account Service.
func New(
	uow repository.UnitOfWork,
	cfg *config.Ledger,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// List returns the user's accounts ordered by creation time.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, userID)
}

// Get returns one of the user's accounts. Foreign accounts are not found.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*dto.AccountRead, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id, userID)
}

// Create validates in and persists a new account whose balance starts at
// the converted initial balance.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in CreateInput,
) (out *dto.AccountRead, err error) {
	log := s.logger.With("userID", userID)
	opening, err := money.ToMinorUnits(in.InitialBalance)
	if err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}
	acc, err := accountdomain.New().
		WithUserID(userID).
		WithName(in.Name).
		WithType(in.Type).
		WithCurrency(currency).
		WithOpeningBalance(opening).
		Build()
	if err != nil {
		log.Warn("Account validation failed", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, dto.AccountCreate{
			ID:                  acc.ID,
			UserID:              acc.UserID,
			Name:                acc.Name,
			Type:                string(acc.Type),
			Currency:            acc.Currency,
			OpeningBalanceCents: acc.OpeningBalance,
		}); err != nil {
			return err
		}
		out, err = repo.Get(ctx, acc.ID, userID)
		return err
	})
	if err != nil {
		log.Error("Create account failed", "error", err)
		return nil, err
	}
	log.Info("Account created", "accountID", acc.ID, "type", acc.Type, "currency", acc.Currency)
	return out, nil
}

// Update applies a partial update. Unspecified fields keep their value.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in UpdateInput,
) (out *dto.AccountRead, err error) {
	update := dto.AccountUpdate{IsArchived: in.IsArchived}
	if in.Name != nil {
		name, err := accountdomain.NormalizeName(*in.Name)
		if err != nil {
			return nil, err
		}
		update.Name = &name
	}
	if in.Type != nil {
		t, err := accountdomain.ParseType(*in.Type)
		if err != nil {
			return nil, err
		}
		typ := string(t)
		update.Type = &typ
	}
	if in.Currency != nil {
		currency, err := money.NormalizeCurrency(*in.Currency)
		if err != nil {
			return nil, err
		}
		update.Currency = &currency
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, id, userID, update); err != nil {
			return err
		}
		out, err = repo.Get(ctx, id, userID)
		return err
	})
	if err != nil {
		s.logger.Error("Update account failed", "userID", userID, "accountID", id, "error", err)
		return nil, err
	}
	return out, nil
}

// Archive soft-deletes an account. History referencing it is kept.
func (s *Service) Archive(ctx context.Context, userID, id uuid.UUID) (*dto.AccountRead, error) {
	archived := true
	out, err := s.Update(ctx, userID, id, UpdateInput{IsArchived: &archived})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Account archived", "userID", userID, "accountID", id)
	return out, nil
}

// Audit reconciles the stored balance with the opening balance plus the
// effects of every live transaction on the account.
func (s *Service) Audit(ctx context.Context, userID, id uuid.UUID) (*dto.AccountAudit, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	txs, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	acc, err := accounts.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	sum, count, err := txs.SumEffects(ctx, id)
	if err != nil {
		return nil, err
	}
	expected := acc.OpeningBalanceCents + sum
	audit := &dto.AccountAudit{
		AccountID:           acc.ID,
		OpeningBalanceCents: acc.OpeningBalanceCents,
		EffectsCents:        sum,
		ExpectedCents:       expected,
		BalanceCents:        acc.BalanceCents,
		DriftCents:          acc.BalanceCents - expected,
		TransactionCount:    count,
	}
	if !audit.Consistent() {
		s.logger.Warn("Balance drift detected",
			"userID", userID,
			"accountID", id,
			"drift", audit.DriftCents,
		)
	}
	return audit, nil
}

// AuditAll audits every account of the user.
func (s *Service) AuditAll(ctx context.Context, userID uuid.UUID) ([]*dto.AccountAudit, error) {
	accounts, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	audits := make([]*dto.AccountAudit, 0, len(accounts))
	for _, acc := range accounts {
		audit, err := s.Audit(ctx, userID, acc.ID)
		if err != nil {
			return nil, err
		}
		audits = append(audits, audit)
	}
	return audits, nil
}
