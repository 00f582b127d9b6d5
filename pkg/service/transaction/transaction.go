// Package transaction is the ledger engine. Every mutation writes the
// transaction row and the matching balance effects in one unit of work,
// so a reader never sees one without the other.
//
// Updates and deletes revert the stored effect before anything else and
// never compute a delta between old and new state.
package transaction

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	txdomain "github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/money"
	"github.com/amirasaad/fintrack/pkg/repository"
	accountrepo "github.com/amirasaad/fintrack/pkg/repository/account"
	categorysvc "github.com/amirasaad/fintrack/pkg/service/category"
	"github.com/google/uuid"
)

// CreateInput describes a new transaction. Amount is a positive decimal
// amount. ToAccountID is ignored unless Type is TRANSFER. A zero
// OccurredAt means now.
type CreateInput struct {
	Type        string
	AccountID   uuid.UUID
	ToAccountID *uuid.UUID
	CategoryID  *uuid.UUID
	Amount      float64
	OccurredAt  time.Time
	Description string
	Tags        []string
	Attachments []string
	AIJobID     *string
}

// UpdateInput overlays provided fields onto the stored transaction.
// A nil field keeps the stored value. Tags and Attachments replace the
// stored lists when non-nil. CategoryID set to null clears the category.
type UpdateInput struct {
	Type        *string
	AccountID   *uuid.UUID
	ToAccountID *uuid.UUID
	CategoryID  dto.Optional[uuid.UUID]
	Amount      *float64
	OccurredAt  *time.Time
	Description *string
	Tags        []string
	Attachments []string
	AIJobID     *string
}

// ListQuery filters, sorts and pages a transaction listing. Zero values
// select the defaults: page 1, the configured page size, newest first.
type ListQuery struct {
	Type       string
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Keyword    string
	SortBy     string
	Ascending  bool
	Page       int
	PageSize   int
}

// Service is the ledger engine.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Ledger
	logger *slog.Logger
}

// New creates a new ledger Service.
func New(
	uow repository.UnitOfWork,
	cfg *config.Ledger,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Create validates in, then persists the row and applies its effect
// atomically. It returns the denormalized view.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in CreateInput,
) (out *dto.TransactionRead, err error) {
	log := s.logger.With("userID", userID, "op", "create")
	typ, err := txdomain.ParseType(in.Type)
	if err != nil {
		return nil, err
	}
	cents, err := money.ToMinorUnits(in.Amount)
	if err != nil {
		return nil, err
	}
	if err := txdomain.ValidateAmount(cents); err != nil {
		return nil, err
	}
	description, err := txdomain.NormalizeDescription(in.Description)
	if err != nil {
		return nil, err
	}
	tags, err := txdomain.NormalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}
	attachments, err := txdomain.ValidateAttachments(in.Attachments)
	if err != nil {
		return nil, err
	}
	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	id := uuid.New()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}

		src, err := accounts.Get(ctx, in.AccountID, userID)
		if err != nil {
			return err
		}
		var toAccountID *uuid.UUID
		var dst *dto.AccountRead
		if typ == txdomain.Transfer {
			if in.ToAccountID == nil {
				return domain.ErrTransferTargetRequired
			}
			if *in.ToAccountID == in.AccountID {
				return domain.ErrTransferSameAccount
			}
			if dst, err = accounts.Get(ctx, *in.ToAccountID, userID); err != nil {
				return err
			}
			toAccountID = &dst.ID
		}
		if err := s.checkArchived(nil, src, dst); err != nil {
			return err
		}
		if in.CategoryID != nil {
			if _, err := categorysvc.ResolveTyped(ctx, categories, userID, *in.CategoryID, typ); err != nil {
				return err
			}
		}

		if err := txs.Create(ctx, dto.TransactionCreate{
			ID:          id,
			UserID:      userID,
			AccountID:   src.ID,
			ToAccountID: toAccountID,
			CategoryID:  in.CategoryID,
			Type:        string(typ),
			AmountCents: cents,
			OccurredAt:  occurredAt,
			Description: description,
			Tags:        tags,
			Attachments: attachments,
			AIJobID:     in.AIJobID,
		}); err != nil {
			return err
		}
		if err := applyEffects(ctx, accounts, txdomain.EffectOf(typ, cents, src.ID, toAccountID)); err != nil {
			return err
		}
		out, err = txs.Get(ctx, id, userID)
		return err
	})
	if err != nil {
		log.Warn("Create transaction failed", "error", err)
		return nil, err
	}
	log.Info("Transaction created",
		"transactionID", id,
		"type", typ,
		"amount", money.MinorUnitsToString(cents),
	)
	return out, nil
}

// Update overlays in onto the stored transaction, re-validates the
// resulting state, then reverts the old effect, writes the row and applies
// the new effect in one unit of work.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in UpdateInput,
) (out *dto.TransactionRead, err error) {
	log := s.logger.With("userID", userID, "transactionID", id, "op", "update")

	var newType *txdomain.Type
	if in.Type != nil {
		t, err := txdomain.ParseType(*in.Type)
		if err != nil {
			return nil, err
		}
		newType = &t
	}
	var newAmount *money.Amount
	if in.Amount != nil {
		cents, err := money.ToMinorUnits(*in.Amount)
		if err != nil {
			return nil, err
		}
		if err := txdomain.ValidateAmount(cents); err != nil {
			return nil, err
		}
		newAmount = &cents
	}
	var newDescription *string
	if in.Description != nil {
		d, err := txdomain.NormalizeDescription(*in.Description)
		if err != nil {
			return nil, err
		}
		newDescription = &d
	}
	var newTags, newAttachments []string
	if in.Tags != nil {
		if newTags, err = txdomain.NormalizeTags(in.Tags); err != nil {
			return nil, err
		}
	}
	if in.Attachments != nil {
		if newAttachments, err = txdomain.ValidateAttachments(in.Attachments); err != nil {
			return nil, err
		}
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}

		existing, err := txs.GetForUpdate(ctx, id, userID)
		if err != nil {
			return err
		}

		next := dto.TransactionUpdate{
			AccountID:   existing.AccountID,
			Type:        existing.Type,
			AmountCents: existing.AmountCents,
			OccurredAt:  existing.OccurredAt,
			Description: existing.Description,
			Tags:        existing.Tags,
			Attachments: existing.Attachments,
			AIJobID:     existing.AIJobID,
		}
		if newType != nil {
			next.Type = string(*newType)
		}
		typ := txdomain.Type(next.Type)
		if in.AccountID != nil {
			next.AccountID = *in.AccountID
		}
		if typ == txdomain.Transfer {
			next.ToAccountID = existing.ToAccountID
			if in.ToAccountID != nil {
				next.ToAccountID = in.ToAccountID
			}
			if next.ToAccountID == nil {
				return domain.ErrTransferTargetRequired
			}
			if *next.ToAccountID == next.AccountID {
				return domain.ErrTransferSameAccount
			}
		}

		src, err := accounts.Get(ctx, next.AccountID, userID)
		if err != nil {
			return err
		}
		var dst *dto.AccountRead
		if next.ToAccountID != nil {
			if dst, err = accounts.Get(ctx, *next.ToAccountID, userID); err != nil {
				return err
			}
		}
		if err := s.checkArchived(existing, src, dst); err != nil {
			return err
		}

		switch {
		case in.CategoryID.Set:
			if in.CategoryID.Value != nil {
				if _, err := categorysvc.ResolveTyped(ctx, categories, userID, *in.CategoryID.Value, typ); err != nil {
					return err
				}
			}
			next.CategoryID = in.CategoryID.Value
		case existing.CategoryID != nil && typ != txdomain.Transfer:
			if _, err := categorysvc.ResolveTyped(ctx, categories, userID, *existing.CategoryID, typ); err != nil {
				return err
			}
			next.CategoryID = existing.CategoryID
		}

		if newAmount != nil {
			next.AmountCents = *newAmount
		}
		if in.OccurredAt != nil {
			next.OccurredAt = *in.OccurredAt
		}
		if newDescription != nil {
			next.Description = *newDescription
		}
		if newTags != nil {
			next.Tags = newTags
		}
		if newAttachments != nil {
			next.Attachments = newAttachments
		}
		if in.AIJobID != nil {
			next.AIJobID = in.AIJobID
		}

		old := txdomain.EffectOf(txdomain.Type(existing.Type), existing.AmountCents, existing.AccountID, existing.ToAccountID)
		if err := applyEffects(ctx, accounts, txdomain.Inverse(old)); err != nil {
			return err
		}
		if err := txs.Update(ctx, id, userID, next); err != nil {
			return err
		}
		updated, err := txs.Get(ctx, id, userID)
		if err != nil {
			return err
		}
		effects := txdomain.EffectOf(txdomain.Type(updated.Type), updated.AmountCents, updated.AccountID, updated.ToAccountID)
		if err := applyEffects(ctx, accounts, effects); err != nil {
			return err
		}
		out, err = txs.Get(ctx, id, userID)
		return err
	})
	if err != nil {
		log.Warn("Update transaction failed", "error", err)
		return nil, err
	}
	log.Info("Transaction updated", "type", out.Type, "amount", money.MinorUnitsToString(out.AmountCents))
	return out, nil
}

// Delete reverts the stored effect and removes the row atomically.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := s.logger.With("userID", userID, "transactionID", id, "op", "delete")
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		existing, err := txs.GetForUpdate(ctx, id, userID)
		if err != nil {
			return err
		}
		effects := txdomain.EffectOf(txdomain.Type(existing.Type), existing.AmountCents, existing.AccountID, existing.ToAccountID)
		if err := applyEffects(ctx, accounts, txdomain.Inverse(effects)); err != nil {
			return err
		}
		return txs.Delete(ctx, id, userID)
	})
	if err != nil {
		log.Warn("Delete transaction failed", "error", err)
		return err
	}
	log.Info("Transaction deleted")
	return nil
}

// Get returns the denormalized view of one of the user's transactions.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*dto.TransactionRead, error) {
	txs, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return txs.Get(ctx, id, userID)
}

// List returns one page of the user's transactions.
func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	q ListQuery,
) (dto.Page[*dto.TransactionRead], error) {
	filter, err := s.filterOf(userID, q)
	if err != nil {
		return dto.Page[*dto.TransactionRead]{}, err
	}
	txs, err := s.uow.TransactionRepository()
	if err != nil {
		return dto.Page[*dto.TransactionRead]{}, err
	}
	items, total, err := txs.List(ctx, filter)
	if err != nil {
		return dto.Page[*dto.TransactionRead]{}, err
	}
	return dto.NewPage(items, filter.Page, filter.PageSize, total), nil
}

func (s *Service) filterOf(userID uuid.UUID, q ListQuery) (dto.TransactionFilter, error) {
	f := dto.TransactionFilter{
		UserID:     userID,
		AccountID:  q.AccountID,
		CategoryID: q.CategoryID,
		From:       q.From,
		To:         q.To,
		Keyword:    q.Keyword,
		SortBy:     q.SortBy,
		Ascending:  q.Ascending,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
	if q.Type != "" {
		t, err := txdomain.ParseType(q.Type)
		if err != nil {
			return f, err
		}
		f.Type = string(t)
	}
	if utf8.RuneCountInString(q.Keyword) > txdomain.MaxKeywordLength {
		return f, domain.NewError(domain.KindValidation, domain.ErrValidation.Code,
			"keyword must be at most 50 characters")
	}
	switch f.SortBy {
	case "":
		f.SortBy = dto.SortByOccurredAt
	case dto.SortByOccurredAt, dto.SortByAmount:
	default:
		return f, domain.NewError(domain.KindValidation, domain.ErrValidation.Code,
			"sortBy must be occurredAt or amount")
	}
	if f.Page < 0 || f.PageSize < 0 {
		return f, domain.NewError(domain.KindValidation, domain.ErrValidation.Code,
			"page and pageSize must be positive")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.PageSize == 0 {
		f.PageSize = s.cfg.DefaultPageSize
	}
	if f.PageSize > s.cfg.MaxPageSize {
		f.PageSize = s.cfg.MaxPageSize
	}
	return f, nil
}

// checkArchived rejects archived accounts the transaction did not already
// reference. existing is nil on create.
func (s *Service) checkArchived(existing *dto.TransactionRead, accounts ...*dto.AccountRead) error {
	if s.cfg.AllowArchivedTargets {
		return nil
	}
	for _, acc := range accounts {
		if acc == nil || !acc.IsArchived {
			continue
		}
		if existing != nil && references(existing, acc.ID) {
			continue
		}
		return domain.ErrAccountArchived
	}
	return nil
}

func references(tx *dto.TransactionRead, accountID uuid.UUID) bool {
	return tx.AccountID == accountID || (tx.ToAccountID != nil && *tx.ToAccountID == accountID)
}

func applyEffects(ctx context.Context, accounts accountrepo.Repository, effects []txdomain.Effect) error {
	for _, e := range effects {
		if err := accounts.AdjustBalance(ctx, e.AccountID, e.Delta); err != nil {
			return err
		}
	}
	return nil
}
