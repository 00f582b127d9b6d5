package account

import (
	"context"
	"time"

	"github.com/amirasaad/fintrack/infra/repository/dberrors"
	"github.com/amirasaad/fintrack/infra/repository/model"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	repo "github.com/amirasaad/fintrack/pkg/repository/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates a new account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements account.Repository.
func (r *repository) Create(ctx context.Context, create dto.AccountCreate) error {
	acct := mapCreateDTOToModel(create)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&acct).Error
	return dberrors.Map(err, domain.ErrAccountNotFound, domain.ErrAlreadyExists)
}

// Update implements account.Repository.
func (r *repository) Update(
	ctx context.Context,
	id, userID uuid.UUID,
	update dto.AccountUpdate,
) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		_, err := r.Get(ctx, id, userID)
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return dberrors.Map(res.Error, domain.ErrAccountNotFound, domain.ErrAlreadyExists)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// Get implements account.Repository.
func (r *repository) Get(ctx context.Context, id, userID uuid.UUID) (*dto.AccountRead, error) {
	var acct model.Account
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&acct).Error
	if err != nil {
		return nil, dberrors.Map(err, domain.ErrAccountNotFound, domain.ErrAlreadyExists)
	}
	return mapModelToDTO(&acct), nil
}

// ListByUser implements account.Repository.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	var accts []model.Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&accts).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.AccountRead, 0, len(accts))
	for i := range accts {
		result = append(result, mapModelToDTO(&accts[i]))
	}
	return result, nil
}

// AdjustBalance implements account.Repository. The increment happens in SQL
// so concurrent adjustments never overwrite each other.
func (r *repository) AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"balance_cents": gorm.Expr("balance_cents + ?", delta),
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// mapCreateDTOToModel maps AccountCreate DTO to GORM model.
func mapCreateDTOToModel(create dto.AccountCreate) model.Account {
	return model.Account{
		ID:                  create.ID,
		UserID:              create.UserID,
		Name:                create.Name,
		Type:                create.Type,
		Currency:            create.Currency,
		BalanceCents:        create.OpeningBalanceCents,
		OpeningBalanceCents: create.OpeningBalanceCents,
	}
}

// mapUpdateDTOToModel maps AccountUpdate DTO to a map for GORM updates.
func mapUpdateDTOToModel(update dto.AccountUpdate) map[string]any {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Type != nil {
		updates["type"] = *update.Type
	}
	if update.Currency != nil {
		updates["currency"] = *update.Currency
	}
	if update.IsArchived != nil {
		updates["is_archived"] = *update.IsArchived
	}
	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
	}
	return updates
}

// mapModelToDTO maps GORM model to AccountRead DTO.
func mapModelToDTO(acct *model.Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:                  acct.ID,
		UserID:              acct.UserID,
		Name:                acct.Name,
		Type:                acct.Type,
		Currency:            acct.Currency,
		BalanceCents:        acct.BalanceCents,
		OpeningBalanceCents: acct.OpeningBalanceCents,
		IsArchived:          acct.IsArchived,
		CreatedAt:           acct.CreatedAt,
		UpdatedAt:           acct.UpdatedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
