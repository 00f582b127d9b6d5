package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/infra/repository/dberrors"
	"github.com/amirasaad/fintrack/infra/repository/model"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	repo "github.com/amirasaad/fintrack/pkg/repository/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var sortColumns = map[string]string{
	dto.SortByOccurredAt: "occurred_at",
	dto.SortByAmount:     "amount_cents",
}

type repository struct {
	db *gorm.DB
}

// New creates a new transaction repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.TransactionCreate) error {
	tx := model.Transaction{
		ID:          create.ID,
		UserID:      create.UserID,
		AccountID:   create.AccountID,
		ToAccountID: create.ToAccountID,
		CategoryID:  create.CategoryID,
		Type:        create.Type,
		AmountCents: create.AmountCents,
		OccurredAt:  create.OccurredAt.UTC(),
		Description: create.Description,
		Tags:        model.StringList(create.Tags),
		Attachments: model.StringList(create.Attachments),
		AIJobID:     create.AIJobID,
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&tx).Error
	return dberrors.Map(err, domain.ErrTransactionNotFound, domain.ErrAlreadyExists)
}

func (r *repository) Update(
	ctx context.Context,
	id, userID uuid.UUID,
	update dto.TransactionUpdate,
) error {
	res := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"account_id":    update.AccountID,
			"to_account_id": update.ToAccountID,
			"category_id":   update.CategoryID,
			"type":          update.Type,
			"amount_cents":  update.AmountCents,
			"occurred_at":   update.OccurredAt.UTC(),
			"description":   update.Description,
			"tags":          model.StringList(update.Tags),
			"attachments":   model.StringList(update.Attachments),
			"ai_job_id":     update.AIJobID,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return dberrors.Map(res.Error, domain.ErrTransactionNotFound, domain.ErrAlreadyExists)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id, userID uuid.UUID) (*dto.TransactionRead, error) {
	var tx model.Transaction
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tx).Error
	if err != nil {
		return nil, dberrors.Map(err, domain.ErrTransactionNotFound, domain.ErrAlreadyExists)
	}
	return mapModelToDTO(&tx), nil
}

// GetForUpdate implements transaction.Repository. The lock is taken on the
// bare row because Postgres rejects FOR UPDATE next to outer joins; the
// relations are then loaded by Get. SQLite drops the locking clause and
// serializes writers instead.
func (r *repository) GetForUpdate(ctx context.Context, id, userID uuid.UUID) (*dto.TransactionRead, error) {
	var locked model.Transaction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ? AND user_id = ?", id, userID).
		Take(&locked).Error
	if err != nil {
		return nil, dberrors.Map(err, domain.ErrTransactionNotFound, domain.ErrAlreadyExists)
	}
	return r.Get(ctx, id, userID)
}

func (r *repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Transaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *repository) List(
	ctx context.Context,
	f dto.TransactionFilter,
) ([]*dto.TransactionRead, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{}).Where("user_id = ?", f.UserID)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.AccountID != nil {
		q = q.Where("(account_id = ? OR to_account_id = ?)", *f.AccountID, *f.AccountID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.From != nil {
		q = q.Where("occurred_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("occurred_at <= ?", f.To.UTC())
	}
	if f.Keyword != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Keyword)) + "%"
		q = q.Where(
			`(LOWER(description) LIKE ? ESCAPE '\' OR LOWER(COALESCE(ai_job_id, '')) LIKE ? ESCAPE '\')`,
			pattern, pattern,
		)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = sortColumns[dto.SortByOccurredAt]
	}
	desc := !f.Ascending

	var rows []model.Transaction
	err := r.withRelations(q).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc}).
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	result := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, total, nil
}

// SumEffects implements transaction.Repository.
func (r *repository) SumEffects(ctx context.Context, accountID uuid.UUID) (int64, int64, error) {
	var out struct {
		Total int64
		Count int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(CASE
				WHEN account_id = @id AND type = 'INCOME' THEN amount_cents
				WHEN account_id = @id THEN -amount_cents
				WHEN to_account_id = @id AND type = 'TRANSFER' THEN amount_cents
				ELSE 0
			END), 0) AS total,
			COUNT(*) AS count
		FROM transactions
		WHERE account_id = @id OR to_account_id = @id`,
		map[string]any{"id": accountID},
	).Scan(&out).Error
	if err != nil {
		return 0, 0, err
	}
	return out.Total, out.Count, nil
}

func (r *repository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Account").Preload("ToAccount").Preload("Category")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func mapModelToDTO(tx *model.Transaction) *dto.TransactionRead {
	out := &dto.TransactionRead{
		ID:          tx.ID,
		UserID:      tx.UserID,
		AccountID:   tx.AccountID,
		ToAccountID: tx.ToAccountID,
		CategoryID:  tx.CategoryID,
		Type:        tx.Type,
		AmountCents: tx.AmountCents,
		OccurredAt:  tx.OccurredAt,
		Description: tx.Description,
		Tags:        nonNil(tx.Tags),
		Attachments: nonNil(tx.Attachments),
		AIJobID:     tx.AIJobID,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
		Account: dto.AccountRef{
			ID:       tx.Account.ID,
			Name:     tx.Account.Name,
			Type:     tx.Account.Type,
			Currency: tx.Account.Currency,
		},
	}
	if tx.ToAccount != nil {
		out.ToAccount = &dto.AccountRef{
			ID:       tx.ToAccount.ID,
			Name:     tx.ToAccount.Name,
			Type:     tx.ToAccount.Type,
			Currency: tx.ToAccount.Currency,
		}
	}
	if tx.Category != nil {
		out.Category = &dto.CategoryRef{
			ID:   tx.Category.ID,
			Name: tx.Category.Name,
			Type: tx.Category.Type,
		}
	}
	return out
}

func nonNil(l model.StringList) []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}

var _ repo.Repository = (*repository)(nil)
