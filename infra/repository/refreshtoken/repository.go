package refreshtoken

import (
	"context"
	"time"

	"github.com/amirasaad/fintrack/infra/repository/dberrors"
	"github.com/amirasaad/fintrack/infra/repository/model"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	repo "github.com/amirasaad/fintrack/pkg/repository/refreshtoken"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates a new refresh token repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.RefreshTokenCreate) error {
	rt := model.RefreshToken{
		ID:        create.ID,
		UserID:    create.UserID,
		TokenHash: create.TokenHash,
		IssuedAt:  create.IssuedAt.UTC(),
		ExpiresAt: create.ExpiresAt.UTC(),
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&rt).Error
}

func (r *repository) Get(ctx context.Context, id, userID uuid.UUID) (*dto.RefreshTokenRead, error) {
	var rt model.RefreshToken
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rt).Error
	if err != nil {
		return nil, dberrors.Map(err, domain.ErrInvalidRefreshToken, domain.ErrAlreadyExists)
	}
	return &dto.RefreshTokenRead{
		ID:            rt.ID,
		UserID:        rt.UserID,
		TokenHash:     rt.TokenHash,
		IssuedAt:      rt.IssuedAt,
		ExpiresAt:     rt.ExpiresAt,
		RevokedAt:     rt.RevokedAt,
		RevokedReason: rt.RevokedReason,
	}, nil
}

// Revoke implements refreshtoken.Repository. The revoked_at guard makes
// concurrent redemptions of the same token succeed at most once.
func (r *repository) Revoke(ctx context.Context, id uuid.UUID, reason string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Updates(map[string]any{"revoked_at": at.UTC(), "revoked_reason": reason})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

var _ repo.Repository = (*repository)(nil)
