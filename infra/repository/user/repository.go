package user

import (
	"context"
	"time"

	"github.com/amirasaad/fintrack/infra/repository/dberrors"
	"github.com/amirasaad/fintrack/infra/repository/model"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a new user repository.
func New(db *gorm.DB) user.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create dto.UserCreate,
) error {
	u := &model.User{
		ID:           create.ID,
		Email:        create.Email,
		Name:         create.Name,
		PasswordHash: create.HashedPassword,
	}
	err := r.db.WithContext(ctx).Create(u).Error
	return dberrors.Map(err, domain.ErrUserNotFound, domain.ErrEmailTaken)
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	uu dto.UserUpdate,
) error {
	updates := make(map[string]any)
	if uu.Name != nil {
		updates["name"] = *uu.Name
	}
	if len(updates) == 0 {
		_, err := r.Get(ctx, id)
		return err
	}
	updates["updated_at"] = time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.UserRead, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, dberrors.Map(err, domain.ErrUserNotFound, domain.ErrEmailTaken)
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.UserRead, error) {
	var u model.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, dberrors.Map(err, domain.ErrUserNotFound, domain.ErrEmailTaken)
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func mapModelToDTO(u *model.User) *dto.UserRead {
	return &dto.UserRead{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		HashedPassword: u.PasswordHash,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

var _ user.Repository = (*repository)(nil)
