package category

import (
	"context"
	"time"

	"github.com/amirasaad/fintrack/infra/repository/dberrors"
	"github.com/amirasaad/fintrack/infra/repository/model"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	repo "github.com/amirasaad/fintrack/pkg/repository/category"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates a new category repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.CategoryCreate) error {
	c := model.Category{
		ID:     create.ID,
		UserID: create.UserID,
		Name:   create.Name,
		Type:   create.Type,
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&c).Error
	return dberrors.Map(err, domain.ErrCategoryNotFound, domain.ErrCategoryExists)
}

func (r *repository) Update(
	ctx context.Context,
	id, userID uuid.UUID,
	update dto.CategoryUpdate,
) error {
	if update.Name == nil {
		_, err := r.Get(ctx, id, userID)
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"name": *update.Name, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return dberrors.Map(res.Error, domain.ErrCategoryNotFound, domain.ErrCategoryExists)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id, userID uuid.UUID) (*dto.CategoryRead, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&c).Error
	if err != nil {
		return nil, dberrors.Map(err, domain.ErrCategoryNotFound, domain.ErrCategoryExists)
	}
	return mapModelToDTO(&c), nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.CategoryRead, error) {
	var cats []model.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("type ASC").
		Order("name ASC").
		Find(&cats).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.CategoryRead, 0, len(cats))
	for i := range cats {
		result = append(result, mapModelToDTO(&cats[i]))
	}
	return result, nil
}

// Delete implements category.Repository. Referencing transactions are
// detached before the row is removed.
func (r *repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Transaction{}).
		Where("category_id = ? AND user_id = ?", id, userID).
		Update("category_id", nil).Error; err != nil {
		return err
	}
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func mapModelToDTO(c *model.Category) *dto.CategoryRead {
	return &dto.CategoryRead{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
