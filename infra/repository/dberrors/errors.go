// Package dberrors maps GORM errors to domain errors so store details stay
// inside the infrastructure layer.
package dberrors

import (
	"errors"

	"github.com/amirasaad/fintrack/pkg/domain"
	"gorm.io/gorm"
)

// Map converts GORM errors using entity specific domain errors. It walks
// the error chain because drivers wrap GORM's sentinels.
func Map(err error, notFound, duplicate *domain.Error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrValidation
	}
	return err
}
