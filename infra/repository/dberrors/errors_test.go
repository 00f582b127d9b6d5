package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMap(t *testing.T) {
	other := errors.New("connection reset")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"not found", gorm.ErrRecordNotFound, domain.ErrNotFound},
		{"wrapped not found", fmt.Errorf("query: %w", gorm.ErrRecordNotFound), domain.ErrNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, domain.ErrAlreadyExists},
		{"foreign key", gorm.ErrForeignKeyViolated, domain.ErrValidation},
		{"unmapped", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Map(tt.in, domain.ErrNotFound, domain.ErrAlreadyExists))
		})
	}
}

func TestMap_EntitySpecific(t *testing.T) {
	assert.Equal(t, domain.ErrAccountNotFound,
		Map(gorm.ErrRecordNotFound, domain.ErrAccountNotFound, domain.ErrAlreadyExists))
	assert.Equal(t, domain.ErrEmailTaken,
		Map(gorm.ErrDuplicatedKey, domain.ErrUserNotFound, domain.ErrEmailTaken))
}
