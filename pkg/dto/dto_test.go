package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		pageSize int
		want     int
	}{
		{"empty", 0, 20, 0},
		{"exact", 40, 20, 2},
		{"remainder", 41, 20, 3},
		{"single per page", 3, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := dto.NewPage[int](nil, 1, tt.pageSize, tt.total)
			assert.Equal(t, tt.want, p.TotalPages)
			assert.NotNil(t, p.Items)
		})
	}
}

func TestAccountAudit_Consistent(t *testing.T) {
	assert.True(t, dto.AccountAudit{}.Consistent())
	assert.False(t, dto.AccountAudit{DriftCents: 1}.Consistent())
}

func TestOptional_UnmarshalJSON(t *testing.T) {
	var in struct {
		CategoryID dto.Optional[string] `json:"categoryId"`
		Note       dto.Optional[string] `json:"note"`
		Other      dto.Optional[string] `json:"other"`
	}
	err := json.Unmarshal([]byte(`{"categoryId":null,"note":"x"}`), &in)
	require.NoError(t, err)

	assert.True(t, in.CategoryID.Set)
	assert.Nil(t, in.CategoryID.Value)
	assert.True(t, in.Note.Set)
	require.NotNil(t, in.Note.Value)
	assert.Equal(t, "x", *in.Note.Value)
	assert.False(t, in.Other.Set)

	out, err := json.Marshal(dto.Some(3))
	require.NoError(t, err)
	assert.Equal(t, "3", string(out))
	out, err = json.Marshal(dto.Null[int]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
