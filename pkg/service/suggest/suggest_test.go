package suggest_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/service/suggest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		amount     *int64
		typ        *string
		occurredAt time.Time
		tags       []string
	}{
		{
			name:       "chinese expense with date",
			text:       "2024年5月3日 午餐消费 35.5",
			amount:     ptr(int64(3550)),
			typ:        ptr("EXPENSE"),
			occurredAt: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
			tags:       []string{"餐饮"},
		},
		{
			name:       "income with thousands separator",
			text:       "工资收入 12,000",
			amount:     ptr(int64(1200000)),
			typ:        ptr("INCOME"),
			occurredAt: now,
			tags:       []string{"工资"},
		},
		{
			name:       "negative amount implies expense",
			text:       "taxi -23",
			amount:     ptr(int64(2300)),
			typ:        ptr("EXPENSE"),
			occurredAt: now,
			tags:       []string{"交通"},
		},
		{
			name:       "last number wins",
			text:       "2 coffees for 9.80",
			amount:     ptr(int64(980)),
			occurredAt: now,
			tags:       []string{},
		},
		{
			name:       "iso date is not the amount",
			text:       "超市 88 2024-05-01",
			amount:     ptr(int64(8800)),
			occurredAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			tags:       []string{"超市"},
		},
		{
			name:       "nothing to infer",
			text:       "hello",
			occurredAt: now,
			tags:       []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suggest.Parse(tt.text, now)
			assert.Equal(t, tt.amount, got.AmountCents)
			assert.Equal(t, tt.typ, got.Type)
			assert.True(t, tt.occurredAt.Equal(got.OccurredAt), "occurredAt %s", got.OccurredAt)
			assert.Equal(t, tt.tags, got.Tags)
			assert.Equal(t, tt.text, got.Description)
			if tt.amount != nil {
				assert.Equal(t, suggest.ConfidenceWithAmount, got.Confidence)
			} else {
				assert.Equal(t, suggest.ConfidenceWithoutAmount, got.Confidence)
			}
		})
	}
}

func TestService_ParseAndJobs(t *testing.T) {
	svc := suggest.New(suggest.NewMemoryStore(), slog.Default())
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	first, err := svc.Parse(ctx, alice, "  lunch 12  ")
	require.NoError(t, err)
	assert.Equal(t, dto.JobStatusCompleted, first.Status)
	assert.Equal(t, dto.JobKindTextParse, first.Kind)
	assert.Equal(t, "lunch 12", first.Input)
	require.NotNil(t, first.Output)
	assert.Equal(t, first.Confidence, first.Output.Confidence)

	second, err := svc.Parse(ctx, alice, "dinner 30")
	require.NoError(t, err)
	_, err = svc.Parse(ctx, bob, "salary 100")
	require.NoError(t, err)

	jobs, err := svc.Jobs(ctx, alice)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, second.ID, jobs[0].ID, "newest first")
	assert.Equal(t, first.ID, jobs[1].ID)

	_, err = svc.Parse(ctx, alice, "   ")
	assert.ErrorIs(t, err, suggest.ErrEmptyText)
}

func TestMemoryStore_Caps(t *testing.T) {
	store := suggest.NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()
	for i := 0; i < suggest.MaxJobsPerUser+5; i++ {
		require.NoError(t, store.Save(ctx, &dto.SuggestionJob{ID: uuid.New(), UserID: userID}))
	}
	jobs, err := store.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, jobs, suggest.MaxJobsPerUser)
}

type failingStore struct{ suggest.Store }

func (failingStore) Save(context.Context, *dto.SuggestionJob) error { return errors.New("unavailable") }

func TestService_StoreError(t *testing.T) {
	svc := suggest.New(failingStore{}, slog.Default())
	_, err := svc.Parse(context.Background(), uuid.New(), "lunch 12")
	assert.EqualError(t, err, "unavailable")
}

func ptr[T any](v T) *T { return &v }
