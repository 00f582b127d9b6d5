// Package suggest turns free text into transaction drafts. It is a
// heuristic helper with no correctness contract: the user reviews every
// suggestion before it becomes a transaction.
package suggest

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// MaxJobsPerUser caps how many jobs a store keeps per user.
const MaxJobsPerUser = 100

var ErrEmptyText = domain.NewError(domain.KindValidation, "VALIDATION_FAILED", "text is required")

// Store persists suggestion jobs per user.
type Store interface {
	Save(ctx context.Context, job *dto.SuggestionJob) error
	// ListByUser returns the user's jobs, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.SuggestionJob, error)
}

type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// New creates a suggestion Service backed by store.
func New(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// Parse infers a draft from text and records a completed job for it.
func (s *Service) Parse(ctx context.Context, userID uuid.UUID, text string) (*dto.SuggestionJob, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	now := s.now().UTC()
	suggestion := Parse(text, now)
	job := &dto.SuggestionJob{
		ID:         uuid.New(),
		UserID:     userID,
		Kind:       dto.JobKindTextParse,
		Status:     dto.JobStatusCompleted,
		Input:      text,
		Output:     suggestion,
		Confidence: suggestion.Confidence,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Save(ctx, job); err != nil {
		s.logger.Error("Save suggestion job failed", "userID", userID, "error", err)
		return nil, err
	}
	s.logger.Debug("Suggestion parsed", "userID", userID, "jobID", job.ID, "confidence", job.Confidence)
	return job, nil
}

// Jobs lists the user's suggestion jobs, newest first.
func (s *Service) Jobs(ctx context.Context, userID uuid.UUID) ([]*dto.SuggestionJob, error) {
	return s.store.ListByUser(ctx, userID)
}

// MemoryStore is a process-local Store. Jobs are lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID][]*dto.SuggestionJob
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[uuid.UUID][]*dto.SuggestionJob)}
}

func (m *MemoryStore) Save(_ context.Context, job *dto.SuggestionJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := append([]*dto.SuggestionJob{job}, m.jobs[job.UserID]...)
	if len(list) > MaxJobsPerUser {
		list = list[:MaxJobsPerUser]
	}
	m.jobs[job.UserID] = list
	return nil
}

func (m *MemoryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*dto.SuggestionJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*dto.SuggestionJob, len(m.jobs[userID]))
	copy(out, m.jobs[userID])
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
