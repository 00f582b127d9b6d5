package dto

import (
	"time"

	"github.com/google/uuid"
)

// Suggestion job states.
const (
	JobStatusPending   = "pending"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// JobKindTextParse marks a job that parsed free text into a suggestion.
const JobKindTextParse = "text_parse"

// Suggestion is a best-effort transaction draft inferred from free text.
// Nil fields could not be inferred.
type Suggestion struct {
	AmountCents *int64    `json:"amountCents"`
	Type        *string   `json:"type"`
	OccurredAt  time.Time `json:"occurredAt"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Confidence  float64   `json:"confidence"`
}

// SuggestionJob records one parse request and its outcome.
type SuggestionJob struct {
	ID         uuid.UUID   `json:"id"`
	UserID     uuid.UUID   `json:"userId"`
	Kind       string      `json:"kind"`
	Status     string      `json:"status"`
	Input      string      `json:"input"`
	Output     *Suggestion `json:"output"`
	Error      *string     `json:"error"`
	Confidence float64     `json:"confidence"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
