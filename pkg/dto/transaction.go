package dto

import (
	"time"

	"github.com/google/uuid"
)

// TransactionRead is the denormalized transaction view joining the related
// accounts and category.
type TransactionRead struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	ToAccountID *uuid.UUID
	CategoryID  *uuid.UUID
	Type        string
	AmountCents int64 // Always positive; direction comes from Type
	OccurredAt  time.Time
	Description string
	Tags        []string
	Attachments []string
	AIJobID     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Account   AccountRef
	ToAccount *AccountRef
	Category  *CategoryRef
}

// TransactionCreate is a DTO for persisting a new transaction row.
type TransactionCreate struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	ToAccountID *uuid.UUID
	CategoryID  *uuid.UUID
	Type        string
	AmountCents int64
	OccurredAt  time.Time
	Description string
	Tags        []string
	Attachments []string
	AIJobID     *string
}

// TransactionUpdate carries the complete post-update state of a transaction.
// Every field is written, including nil ones.
type TransactionUpdate struct {
	AccountID   uuid.UUID
	ToAccountID *uuid.UUID
	CategoryID  *uuid.UUID
	Type        string
	AmountCents int64
	OccurredAt  time.Time
	Description string
	Tags        []string
	Attachments []string
	AIJobID     *string
}

// Sort columns for transaction listings.
const (
	SortByOccurredAt = "occurredAt"
	SortByAmount     = "amount"
)

// TransactionFilter selects, orders and paginates a user's transactions.
// Set filters combine with AND.
type TransactionFilter struct {
	UserID     uuid.UUID
	Type       string
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Keyword    string // Substring of description or AI job id
	SortBy     string
	Ascending  bool
	Page       int // 1-based
	PageSize   int
}

// Page is one page of results.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int64
	TotalPages int
}

// NewPage builds a page, computing TotalPages as ceil(total/pageSize), or 0
// when there are no items.
func NewPage[T any](items []T, page, pageSize int, total int64) Page[T] {
	totalPages := 0
	if total > 0 && pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: page, PageSize: pageSize, TotalItems: total, TotalPages: totalPages}
}
