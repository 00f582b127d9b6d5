package transaction

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/money"
	"github.com/google/uuid"
)

// CreateTransactionRequest represents the request body for recording a transaction.
type CreateTransactionRequest struct {
	Type        string     `json:"type" validate:"required"`
	AccountID   string     `json:"accountId" validate:"required"`
	ToAccountID *string    `json:"toAccountId"`
	CategoryID  *string    `json:"categoryId"`
	Amount      *float64   `json:"amount" validate:"required"`
	OccurredAt  *time.Time `json:"occurredAt"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Attachments []string   `json:"attachments"`
	AIJobID     *string    `json:"aiJobId"`
}

// UpdateTransactionRequest is a partial update. categoryId distinguishes
// absent (keep) from null or "" (clear).
type UpdateTransactionRequest struct {
	Type        *string              `json:"type"`
	AccountID   *string              `json:"accountId"`
	ToAccountID *string              `json:"toAccountId"`
	CategoryID  dto.Optional[string] `json:"categoryId"`
	Amount      *float64             `json:"amount"`
	OccurredAt  *time.Time           `json:"occurredAt"`
	Description *string              `json:"description"`
	Tags        []string             `json:"tags"`
	Attachments []string             `json:"attachments"`
	AIJobID     *string              `json:"aiJobId"`
}

// ListQuery carries the query string of GET /transactions.
type ListQuery struct {
	Type       string `query:"type"`
	AccountID  string `query:"accountId"`
	CategoryID string `query:"categoryId"`
	From       string `query:"from"`
	To         string `query:"to"`
	Keyword    string `query:"keyword"`
	SortBy     string `query:"sortBy"`
	Order      string `query:"order"`
	Page       int    `query:"page"`
	PageSize   int    `query:"pageSize"`
}

type AccountRefResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Currency string    `json:"currency"`
}

type CategoryRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

// TransactionResponse is the denormalized public view of a transaction.
type TransactionResponse struct {
	ID          uuid.UUID            `json:"id"`
	Type        string               `json:"type"`
	Amount      string               `json:"amount"`
	AccountID   uuid.UUID            `json:"accountId"`
	ToAccountID *uuid.UUID           `json:"toAccountId"`
	CategoryID  *uuid.UUID           `json:"categoryId"`
	Account     AccountRefResponse   `json:"account"`
	ToAccount   *AccountRefResponse  `json:"toAccount"`
	Category    *CategoryRefResponse `json:"category"`
	OccurredAt  time.Time            `json:"occurredAt"`
	Description string               `json:"description"`
	Tags        []string             `json:"tags"`
	Attachments []string             `json:"attachments"`
	AIJobID     *string              `json:"aiJobId"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// PageResponse is one page of transactions.
type PageResponse struct {
	Items      []TransactionResponse `json:"items"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalItems int64                 `json:"totalItems"`
	TotalPages int                   `json:"totalPages"`
}

func toAccountRef(a dto.AccountRef) AccountRefResponse {
	return AccountRefResponse{ID: a.ID, Name: a.Name, Type: a.Type, Currency: a.Currency}
}

// ToTransactionResponse maps a transaction DTO to its public view.
func ToTransactionResponse(tx *dto.TransactionRead) TransactionResponse {
	resp := TransactionResponse{
		ID:          tx.ID,
		Type:        tx.Type,
		Amount:      money.MinorUnitsToString(tx.AmountCents),
		AccountID:   tx.AccountID,
		ToAccountID: tx.ToAccountID,
		CategoryID:  tx.CategoryID,
		Account:     toAccountRef(tx.Account),
		OccurredAt:  tx.OccurredAt,
		Description: tx.Description,
		Tags:        tx.Tags,
		Attachments: tx.Attachments,
		AIJobID:     tx.AIJobID,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if resp.Attachments == nil {
		resp.Attachments = []string{}
	}
	if tx.ToAccount != nil {
		ref := toAccountRef(*tx.ToAccount)
		resp.ToAccount = &ref
	}
	if tx.Category != nil {
		resp.Category = &CategoryRefResponse{ID: tx.Category.ID, Name: tx.Category.Name, Type: tx.Category.Type}
	}
	return resp
}

func toPageResponse(p dto.Page[*dto.TransactionRead]) PageResponse {
	items := make([]TransactionResponse, 0, len(p.Items))
	for _, tx := range p.Items {
		items = append(items, ToTransactionResponse(tx))
	}
	return PageResponse{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}
