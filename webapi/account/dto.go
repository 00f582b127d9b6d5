package account

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/money"
	"github.com/google/uuid"
)

// CreateAccountRequest represents the request body for creating a new account.
type CreateAccountRequest struct {
	Name           string  `json:"name" validate:"required,max=50"`
	Type           string  `json:"type"`
	Currency       string  `json:"currency"`
	InitialBalance float64 `json:"initialBalance"`
}

// UpdateAccountRequest is a partial update. Omitted fields are kept.
type UpdateAccountRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=50"`
	Type       *string `json:"type"`
	Currency   *string `json:"currency"`
	IsArchived *bool   `json:"isArchived"`
}

// AccountResponse is the public view of an account. Amounts are decimal strings.
type AccountResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Currency         string    `json:"currency"`
	Balance          string    `json:"balance"`
	BalanceFormatted string    `json:"balanceFormatted"`
	OpeningBalance   string    `json:"openingBalance"`
	IsArchived       bool      `json:"isArchived"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// AuditResponse reports whether the stored balance matches the history.
type AuditResponse struct {
	AccountID        uuid.UUID `json:"accountId"`
	OpeningBalance   string    `json:"openingBalance"`
	Effects          string    `json:"effects"`
	Expected         string    `json:"expected"`
	Balance          string    `json:"balance"`
	Drift            string    `json:"drift"`
	TransactionCount int64     `json:"transactionCount"`
	Consistent       bool      `json:"consistent"`
}

// ToAccountResponse maps an account DTO to its public view.
func ToAccountResponse(a *dto.AccountRead) AccountResponse {
	return AccountResponse{
		ID:               a.ID,
		Name:             a.Name,
		Type:             a.Type,
		Currency:         a.Currency,
		Balance:          money.MinorUnitsToString(a.BalanceCents),
		BalanceFormatted: money.Format(a.BalanceCents, a.Currency),
		OpeningBalance:   money.MinorUnitsToString(a.OpeningBalanceCents),
		IsArchived:       a.IsArchived,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func toAuditResponse(a *dto.AccountAudit) AuditResponse {
	return AuditResponse{
		AccountID:        a.AccountID,
		OpeningBalance:   money.MinorUnitsToString(a.OpeningBalanceCents),
		Effects:          money.MinorUnitsToString(a.EffectsCents),
		Expected:         money.MinorUnitsToString(a.ExpectedCents),
		Balance:          money.MinorUnitsToString(a.BalanceCents),
		Drift:            money.MinorUnitsToString(a.DriftCents),
		TransactionCount: a.TransactionCount,
		Consistent:       a.Consistent(),
	}
}
