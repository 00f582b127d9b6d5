// Package transaction defines ledger entry types and the balance effects
// they produce.
//
// A transaction's effect depends only on its type, amount and accounts:
//
//	EXPENSE   source -amount
//	INCOME    source +amount
//	TRANSFER  source -amount, destination +amount
//
// Edits never compute a delta between old and new state. They revert the
// old effect and apply the new one, because a type change can change which
// accounts are involved.
package transaction

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/category"
	"github.com/amirasaad/fintrack/pkg/money"
	"github.com/google/uuid"
)

// Type is the kind of ledger entry.
type Type string

const (
	Expense  Type = "EXPENSE"
	Income   Type = "INCOME"
	Transfer Type = "TRANSFER"
)

// Input limits.
const (
	MaxDescriptionLength = 200
	MaxTags              = 10
	MaxAttachments       = 5
	MaxKeywordLength     = 50
)

var (
	ErrInvalidType = domain.NewError(domain.KindValidation, "VALIDATION_FAILED",
		"transaction type must be EXPENSE, INCOME or TRANSFER")
	ErrDescriptionTooLong = domain.NewError(domain.KindValidation, "VALIDATION_FAILED",
		"description must be at most 200 characters")
	ErrInvalidTags = domain.NewError(domain.KindValidation, "VALIDATION_FAILED",
		"at most 10 non-empty tags are allowed")
	ErrInvalidAttachments = domain.NewError(domain.KindValidation, "VALIDATION_FAILED",
		"at most 5 attachment URLs are allowed")
)

// ParseType validates s as a transaction type, ignoring case.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case Expense, Income, Transfer:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

// CategoryType returns the category type a transaction of type t must carry.
// Transfers carry no category.
func (t Type) CategoryType() (category.Type, bool) {
	switch t {
	case Expense:
		return category.Expense, true
	case Income:
		return category.Income, true
	default:
		return "", false
	}
}

// Effect is a signed balance change on one account.
type Effect struct {
	AccountID uuid.UUID
	Delta     money.Amount
}

// EffectOf returns the balance effects of a transaction. The destination is
// only consulted for transfers.
func EffectOf(t Type, amount money.Amount, accountID uuid.UUID, toAccountID *uuid.UUID) []Effect {
	switch t {
	case Expense:
		return []Effect{{AccountID: accountID, Delta: -amount}}
	case Income:
		return []Effect{{AccountID: accountID, Delta: amount}}
	case Transfer:
		effects := []Effect{{AccountID: accountID, Delta: -amount}}
		if toAccountID != nil {
			effects = append(effects, Effect{AccountID: *toAccountID, Delta: amount})
		}
		return effects
	default:
		return nil
	}
}

// Inverse negates every effect.
func Inverse(effects []Effect) []Effect {
	out := make([]Effect, len(effects))
	for i, e := range effects {
		out[i] = Effect{AccountID: e.AccountID, Delta: -e.Delta}
	}
	return out
}

// ValidateAmount rejects non-positive amounts.
func ValidateAmount(cents money.Amount) error {
	if cents <= 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}

// NormalizeDescription trims the description and checks its length.
func NormalizeDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return "", ErrDescriptionTooLong
	}
	return s, nil
}

// NormalizeTags trims tags and rejects empty ones. Order is kept.
func NormalizeTags(tags []string) ([]string, error) {
	if len(tags) > MaxTags {
		return nil, ErrInvalidTags
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return nil, ErrInvalidTags
		}
		out = append(out, tag)
	}
	return out, nil
}

// ValidateAttachments checks the count and that every entry is an absolute URL.
func ValidateAttachments(urls []string) ([]string, error) {
	if len(urls) > MaxAttachments {
		return nil, ErrInvalidAttachments
	}
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, ErrInvalidAttachments
		}
		out = append(out, raw)
	}
	return out, nil
}
