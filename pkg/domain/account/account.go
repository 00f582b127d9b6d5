// Package account holds the account aggregate and its construction rules.
package account

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/money"
	"github.com/google/uuid"
)

// Type is the kind of monetary container an account represents.
type Type string

const (
	Cash       Type = "CASH"
	Bank       Type = "BANK"
	Credit     Type = "CREDIT"
	EWallet    Type = "E_WALLET"
	Investment Type = "INVESTMENT"
	Other      Type = "OTHER"
)

// MaxNameLength is the maximum number of characters in an account name.
const MaxNameLength = 50

var (
	// ErrInvalidType is returned when an account type is not one of the known types.
	ErrInvalidType = domain.NewError(domain.KindValidation, "VALIDATION_FAILED",
		"account type must be one of CASH, BANK, CREDIT, E_WALLET, INVESTMENT, OTHER")
	// ErrInvalidName is returned when an account name is empty or too long.
	ErrInvalidName = domain.NewError(domain.KindValidation, "VALIDATION_FAILED",
		"account name must be between 1 and 50 characters")
)

var types = map[Type]struct{}{
	Cash: {}, Bank: {}, Credit: {}, EWallet: {}, Investment: {}, Other: {},
}

// ParseType validates s as an account type. An empty string yields Other.
func ParseType(s string) (Type, error) {
	if s == "" {
		return Other, nil
	}
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := types[t]; !ok {
		return "", ErrInvalidType
	}
	return t, nil
}

// NormalizeName trims name and checks its length.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n == 0 || n > MaxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

// Account is a monetary container owned by a user.
//
// Invariants:
//   - Balance equals OpeningBalance plus the signed effects of every live
//     transaction referencing the account.
//   - Archived accounts keep their history.
type Account struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Type           Type
	Currency       string
	Balance        money.Amount
	OpeningBalance money.Amount
	IsArchived     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Builder provides a fluent API for constructing valid accounts.
type Builder struct {
	userID   uuid.UUID
	name     string
	typ      string
	currency string
	opening  money.Amount
}

// New creates a new Builder.
func New() *Builder {
	return &Builder{}
}

// WithUserID sets the owner. This is a mandatory field.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

func (b *Builder) WithType(t string) *Builder {
	b.typ = t
	return b
}

func (b *Builder) WithCurrency(code string) *Builder {
	b.currency = code
	return b
}

// WithOpeningBalance sets the initial balance in minor units. It may be negative.
func (b *Builder) WithOpeningBalance(cents money.Amount) *Builder {
	b.opening = cents
	return b
}

// Build validates the collected fields and returns the account.
func (b *Builder) Build() (*Account, error) {
	if b.userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	name, err := NormalizeName(b.name)
	if err != nil {
		return nil, err
	}
	typ, err := ParseType(b.typ)
	if err != nil {
		return nil, err
	}
	currency, err := money.NormalizeCurrency(b.currency)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Account{
		ID:             uuid.New(),
		UserID:         b.userID,
		Name:           name,
		Type:           typ,
		Currency:       currency,
		Balance:        b.opening,
		OpeningBalance: b.opening,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
