// Package category defines the user-scoped income and expense taxonomy.
package category

import (
	"strings"
	"unicode/utf8"

	"github.com/amirasaad/fintrack/pkg/domain"
)

// Type is the direction of money a category classifies.
type Type string

const (
	Expense Type = "EXPENSE"
	Income  Type = "INCOME"
)

// MaxNameLength is the maximum number of characters in a category name.
const MaxNameLength = 50

var (
	ErrInvalidType = domain.NewError(domain.KindValidation, "VALIDATION_FAILED",
		"category type must be EXPENSE or INCOME")
	ErrInvalidName = domain.NewError(domain.KindValidation, "VALIDATION_FAILED",
		"category name must be between 1 and 50 characters")
)

// ParseType validates s as a category type, ignoring case.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case Expense, Income:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

// NormalizeName trims name and checks its length.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n == 0 || n > MaxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

// Seed is a category created for every new user.
type Seed struct {
	Name string
	Type Type
}

// Starter is the category set seeded at registration.
var Starter = []Seed{
	{Name: "Dining", Type: Expense},
	{Name: "Transport", Type: Expense},
	{Name: "Shopping", Type: Expense},
	{Name: "Salary", Type: Income},
	{Name: "Bonus", Type: Income},
}
