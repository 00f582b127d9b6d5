// Package money converts between decimal currency amounts and integer
// minor units.
//
// Invariants:
//   - Amounts are stored as int64 minor units (cents); two decimal places.
//   - MinorUnitsToString and ParseMinorUnits round-trip exactly.
//   - Currency codes must be known ISO 4217 codes.
package money

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/shopspring/decimal"
)

// Amount represents a monetary amount in minor units.
type Amount = int64

const scale = 2

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// ToMinorUnits converts a decimal amount to minor units, rounding half away
// from zero. Non-finite or out-of-range input fails with ErrInvalidAmount.
func ToMinorUnits(amount float64) (Amount, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, domain.ErrInvalidAmount
	}
	return fromDecimal(decimal.NewFromFloat(amount))
}

// ParseMinorUnits parses a decimal string such as "-120.50" into minor units.
func ParseMinorUnits(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, domain.ErrInvalidAmount
	}
	return fromDecimal(d)
}

func fromDecimal(d decimal.Decimal) (Amount, error) {
	minor := d.Shift(scale).Round(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return 0, domain.ErrInvalidAmount
	}
	return minor.IntPart(), nil
}

// MinorUnitsToString renders minor units with exactly two decimals,
// e.g. -12050 becomes "-120.50".
func MinorUnitsToString(cents Amount) string {
	return decimal.New(cents, -scale).StringFixed(scale)
}

// NormalizeCurrency upper-cases and validates a currency code.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := ValidateCurrency(code); err != nil {
		return "", err
	}
	return code, nil
}

// ValidateCurrency checks that code is a known ISO 4217 currency.
func ValidateCurrency(code string) error {
	if len(code) != 3 || money.GetCurrency(code) == nil {
		return domain.ErrInvalidCurrency
	}
	return nil
}

// Format renders cents with the currency's symbol and grouping,
// e.g. 256075 CNY becomes "2,560.75 元". Unknown codes fall back to
// the plain decimal string followed by the code.
func Format(cents Amount, code string) string {
	if money.GetCurrency(code) == nil {
		return MinorUnitsToString(cents) + " " + code
	}
	return money.New(cents, code).Display()
}
