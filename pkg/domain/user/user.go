package user

import (
	"strings"
	"unicode/utf8"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/utils"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 8

var (
	ErrInvalidEmail = domain.NewError(domain.KindValidation, "VALIDATION_FAILED", "email is not valid")
	ErrInvalidName  = domain.NewError(domain.KindValidation, "VALIDATION_FAILED", "name is required")
	ErrWeakPassword = domain.NewError(domain.KindValidation, "VALIDATION_FAILED", "password must be at least 8 characters")
)

// NormalizeEmail trims the address and validates it. Case is preserved;
// lookups are exact matches.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if !utils.IsEmail(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NormalizeName trims and checks a display name.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > 100 {
		return "", ErrInvalidName
	}
	return name, nil
}

// ValidatePassword checks password strength.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
