package domain

import "errors"

// Kind classifies a domain error so outer layers can map it without
// inspecting individual sentinels.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindAuth       Kind = "auth"
	KindInternal   Kind = "internal"
)

// Error is a business error with a stable machine-readable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError creates a new domain error.
func NewError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Validation errors
var (
	// ErrInvalidAmount is returned when an amount is not a finite positive number.
	ErrInvalidAmount = NewError(KindValidation, "INVALID_AMOUNT", "amount must be a finite number greater than zero")
	// ErrInvalidCurrency is returned when a currency code is not a known ISO 4217 code.
	ErrInvalidCurrency = NewError(KindValidation, "INVALID_CURRENCY", "currency must be a known 3-letter ISO 4217 code")
	// ErrValidation is returned when input validation fails.
	ErrValidation = NewError(KindValidation, "VALIDATION_FAILED", "validation failed")
	// ErrCategoryTypeMismatch is returned when a category type differs from the transaction type.
	ErrCategoryTypeMismatch = NewError(KindValidation, "CATEGORY_TYPE_MISMATCH", "category type does not match transaction type")
	// ErrTransferCategoryNotAllowed is returned when a transfer carries a category.
	ErrTransferCategoryNotAllowed = NewError(KindValidation, "TRANSFER_CATEGORY_NOT_ALLOWED", "transfers cannot have a category")
	// ErrTransferTargetRequired is returned when a transfer has no destination account.
	ErrTransferTargetRequired = NewError(KindValidation, "TRANSFER_TARGET_REQUIRED", "transfers require a destination account")
)

// Not found errors
var (
	ErrNotFound            = NewError(KindNotFound, "NOT_FOUND", "resource not found")
	ErrAccountNotFound     = NewError(KindNotFound, "ACCOUNT_NOT_FOUND", "account not found")
	ErrCategoryNotFound    = NewError(KindNotFound, "CATEGORY_NOT_FOUND", "category not found")
	ErrTransactionNotFound = NewError(KindNotFound, "TRANSACTION_NOT_FOUND", "transaction not found")
	ErrUserNotFound        = NewError(KindNotFound, "USER_NOT_FOUND", "user not found")
)

// Conflict errors
var (
	ErrAlreadyExists = NewError(KindConflict, "ALREADY_EXISTS", "resource already exists")
	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = NewError(KindConflict, "EMAIL_TAKEN", "email is already registered")
	// ErrCategoryExists is returned when a category with the same name and type exists.
	ErrCategoryExists = NewError(KindConflict, "CATEGORY_EXISTS", "category with this name and type already exists")
	// ErrTransferSameAccount is returned when a transfer's source and destination are equal.
	ErrTransferSameAccount = NewError(KindConflict, "TRANSFER_SAME_ACCOUNT", "source and destination accounts must differ")
	// ErrAccountArchived is returned when a new transaction targets an archived account.
	ErrAccountArchived = NewError(KindConflict, "ACCOUNT_ARCHIVED", "archived accounts cannot receive new transactions")
)

// Authentication errors
var (
	ErrUnauthorized        = NewError(KindAuth, "UNAUTHORIZED", "authentication required")
	ErrInvalidCredentials  = NewError(KindAuth, "INVALID_CREDENTIALS", "invalid email or password")
	ErrInvalidAccessToken  = NewError(KindAuth, "INVALID_ACCESS_TOKEN", "access token is invalid or expired")
	ErrInvalidRefreshToken = NewError(KindAuth, "INVALID_REFRESH_TOKEN", "refresh token is invalid")
	ErrRefreshTokenRevoked = NewError(KindAuth, "REFRESH_TOKEN_REVOKED", "refresh token has been revoked")
	ErrRefreshTokenExpired = NewError(KindAuth, "REFRESH_TOKEN_EXPIRED", "refresh token has expired")
)

// ErrInternal is returned for unexpected failures.
var ErrInternal = NewError(KindInternal, "INTERNAL_ERROR", "internal server error")

// AsError extracts the domain error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal when err is not a domain error.
func KindOf(err error) Kind {
	if de, ok := AsError(err); ok {
		return de.Kind
	}
	return KindInternal
}
