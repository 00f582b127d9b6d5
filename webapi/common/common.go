// Package common holds the response envelope, problem details rendering
// and request binding shared by every handler package.
package common

import (
	"errors"
	"strings"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs, extended
// with a stable machine-readable code.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Code     string `json:"code"`               // Stable error code, e.g. ACCOUNT_NOT_FOUND
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorToStatusCode maps an error's kind to an HTTP status. Errors that are
// not domain errors are internal.
func ErrorToStatusCode(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindAuth:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// ProblemDetailsJSON writes an application/problem+json response for err.
// Optional args override the defaults: a string replaces the detail, an int
// replaces the status, any other value is reported under errors.
//
//	return common.ProblemDetailsJSON(c, "Invalid account ID", err, "id must be a UUID", fiber.StatusBadRequest)
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   fiber.StatusBadRequest,
		Code:     domain.ErrValidation.Code,
		Instance: c.OriginalURL(),
	}
	de, isDomain := domain.AsError(err)
	if err != nil {
		pd.Status = ErrorToStatusCode(err)
		if isDomain {
			pd.Code = de.Code
			pd.Detail = de.Message
		} else {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				pd.Status = fe.Code
				pd.Detail = fe.Message
			} else {
				pd.Detail = domain.ErrInternal.Message
			}
		}
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			pd.Detail = v
		case int:
			pd.Status = v
		default:
			pd.Errors = v
		}
	}
	if !isDomain {
		pd.Code = codeForStatus(pd.Status)
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(pd.Status).JSON(pd)
}

func codeForStatus(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return domain.ErrNotFound.Code
	case status == fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	case status >= 500:
		return domain.ErrInternal.Code
	default:
		return domain.ErrValidation.Code
	}
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil
// together with the result of writing it.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", domain.ErrValidation, err.Error())
	}
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, ProblemDetailsJSON(c, "Validation failed", domain.ErrValidation, err.Error())
		}
		fields := make([]FieldError, 0, len(verrs))
		names := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
			names = append(names, fe.Field())
		}
		return nil, ProblemDetailsJSON(c, "Validation failed", domain.ErrValidation,
			"invalid fields: "+strings.Join(names, ", "), fields)
	}
	return &input, nil
}

// ParseUUIDParam reads a UUID route parameter. On failure it writes a
// not-found problem, because a malformed id cannot name an owned resource,
// and returns ok=false with the result of writing it.
func ParseUUIDParam(c *fiber.Ctx, name string, notFound *domain.Error) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false, ProblemDetailsJSON(c, "Not found", notFound)
	}
	return id, true, nil
}
