// Package apierror provides the standardized error envelope for the API and
// the domain error taxonomy shared by all services. All errors returned to
// clients go through this package to ensure consistency and to prevent leaking
// internal details (stack traces, DB errors, etc.).
package apierror

import "errors"

// Domain sentinels. Services wrap these with fmt.Errorf("%w: ...") so handlers
// can classify with errors.Is while keeping the offending reference in the
// message.
var (
	// ErrInvalidInput covers malformed or missing required fields,
	// non-positive quantities, negative costs, and start-after-end date ranges.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound covers dangling references to product/vendor/combo/sheet/row.
	ErrNotFound = errors.New("not found")

	// ErrTransactionAborted is surfaced after a multi-write transaction has
	// been fully rolled back. It is never retried automatically.
	ErrTransactionAborted = errors.New("transaction aborted")
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}
