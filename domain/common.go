package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	MessageWelcome              = "Welcome to the Recipe API"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedValidation     = "request validation failed"
	MessageInternalError        = "internal server error"
	MessageRouteNotFound        = "route not found"
	MessageTooManyRequests      = "too many requests"

	// Error taxonomy. Every error a service returns either is, or wraps, one of
	// these; handlers map them to HTTP statuses.
	ErrUnauthorized = errors.New("could not validate credentials")
	ErrForbidden    = errors.New("operation not allowed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already registered")
	ErrValidation   = errors.New("invalid input")
)

// ValidationError reports a malformed field with a human readable reason.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

type (
	TopQuery struct {
		Limit int `query:"limit"`
	}

	SearchQuery struct {
		Query string `query:"query" validate:"required,max=255"`
	}
)

const (
	DefaultTopLimit = 10
	MaxTopLimit     = 100
)

// NormalizeTopLimit applies the default for missing or non-positive limits and
// caps oversized ones.
func NormalizeTopLimit(limit int) int {
	if limit < 1 {
		return DefaultTopLimit
	}
	if limit > MaxTopLimit {
		return MaxTopLimit
	}
	return limit
}

// ContainsPattern turns a user query into a lower-cased LIKE pattern matching
// it as a literal substring. Use it with ESCAPE '\'.
func ContainsPattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(query))
	return "%" + escaped + "%"
}
