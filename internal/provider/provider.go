// Package provider implements the multi-source forecast acquisition layer:
// the adapter contract, the disk-backed forecast cache and the ordered
// fallback manager.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/sailgate/sailgate/internal/marine"
)

// ErrorCode is the machine-readable classification the manager uses to
// decide whether to advance the fallback chain.
type ErrorCode string

const (
	CodeTimeout     ErrorCode = "timeout"
	CodeQuota       ErrorCode = "quota"
	CodeHTTP        ErrorCode = "http"
	CodeConfig      ErrorCode = "config"
	CodeData        ErrorCode = "data"
	CodeUnavailable ErrorCode = "unavailable"
	CodeEmpty       ErrorCode = "empty"
	CodeUnknown     ErrorCode = "unknown"
)

// Error is the typed failure every adapter surfaces instead of a bare
// transport error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("provider %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a provider error with a classification code.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError builds a provider error preserving the underlying cause.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// AsError unwraps a provider error from an error chain.
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Provider is the adapter contract. Implementations perform one bounded
// outbound call per invocation, never cache internally, and classify all
// failures through Error.
type Provider interface {
	// FetchForecast returns canonical forecast points ordered by time for
	// the given location and horizon.
	FetchForecast(ctx context.Context, lat, lon float64, hours int) ([]marine.ForecastPoint, error)

	// Name identifies the provider for logging and cache scoping.
	Name() string
}
