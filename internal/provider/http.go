package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/sailgate/sailgate/internal/provider/resilience"
)

// TransportError classifies a transport-level failure from an adapter's
// HTTP client into a typed provider error.
func TransportError(name string, err error) *Error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return WrapError(CodeTimeout, name+" timed out", err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return WrapError(CodeTimeout, name+" timed out", err)
	case errors.Is(err, resilience.ErrCircuitOpen):
		return WrapError(CodeUnavailable, name+" circuit open", err)
	}
	return WrapError(CodeHTTP, name+" request failed", err)
}

// StatusError classifies a non-success HTTP status into a typed provider
// error. 429 maps to quota so the manager can distinguish rate limiting
// from hard failures.
func StatusError(name string, status int) *Error {
	if status == http.StatusTooManyRequests {
		return NewError(CodeQuota, name+" quota reached")
	}
	return NewError(CodeHTTP, fmt.Sprintf("%s status %d", name, status))
}
