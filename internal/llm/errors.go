package llm

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrInvocationFailed is wrapped by every error returned from a model invocation.
var ErrInvocationFailed = errors.New("model invocation failed")

// ErrUnknownBackend indicates a configuration naming an unsupported backend.
var ErrUnknownBackend = errors.New("unknown model backend")

// ErrorType categorizes invocation failures for logging.
// No failure type is retried; the classification is diagnostic only.
type ErrorType string

const (
	// ErrorTypeUnavailable means the executable or server could not be reached.
	ErrorTypeUnavailable ErrorType = "unavailable"

	// ErrorTypeProcess means the executable ran and exited non-zero.
	ErrorTypeProcess ErrorType = "process_failed"

	// ErrorTypeStatus means the server answered with a non-success status.
	ErrorTypeStatus ErrorType = "bad_status"

	// ErrorTypeResponse means the server's reply could not be decoded.
	ErrorTypeResponse ErrorType = "bad_response"

	// ErrorTypeTimeout means the configured timeout elapsed.
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeCanceled means the caller canceled the invocation.
	ErrorTypeCanceled ErrorType = "canceled"

	// ErrorTypeRateLimit means the local rate limiter refused to wait.
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = "unknown"
)

// InvocationError describes why the model produced no output.
// It carries no partial output; a failed invocation yields nothing.
type InvocationError struct {
	Type       ErrorType
	Backend    Backend
	ExitCode   int    // cli backend; -1 when the process never exited normally
	StatusCode int    // http backend
	Stderr     string // cli backend, trimmed
	Cause      error
}

// Error formats the failure as "<backend> invocation failed (<type>)[: detail][: cause]".
func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("%s invocation failed (%s)", e.Backend, e.Type)
	switch {
	case e.StatusCode != 0:
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	case e.Type == ErrorTypeProcess:
		msg += fmt.Sprintf(": exit code %d", e.ExitCode)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *InvocationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvocationFailed}
	}
	return []error{ErrInvocationFailed, e.Cause}
}

// ClassifyError returns the failure type of an invocation error.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}

	var invErr *InvocationError
	if errors.As(err, &invErr) {
		return invErr.Type
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeTimeout
	case errors.Is(err, context.Canceled):
		return ErrorTypeCanceled
	case errors.Is(err, exec.ErrNotFound):
		return ErrorTypeUnavailable
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ErrorTypeProcess
	}
	return ErrorTypeUnknown
}

// contextErrorType maps a finished context to an error type, or "" if the
// context is still live.
func contextErrorType(ctx context.Context) ErrorType {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrorTypeTimeout
	case errors.Is(ctx.Err(), context.Canceled):
		return ErrorTypeCanceled
	}
	return ""
}
