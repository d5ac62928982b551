package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the request conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// Settlement workflow errors.
var (
	// ErrSettlementInProgress is returned when a second close request arrives for an
	// account that already has an active settlement workflow.
	ErrSettlementInProgress = errors.New("settlement already in progress for account")

	// ErrSettlementTerminal is returned when an operation is attempted on a workflow
	// that already reached DONE or FAILED.
	ErrSettlementTerminal = errors.New("settlement workflow already finished")

	// ErrCancelNotAllowed is returned when cancellation is requested after the
	// clearing transfer was dispatched.
	ErrCancelNotAllowed = errors.New("settlement can only be cancelled while awaiting a counterpart")

	// ErrSettlementCancelled is recorded on workflows the caller abandoned.
	ErrSettlementCancelled = errors.New("settlement cancelled")

	ErrNoCounterpartAvailable = errors.New("no counterpart account available")
	ErrUnsupportedResidual    = errors.New("residual balance cannot be cleared by a transfer")
	ErrClearingFailed         = errors.New("clearing transfer failed")
	ErrCloseFailed            = errors.New("close account failed")
)

// RemoteError is a non-2xx answer from the banking backend.
type RemoteError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend %s %s responded %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("backend %s %s responded %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsDefinitiveRejection reports whether err is a business-rule rejection from the
// backend (a 4xx answer). 405, 408 and 429 say nothing about the request's merit,
// so they are not definitive; neither are transport failures and timeouts.
func IsDefinitiveRejection(err error) bool {
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		return false
	}
	switch remoteErr.StatusCode {
	case http.StatusMethodNotAllowed, http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return remoteErr.StatusCode >= 400 && remoteErr.StatusCode < 500
}

// IsRemoteNotFound reports whether err is a 404 answer from the backend.
func IsRemoteNotFound(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound
}
