package logomotion

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyResult is returned when the backend succeeded but produced no usable payload.
	ErrEmptyResult = errors.New("empty result from backend")

	// ErrNoCredential is returned when no API credential is selected after the picker settles.
	ErrNoCredential = errors.New("no API credential selected")

	// ErrBlobNotFound is returned when a video handle does not resolve to stored bytes.
	ErrBlobNotFound = errors.New("blob not found")
)

// TransportError wraps a network or API failure talking to the backend.
type TransportError struct {
	Op         string // "generate image", "submit video", "poll video", "download video"
	StatusCode int    // HTTP status when known, 0 otherwise
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError checks if an error is a TransportError.
func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// RateLimitError is returned when a rate limit is hit, locally or by the backend.
type RateLimitError struct {
	RetryAfter time.Duration
	LimitType  string
	Model      string
	Err        error // Underlying error from the provider
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s: %s limit, retry after %v",
		e.Model, e.LimitType, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// IsRateLimitError checks if an error is a RateLimitError.
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}

// CredentialError is returned when the credential gate cannot be satisfied.
// The generation request is never submitted in that case.
type CredentialError struct {
	Reason string
	Err    error
}

func (e *CredentialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("credential unavailable: %s: %v", e.Reason, e.Err)
	}
	return "credential unavailable: " + e.Reason
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// IsCredentialError checks if an error is a CredentialError.
func IsCredentialError(err error) bool {
	var cErr *CredentialError
	return errors.As(err, &cErr)
}

// PollTimeoutError is returned when a video operation does not finish within
// the configured attempt count or deadline.
type PollTimeoutError struct {
	Operation string
	Attempts  int
	Elapsed   time.Duration
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("video operation %s not done after %d status checks (%v)",
		e.Operation, e.Attempts, e.Elapsed.Round(time.Millisecond))
}

// OperationError is returned when the backend reports a finished operation as failed.
type OperationError struct {
	Operation string
	Message   string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("video operation %s failed: %s", e.Operation, e.Message)
}
