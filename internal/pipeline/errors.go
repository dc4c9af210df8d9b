package pipeline

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitError captures rate limit responses from upstream providers.
// The pipeline retries these with backoff before surfacing them.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// RequestError wraps any non-rate-limit fetch failure. These are surfaced
// immediately without retries.
type RequestError struct {
	Label      string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: request failed (status=%d): %v", e.Label, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: request failed: %v", e.Label, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// AsRequestError attempts to unwrap an error into a RequestError.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// ValidationError indicates a response whose shape is unusable. Non-critical
// paths degrade to best-effort parsing instead of raising this.
type ValidationError struct {
	Label  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: invalid response: %s: %v", e.Label, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: invalid response: %s", e.Label, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// AsValidationError attempts to unwrap an error into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr, true
	}
	return nil, false
}
