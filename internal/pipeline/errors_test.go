package pipeline

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestAsRateLimitErrorUnwrapsWrappedErrors(t *testing.T) {
	inner := &RateLimitError{Provider: "espn", StatusCode: 429, RetryAfter: 30 * time.Second}
	wrapped := fmt.Errorf("fetch failed: %w", inner)

	got, ok := AsRateLimitError(wrapped)
	if !ok {
		t.Fatal("expected rate limit error through wrapping")
	}
	if got.RetryAfter != 30*time.Second {
		t.Fatalf("unexpected retry-after %v", got.RetryAfter)
	}

	if _, ok := AsRateLimitError(errors.New("plain")); ok {
		t.Fatal("plain error must not match")
	}
}

func TestRequestErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := &RequestError{Label: "espn-scoreboard", StatusCode: 502, Err: inner}

	if !errors.Is(err, inner) {
		t.Fatal("expected unwrap to reach the cause")
	}
	if got, ok := AsRequestError(fmt.Errorf("wrapped: %w", err)); !ok || got.StatusCode != 502 {
		t.Fatalf("unexpected result %v %v", got, ok)
	}
}

func TestErrorMessages(t *testing.T) {
	rl := &RateLimitError{StatusCode: 429}
	if rl.Error() != "provider rate limited (status=429)" {
		t.Fatalf("unexpected message %q", rl.Error())
	}

	rl = &RateLimitError{Message: "slow down"}
	if rl.Error() != "slow down" {
		t.Fatalf("unexpected message %q", rl.Error())
	}

	ve := &ValidationError{Label: "espn", Reason: "no entries"}
	if ve.Error() != "espn: invalid response: no entries" {
		t.Fatalf("unexpected message %q", ve.Error())
	}
}
