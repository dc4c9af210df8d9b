package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"nba-scoreboard-service/internal/metrics"
	"nba-scoreboard-service/internal/ratelimit"
)

func newTestPipeline(cfg ratelimit.Config) (*Pipeline, *[]time.Duration) {
	monitor := ratelimit.NewMonitor(cfg)
	p := New(monitor, nil, metrics.NewRecorder())

	var slept []time.Duration
	p.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return p, &slept
}

func TestExecuteReturnsValueOnSuccess(t *testing.T) {
	p, _ := newTestPipeline(ratelimit.Config{})

	got, err := Execute(context.Background(), p, "test", func(ctx context.Context) (string, error) {
		return "payload", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "payload" {
		t.Fatalf("expected payload, got %q", got)
	}
}

func TestExecuteRetriesRateLimitWithDoublingBackoff(t *testing.T) {
	p, slept := newTestPipeline(ratelimit.Config{BaseDelay: time.Second, MaxRetries: 3})

	calls := 0
	got, err := Execute(context.Background(), p, "test", func(ctx context.Context) (int, error) {
		calls++
		if calls <= 3 {
			return 0, &RateLimitError{Provider: "test", StatusCode: 429}
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if calls != 4 {
		t.Fatalf("expected 4 attempts, got %d", calls)
	}

	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	if len(*slept) != len(want) {
		t.Fatalf("expected %d sleeps, got %d: %v", len(want), len(*slept), *slept)
	}
	for i := range want {
		if (*slept)[i] != want[i] {
			t.Fatalf("sleep %d: expected %v, got %v", i, want[i], (*slept)[i])
		}
	}
}

func TestExecuteHonorsLargerRetryAfter(t *testing.T) {
	p, slept := newTestPipeline(ratelimit.Config{BaseDelay: time.Second, MaxRetries: 3})

	calls := 0
	_, err := Execute(context.Background(), p, "test", func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, &RateLimitError{Provider: "test", RetryAfter: 30 * time.Second}
		}
		return 1, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*slept) != 1 || (*slept)[0] != 30*time.Second {
		t.Fatalf("expected one 30s sleep, got %v", *slept)
	}
}

func TestExecuteSurfacesRateLimitAfterRetriesExhausted(t *testing.T) {
	p, slept := newTestPipeline(ratelimit.Config{BaseDelay: time.Second, MaxRetries: 2})

	calls := 0
	_, err := Execute(context.Background(), p, "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, &RateLimitError{Provider: "test", StatusCode: 429}
	})
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if _, ok := AsRateLimitError(err); !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	// Initial attempt plus two retries.
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	if len(*slept) != 2 {
		t.Fatalf("expected 2 sleeps, got %v", *slept)
	}
}

func TestExecuteDoesNotRetryRequestError(t *testing.T) {
	p, slept := newTestPipeline(ratelimit.Config{MaxRetries: 3})

	calls := 0
	_, err := Execute(context.Background(), p, "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, &RequestError{Label: "test", StatusCode: 500, Err: errors.New("boom")}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected 1 attempt, got %d", calls)
	}
	if len(*slept) != 0 {
		t.Fatalf("expected no sleeps, got %v", *slept)
	}
}

func TestExecuteDoesNotRetryValidationError(t *testing.T) {
	p, _ := newTestPipeline(ratelimit.Config{MaxRetries: 3})

	calls := 0
	_, err := Execute(context.Background(), p, "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, &ValidationError{Label: "test", Reason: "bad shape"}
	})
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 attempt, got %d", calls)
	}
}

func TestExecuteWrapsUnclassifiedErrors(t *testing.T) {
	p, _ := newTestPipeline(ratelimit.Config{})

	_, err := Execute(context.Background(), p, "espn-scoreboard", func(ctx context.Context) (int, error) {
		return 0, errors.New("connection refused")
	})
	reqErr, ok := AsRequestError(err)
	if !ok {
		t.Fatalf("expected request error wrapper, got %v", err)
	}
	if reqErr.Label != "espn-scoreboard" {
		t.Fatalf("unexpected label %q", reqErr.Label)
	}
}

func TestExecuteSuccessResetsRetryCounter(t *testing.T) {
	p, slept := newTestPipeline(ratelimit.Config{BaseDelay: time.Second, MaxRetries: 3})

	// First call rate limits once, then succeeds.
	calls := 0
	_, err := Execute(context.Background(), p, "test", func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, &RateLimitError{Provider: "test"}
		}
		return 1, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A later rate-limited call must start from the base delay again.
	calls = 0
	_, err = Execute(context.Background(), p, "test", func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, &RateLimitError{Provider: "test"}
		}
		return 1, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*slept) != 2 || (*slept)[1] != time.Second {
		t.Fatalf("expected second sequence to restart at base delay, got %v", *slept)
	}
}

func TestExecuteRespectsContextCancellation(t *testing.T) {
	monitor := ratelimit.NewMonitor(ratelimit.Config{MaxRequests: 1, Window: time.Hour})
	monitor.RecordRequest()
	p := New(monitor, nil, metrics.NewRecorder())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := Execute(ctx, p, "test", func(ctx context.Context) (int, error) {
		t.Fatal("fetch should not run while window is full")
		return 0, nil
	})
	if err == nil {
		t.Fatal("expected context error")
	}
}
