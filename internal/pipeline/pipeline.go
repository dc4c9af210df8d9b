package pipeline

import (
	"context"
	"log/slog"
	"time"

	"nba-scoreboard-service/internal/logging"
	"nba-scoreboard-service/internal/metrics"
	"nba-scoreboard-service/internal/ratelimit"
)

// FetchFunc performs one upstream call and returns a parsed payload.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Pipeline wraps every outbound fetch with the rate limit monitor, retry
// logic, and uniform error classification.
type Pipeline struct {
	monitor *ratelimit.Monitor
	logger  *slog.Logger
	metrics *metrics.Recorder
	sleep   func(ctx context.Context, d time.Duration) error
}

// New constructs a Pipeline around the given monitor.
func New(monitor *ratelimit.Monitor, logger *slog.Logger, recorder *metrics.Recorder) *Pipeline {
	return &Pipeline{
		monitor: monitor,
		logger:  logger,
		metrics: recorder,
		sleep:   sleepCtx,
	}
}

// Monitor exposes the underlying monitor for status reporting.
func (p *Pipeline) Monitor() *ratelimit.Monitor {
	return p.monitor
}

// Execute runs fn through the pipeline: wait for window capacity, record the
// request, invoke fn. Rate-limited failures are retried with exponential
// backoff up to the monitor's maximum; any other failure propagates
// immediately as a RequestError. The last observed error is always surfaced.
func Execute[T any](ctx context.Context, p *Pipeline, label string, fn FetchFunc[T]) (T, error) {
	var zero T
	var lastErr error

	for {
		if err := p.monitor.WaitForAvailability(ctx); err != nil {
			return zero, err
		}
		p.monitor.RecordRequest()

		start := time.Now()
		value, err := fn(ctx)
		if p.metrics != nil {
			p.metrics.RecordProviderAttempt(label, time.Since(start), err)
		}
		if err == nil {
			p.monitor.ResetRetry()
			return value, nil
		}
		lastErr = err

		rlErr, ok := AsRateLimitError(err)
		if !ok {
			if _, classified := AsRequestError(err); classified {
				return zero, err
			}
			if _, classified := AsValidationError(err); classified {
				return zero, err
			}
			return zero, &RequestError{Label: label, Err: err}
		}

		if p.metrics != nil {
			p.metrics.RecordRateLimit(label, rlErr.RetryAfter)
		}
		if !p.monitor.ShouldRetry() {
			break
		}
		p.monitor.IncrementRetry()

		delay := p.monitor.RetryDelay()
		if rlErr.RetryAfter > delay {
			delay = rlErr.RetryAfter
		}
		logging.Warn(p.logger, "rate limited, backing off",
			slog.String(logging.FieldProvider, label),
			slog.Int64(logging.FieldDurationMS, delay.Milliseconds()),
		)
		if err := p.sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	logging.Warn(p.logger, "retries exhausted", slog.String(logging.FieldProvider, label))
	return zero, lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
