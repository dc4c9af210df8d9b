package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	defaultMaxRequests = 30
	defaultWindow      = time.Minute
	defaultBaseDelay   = time.Second
	defaultMaxRetries  = 3
)

// Config controls the sliding window and retry backoff behavior.
type Config struct {
	MaxRequests int
	Window      time.Duration
	BaseDelay   time.Duration
	MaxRetries  int
}

// Status is a point-in-time snapshot polled by the UI status indicator.
type Status struct {
	IsLimited        bool          `json:"isLimited"`
	RequestsInWindow int           `json:"requestsInWindow"`
	MaxRequests      int           `json:"maxRequests"`
	Window           time.Duration `json:"-"`
	WindowMS         int64         `json:"windowMs"`
	TimeUntilReset   time.Duration `json:"-"`
	TimeUntilResetMS int64         `json:"timeUntilResetMs"`
	TotalRetries     int           `json:"totalRetries"`
}

// Monitor tracks recent request timestamps in a sliding window and owns the
// retry-attempt counter shared by the request pipeline. All state is
// in-process; construct one per upstream and pass it to every call site.
type Monitor struct {
	mu            sync.Mutex
	cfg           Config
	requests      []time.Time
	retryAttempts int
	totalRetries  int
	clock         func() time.Time
}

// NewMonitor constructs a Monitor, applying defaults for non-positive fields.
func NewMonitor(cfg Config) *Monitor {
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = defaultMaxRequests
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultWindow
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	return &Monitor{
		cfg:   cfg,
		clock: time.Now,
	}
}

// RecordRequest appends the current timestamp to the tracked window.
func (m *Monitor) RecordRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, m.clock())
}

// IsLimited prunes expired timestamps and reports whether the window is full.
func (m *Monitor) IsLimited() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune(m.clock())
	return len(m.requests) >= m.cfg.MaxRequests
}

// WaitForAvailability blocks until the window has capacity or the context is
// cancelled. Returns immediately when not limited.
func (m *Monitor) WaitForAvailability(ctx context.Context) error {
	for {
		wait := m.timeUntilAvailable()
		if wait <= 0 {
			return nil
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (m *Monitor) timeUntilAvailable() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock()
	m.prune(now)
	if len(m.requests) < m.cfg.MaxRequests {
		return 0
	}
	oldest := m.requests[0]
	return oldest.Add(m.cfg.Window).Sub(now)
}

// RetryDelay computes the exponential backoff for the current attempt:
// BaseDelay * 2^(attempts-1). The caller bounds attempts via ShouldRetry.
func (m *Monitor) RetryDelay() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	attempts := m.retryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return m.cfg.BaseDelay << (attempts - 1)
}

// ShouldRetry reports whether another retry attempt is permitted.
func (m *Monitor) ShouldRetry() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.retryAttempts < m.cfg.MaxRetries
}

// IncrementRetry bumps the attempt counter after a rate-limited failure.
func (m *Monitor) IncrementRetry() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retryAttempts++
	m.totalRetries++
}

// ResetRetry clears the attempt counter after any successful request.
func (m *Monitor) ResetRetry() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retryAttempts = 0
}

// Reset clears all tracked state.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.retryAttempts = 0
	m.totalRetries = 0
}

// Status returns a snapshot of the window and retry counters.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock()
	m.prune(now)

	var untilReset time.Duration
	if len(m.requests) > 0 {
		untilReset = m.requests[0].Add(m.cfg.Window).Sub(now)
		if untilReset < 0 {
			untilReset = 0
		}
	}

	return Status{
		IsLimited:        len(m.requests) >= m.cfg.MaxRequests,
		RequestsInWindow: len(m.requests),
		MaxRequests:      m.cfg.MaxRequests,
		Window:           m.cfg.Window,
		WindowMS:         m.cfg.Window.Milliseconds(),
		TimeUntilReset:   untilReset,
		TimeUntilResetMS: untilReset.Milliseconds(),
		TotalRetries:     m.totalRetries,
	}
}

// prune drops timestamps older than the window. Caller holds the lock.
// Timestamps are appended in order, so the slice stays sorted.
func (m *Monitor) prune(now time.Time) {
	cutoff := now.Add(-m.cfg.Window)
	idx := 0
	for idx < len(m.requests) && !m.requests[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		m.requests = append(m.requests[:0], m.requests[idx:]...)
	}
}
