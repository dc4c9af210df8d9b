package prefetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"nba-scoreboard-service/internal/metrics"
)

type stubScoresWarmer struct {
	calls int32

	mu  sync.Mutex
	err error
}

func (s *stubScoresWarmer) WarmWindow(ctx context.Context, date time.Time) error {
	atomic.AddInt32(&s.calls, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *stubScoresWarmer) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

type stubStandingsWarmer struct {
	calls int32
}

func (s *stubStandingsWarmer) Warm(ctx context.Context) error {
	atomic.AddInt32(&s.calls, 1)
	return nil
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal(msg)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSchedulerWarmsBothCyclesOnStart(t *testing.T) {
	scores := &stubScoresWarmer{}
	standings := &stubStandingsWarmer{}
	s := New(scores, standings, nil, metrics.NewRecorder(), time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, func() bool {
		return atomic.LoadInt32(&scores.calls) == 1 && atomic.LoadInt32(&standings.calls) == 1
	}, "expected one immediate warm per cycle")

	waitFor(t, func() bool { return s.Status().IsReady() }, "expected ready after successful warm")
}

func TestSchedulerRepeatsOnInterval(t *testing.T) {
	scores := &stubScoresWarmer{}
	standings := &stubStandingsWarmer{}
	s := New(scores, standings, nil, metrics.NewRecorder(), 10*time.Millisecond, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, func() bool { return atomic.LoadInt32(&scores.calls) >= 3 }, "expected repeated score warms")
	if atomic.LoadInt32(&standings.calls) != 1 {
		t.Fatalf("standings cycle should not tick yet, got %d", atomic.LoadInt32(&standings.calls))
	}
}

func TestSchedulerTracksFailures(t *testing.T) {
	scores := &stubScoresWarmer{}
	scores.setErr(errors.New("upstream down"))
	standings := &stubStandingsWarmer{}
	s := New(scores, standings, nil, metrics.NewRecorder(), 10*time.Millisecond, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, func() bool { return s.Status().Scores.ConsecutiveFailures >= 3 }, "expected consecutive failures to accumulate")

	status := s.Status()
	if status.IsReady() {
		t.Fatal("expected not ready while scores cycle is failing")
	}
	if status.Scores.LastError == "" {
		t.Fatal("expected last error recorded")
	}

	// Recovery clears the failure streak.
	scores.setErr(nil)
	waitFor(t, func() bool { return s.Status().Scores.ConsecutiveFailures == 0 }, "expected recovery to clear failures")
	waitFor(t, func() bool { return s.Status().IsReady() }, "expected ready after recovery")
}

func TestSchedulerStops(t *testing.T) {
	scores := &stubScoresWarmer{}
	standings := &stubStandingsWarmer{}
	s := New(scores, standings, nil, metrics.NewRecorder(), 10*time.Millisecond, time.Hour)

	s.Start(context.Background())
	waitFor(t, func() bool { return atomic.LoadInt32(&scores.calls) >= 1 }, "expected at least one warm")

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	settled := atomic.LoadInt32(&scores.calls)
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&scores.calls); got > settled+1 {
		t.Fatalf("cycles kept running after stop: %d -> %d", settled, got)
	}
}

func TestSchedulerStartIsIdempotent(t *testing.T) {
	scores := &stubScoresWarmer{}
	standings := &stubStandingsWarmer{}
	s := New(scores, standings, nil, metrics.NewRecorder(), time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, func() bool { return atomic.LoadInt32(&scores.calls) >= 1 }, "expected warm")
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&scores.calls); got != 1 {
		t.Fatalf("double start must not duplicate cycles, got %d warms", got)
	}
}

func TestStatusIsReadyRules(t *testing.T) {
	var s Status
	if s.IsReady() {
		t.Fatal("zero status must not be ready")
	}
	s.Scores.LastSuccess = time.Now()
	if !s.IsReady() {
		t.Fatal("expected ready after a success")
	}
	s.Scores.ConsecutiveFailures = 3
	if s.IsReady() {
		t.Fatal("expected not ready at 3 consecutive failures")
	}
}
