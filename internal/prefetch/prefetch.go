package prefetch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"nba-scoreboard-service/internal/logging"
	"nba-scoreboard-service/internal/metrics"
)

const (
	defaultScoresInterval    = 2 * time.Minute
	defaultStandingsInterval = 10 * time.Minute

	cycleScores    = "scores"
	cycleStandings = "standings"
)

// ScoresWarmer warms the score window covering the given date.
type ScoresWarmer interface {
	WarmWindow(ctx context.Context, date time.Time) error
}

// StandingsWarmer warms the standings cache.
type StandingsWarmer interface {
	Warm(ctx context.Context) error
}

// CycleStatus describes the recent health of one warm cycle.
type CycleStatus struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// Status combines both cycle healths.
type Status struct {
	Scores    CycleStatus
	Standings CycleStatus
}

// IsReady reports whether the scheduler has warmed scores recently and is
// not failing repeatedly.
func (s Status) IsReady() bool {
	if s.Scores.LastSuccess.IsZero() {
		return false
	}
	return s.Scores.ConsecutiveFailures < 3
}

// Scheduler proactively warms the score-window and standings caches on two
// independent timers, decoupled from user navigation. Cycle failures are
// logged and swallowed; prefetching is best-effort and a failed cycle never
// touches an already-cached value.
type Scheduler struct {
	scores            ScoresWarmer
	standings         StandingsWarmer
	scoresInterval    time.Duration
	standingsInterval time.Duration
	logger            *slog.Logger
	metrics           *metrics.Recorder
	now               func() time.Time

	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// New constructs a Scheduler with sane defaults.
func New(scores ScoresWarmer, standings StandingsWarmer, logger *slog.Logger, recorder *metrics.Recorder, scoresInterval, standingsInterval time.Duration) *Scheduler {
	if scoresInterval <= 0 {
		scoresInterval = defaultScoresInterval
	}
	if standingsInterval <= 0 {
		standingsInterval = defaultStandingsInterval
	}
	return &Scheduler{
		scores:            scores,
		standings:         standings,
		scoresInterval:    scoresInterval,
		standingsInterval: standingsInterval,
		logger:            logger,
		metrics:           recorder,
		now:               time.Now,
		done:              make(chan struct{}),
	}
}

// Start begins both warm cycles until the context is cancelled or Stop is
// called. Each cycle runs once immediately to warm caches on boot.
func (s *Scheduler) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	logging.Info(s.logger, "prefetch scheduler started",
		slog.Int64("scores_interval_ms", s.scoresInterval.Milliseconds()),
		slog.Int64("standings_interval_ms", s.standingsInterval.Milliseconds()),
	)

	go s.runCycle(ctx, cycleScores, s.scoresInterval, s.warmScores)
	go s.runCycle(ctx, cycleStandings, s.standingsInterval, s.warmStandings)
}

// Stop halts both cycles.
func (s *Scheduler) Stop(ctx context.Context) error {
	_ = ctx
	s.stopOnce.Do(func() {
		close(s.done)
	})
	return nil
}

// Status returns a snapshot of both cycles' recent health.
func (s *Scheduler) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

func (s *Scheduler) runCycle(ctx context.Context, name string, interval time.Duration, warm func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.warmOnce(ctx, name, warm)
	for {
		select {
		case <-ctx.Done():
			logging.Info(s.logger, "prefetch cycle stopped", slog.String("cycle", name))
			return
		case <-s.done:
			logging.Info(s.logger, "prefetch cycle stopped", slog.String("cycle", name))
			return
		case <-ticker.C:
			s.warmOnce(ctx, name, warm)
		}
	}
}

func (s *Scheduler) warmOnce(ctx context.Context, name string, warm func(context.Context) error) {
	start := time.Now()
	s.recordAttempt(name, start)

	err := warm(ctx)
	if s.metrics != nil {
		s.metrics.RecordPrefetchCycle(name, time.Since(start), err)
	}
	if err != nil {
		// Best-effort: log and move on, never crash subsequent cycles.
		logging.Warn(s.logger, "prefetch cycle failed",
			slog.String("cycle", name),
			slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
			"error", err,
		)
		s.recordFailure(name, err, start)
		return
	}
	s.recordSuccess(name, start)
	logging.Info(s.logger, "prefetch cycle complete",
		slog.String("cycle", name),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
}

func (s *Scheduler) warmScores(ctx context.Context) error {
	return s.scores.WarmWindow(ctx, s.now())
}

func (s *Scheduler) warmStandings(ctx context.Context) error {
	return s.standings.Warm(ctx)
}

func (s *Scheduler) recordAttempt(name string, at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	cycle := s.cycle(name)
	cycle.LastAttempt = at
}

func (s *Scheduler) recordSuccess(name string, at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	cycle := s.cycle(name)
	cycle.ConsecutiveFailures = 0
	cycle.LastError = ""
	cycle.LastSuccess = at
}

func (s *Scheduler) recordFailure(name string, err error, at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	cycle := s.cycle(name)
	cycle.ConsecutiveFailures++
	if err != nil {
		cycle.LastError = err.Error()
	}
	cycle.LastAttempt = at
}

// cycle returns a pointer into the status struct. Caller holds the lock.
func (s *Scheduler) cycle(name string) *CycleStatus {
	if name == cycleStandings {
		return &s.status.Standings
	}
	return &s.status.Scores
}
