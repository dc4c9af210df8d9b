package scores

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"nba-scoreboard-service/internal/cache"
	"nba-scoreboard-service/internal/domain/games"
	"nba-scoreboard-service/internal/logging"
	"nba-scoreboard-service/internal/pipeline"
	"nba-scoreboard-service/internal/providers"
	"nba-scoreboard-service/internal/window"
)

const (
	scoreboardLabel = "espn-scoreboard"
	summaryLabel    = "espn-summary"
)

// Service coordinates the score flow: window key computation, cached and
// coalesced fetching through the pipeline, and local-day normalization.
type Service struct {
	provider providers.ScoreboardProvider
	summary  providers.SummaryProvider
	pipeline *pipeline.Pipeline
	cache    *cache.Cache[[]games.Game]
	windows  window.Strategy
	logger   *slog.Logger
}

// NewService constructs a scores Service.
func NewService(
	provider providers.ScoreboardProvider,
	summary providers.SummaryProvider,
	pl *pipeline.Pipeline,
	windowCache *cache.Cache[[]games.Game],
	windows window.Strategy,
	logger *slog.Logger,
) *Service {
	return &Service{
		provider: provider,
		summary:  summary,
		pipeline: pl,
		cache:    windowCache,
		windows:  windows,
		logger:   logger,
	}
}

// GamesForDate returns normalized games for the given calendar date in the
// viewer's timezone. The covering 5-day window is fetched at most once and
// shared by every date inside it.
func (s *Service) GamesForDate(ctx context.Context, date time.Time) ([]games.Game, error) {
	return s.gamesForDate(ctx, date, "")
}

// GamesForDateSorted is GamesForDate with display ordering applied: games
// involving favoriteTeamID first, then live, scheduled, final.
func (s *Service) GamesForDateSorted(ctx context.Context, date time.Time, favoriteTeamID string) ([]games.Game, error) {
	return s.gamesForDate(ctx, date, favoriteTeamID)
}

func (s *Service) gamesForDate(ctx context.Context, date time.Time, favoriteTeamID string) ([]games.Game, error) {
	w := s.windows.For(date)

	all, err := s.cache.Get(ctx, w.Key, s.fetchWindow(w))
	if err != nil {
		return nil, err
	}

	day := FilterToLocalDay(all, date, s.windows.Loc)
	sort.SliceStable(day, func(i, j int) bool {
		return games.Less(day[i], day[j], favoriteTeamID)
	})
	return day, nil
}

// Refresh invalidates exactly the window covering date, then refetches it.
// Other cached windows are untouched to avoid unnecessary network load.
func (s *Service) Refresh(ctx context.Context, date time.Time) ([]games.Game, error) {
	w := s.windows.For(date)
	s.cache.Invalidate(w.Key)
	logging.Info(s.logger, "scores cache invalidated", slog.String(logging.FieldWindowKey, w.Key))
	return s.GamesForDate(ctx, date)
}

// WarmWindow fetches the window covering date into the cache. Used by the
// prefetch scheduler; serves nothing to a caller.
func (s *Service) WarmWindow(ctx context.Context, date time.Time) error {
	w := s.windows.For(date)
	_, err := s.cache.Get(ctx, w.Key, s.fetchWindow(w))
	return err
}

// GameSummary passes a box-score summary payload through the pipeline.
func (s *Service) GameSummary(ctx context.Context, eventID string) (json.RawMessage, error) {
	return pipeline.Execute(ctx, s.pipeline, summaryLabel, func(ctx context.Context) (json.RawMessage, error) {
		return s.summary.FetchGameSummary(ctx, eventID)
	})
}

// Windows exposes the window strategy (for handlers validating dates).
func (s *Service) Windows() window.Strategy {
	return s.windows
}

func (s *Service) fetchWindow(w window.Window) cache.FetchFunc[[]games.Game] {
	return func(ctx context.Context) ([]games.Game, error) {
		fetched, err := pipeline.Execute(ctx, s.pipeline, scoreboardLabel, func(ctx context.Context) ([]games.Game, error) {
			return s.provider.FetchScoreboard(ctx, w.DateRange())
		})
		if err != nil {
			return nil, err
		}
		logging.Info(s.logger, "window fetched",
			slog.String(logging.FieldWindowKey, w.Key),
			slog.Int(logging.FieldCount, len(fetched)),
		)
		return fetched, nil
	}
}
