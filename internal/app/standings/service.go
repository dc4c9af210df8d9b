package standings

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"nba-scoreboard-service/internal/cache"
	"nba-scoreboard-service/internal/config"
	domainstandings "nba-scoreboard-service/internal/domain/standings"
	"nba-scoreboard-service/internal/logging"
	"nba-scoreboard-service/internal/pipeline"
	"nba-scoreboard-service/internal/providers"
)

const (
	standingsLabel = "espn-standings"
	cacheKey       = "standings"
)

// Service aggregates conference standings: parallel per-conference fetches
// through the pipeline, win-percentage ranking, and games-behind computation.
type Service struct {
	provider providers.StandingsProvider
	pipeline *pipeline.Pipeline
	cache    *cache.Cache[domainstandings.Standings]
	groups   []config.ConferenceGroup
	logger   *slog.Logger
}

// NewService constructs a standings Service.
func NewService(
	provider providers.StandingsProvider,
	pl *pipeline.Pipeline,
	standingsCache *cache.Cache[domainstandings.Standings],
	groups []config.ConferenceGroup,
	logger *slog.Logger,
) *Service {
	if len(groups) == 0 {
		groups = config.DefaultConferenceGroups()
	}
	return &Service{
		provider: provider,
		pipeline: pl,
		cache:    standingsCache,
		groups:   groups,
		logger:   logger,
	}
}

// errAllConferencesFailed keeps a fully-failed computation out of the cache
// so the next read retries instead of serving a cached empty result.
var errAllConferencesFailed = errors.New("standings: all conference fetches failed")

// Standings returns ranked conference standings, cached with
// stale-while-revalidate semantics under a single key. When every conference
// fetch fails and nothing is cached, an explicit empty structure is returned
// so the UI can render "no data" distinctly from a loading state.
func (s *Service) Standings(ctx context.Context) (domainstandings.Standings, error) {
	result, err := s.cache.Get(ctx, cacheKey, s.computeStandings)
	if errors.Is(err, errAllConferencesFailed) {
		return domainstandings.Standings{Conferences: []domainstandings.Conference{}}, nil
	}
	return result, err
}

// Refresh invalidates the cached standings and recomputes them.
func (s *Service) Refresh(ctx context.Context) (domainstandings.Standings, error) {
	s.cache.Invalidate(cacheKey)
	logging.Info(s.logger, "standings cache invalidated")
	return s.Standings(ctx)
}

// Warm fetches standings into the cache for the prefetch scheduler. Unlike
// Standings, a fully-failed computation is reported as an error here so the
// scheduler's health status reflects it.
func (s *Service) Warm(ctx context.Context) error {
	_, err := s.cache.Get(ctx, cacheKey, s.computeStandings)
	return err
}

// computeStandings fetches every conference group in parallel. A failed
// conference is logged and omitted rather than aborting the batch; when all
// groups fail the result is an explicit empty standings structure so the UI
// can show "no data" distinctly from an error state.
func (s *Service) computeStandings(ctx context.Context) (domainstandings.Standings, error) {
	results := make([][]domainstandings.Entry, len(s.groups))

	g, gctx := errgroup.WithContext(ctx)
	for i, group := range s.groups {
		i, group := i, group
		g.Go(func() error {
			entries, err := pipeline.Execute(gctx, s.pipeline, standingsLabel, func(ctx context.Context) ([]domainstandings.Entry, error) {
				return s.provider.FetchConferenceStandings(ctx, group.ID)
			})
			if err != nil {
				logging.Warn(s.logger, "conference standings fetch failed",
					slog.String(logging.FieldConference, group.Name), "error", err)
				return nil
			}
			results[i] = entries
			return nil
		})
	}
	// Goroutines only return nil; Wait is for synchronization.
	_ = g.Wait()

	conferences := make([]domainstandings.Conference, 0, len(s.groups))
	for i, group := range s.groups {
		if results[i] == nil {
			continue
		}
		conferences = append(conferences, domainstandings.Conference{
			ID:           group.ID,
			Name:         group.Name,
			Abbreviation: group.Abbreviation,
			Entries:      domainstandings.Rank(results[i]),
		})
	}

	if len(conferences) == 0 {
		return domainstandings.Standings{}, errAllConferencesFailed
	}

	standings := domainstandings.Standings{Conferences: conferences}
	logging.Info(s.logger, "standings computed",
		slog.Int(logging.FieldCount, len(conferences)))
	return standings, nil
}
