package scores

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"nba-scoreboard-service/internal/cache"
	"nba-scoreboard-service/internal/domain/games"
	"nba-scoreboard-service/internal/domain/teams"
	"nba-scoreboard-service/internal/metrics"
	"nba-scoreboard-service/internal/pipeline"
	"nba-scoreboard-service/internal/ratelimit"
	"nba-scoreboard-service/internal/window"
)

type stubProvider struct {
	calls      int
	lastRange  string
	games      []games.Game
	err        error
	summaries  int
	summaryErr error
}

func (s *stubProvider) FetchScoreboard(ctx context.Context, dateRange string) ([]games.Game, error) {
	s.calls++
	s.lastRange = dateRange
	if s.err != nil {
		return nil, s.err
	}
	return s.games, nil
}

func (s *stubProvider) FetchGameSummary(ctx context.Context, eventID string) (json.RawMessage, error) {
	s.summaries++
	if s.summaryErr != nil {
		return nil, s.summaryErr
	}
	return json.RawMessage(`{"event": "` + eventID + `"}`), nil
}

func newTestService(p *stubProvider) *Service {
	monitor := ratelimit.NewMonitor(ratelimit.Config{MaxRequests: 100, Window: time.Minute})
	pl := pipeline.New(monitor, nil, metrics.NewRecorder())
	c := cache.New[[]games.Game](time.Minute, nil, metrics.NewRecorder())
	windows := window.NewStrategy(2, 2, time.UTC)
	return NewService(p, p, pl, c, windows, nil)
}

func testGame(id string, start time.Time, status games.GameStatus, homeID string) games.Game {
	return games.Game{
		ID:        id,
		StartTime: start,
		Status:    status,
		HomeTeam:  teams.Team{ID: homeID},
		AwayTeam:  teams.Team{ID: "away-" + id},
	}
}

func TestGamesForDateFetchesWindowOnce(t *testing.T) {
	date := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	p := &stubProvider{games: []games.Game{
		testGame("in-day", date, games.StatusScheduled, "1"),
		testGame("neighbor", date.AddDate(0, 0, 1), games.StatusScheduled, "2"),
	}}
	svc := newTestService(p)

	for i := 0; i < 3; i++ {
		day, err := svc.GamesForDate(context.Background(), date)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(day) != 1 || day[0].ID != "in-day" {
			t.Fatalf("unexpected games %+v", day)
		}
	}
	if p.calls != 1 {
		t.Fatalf("expected 1 window fetch, got %d", p.calls)
	}
	if p.lastRange != "20240313-20240317" {
		t.Fatalf("unexpected date range %q", p.lastRange)
	}
}

func TestGamesForDateDifferentDatesUseDifferentWindows(t *testing.T) {
	p := &stubProvider{}
	svc := newTestService(p)

	if _, err := svc.GamesForDate(context.Background(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GamesForDate(context.Background(), time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if p.calls != 2 {
		t.Fatalf("expected 2 window fetches, got %d", p.calls)
	}
}

func TestGamesForDateSortedAppliesDisplayOrder(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	p := &stubProvider{games: []games.Game{
		testGame("final", date.Add(18*time.Hour), games.StatusFinal, "1"),
		testGame("live", date.Add(19*time.Hour), games.StatusInProgress, "2"),
		testGame("fav", date.Add(20*time.Hour), games.StatusScheduled, "42"),
	}}
	svc := newTestService(p)

	day, err := svc.GamesForDateSorted(context.Background(), date, "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(day) != 3 {
		t.Fatalf("expected 3 games, got %d", len(day))
	}
	if day[0].ID != "fav" || day[1].ID != "live" || day[2].ID != "final" {
		t.Fatalf("unexpected order %s %s %s", day[0].ID, day[1].ID, day[2].ID)
	}
}

func TestRefreshInvalidatesOnlyCoveringWindow(t *testing.T) {
	p := &stubProvider{}
	svc := newTestService(p)

	dateA := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	dateB := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)

	if _, err := svc.GamesForDate(context.Background(), dateA); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GamesForDate(context.Background(), dateB); err != nil {
		t.Fatal(err)
	}
	if p.calls != 2 {
		t.Fatalf("expected 2 fetches after seeding, got %d", p.calls)
	}

	if _, err := svc.Refresh(context.Background(), dateA); err != nil {
		t.Fatal(err)
	}
	if p.calls != 3 {
		t.Fatalf("expected refresh to refetch once, got %d total", p.calls)
	}

	// The other window stays cached.
	if _, err := svc.GamesForDate(context.Background(), dateB); err != nil {
		t.Fatal(err)
	}
	if p.calls != 3 {
		t.Fatalf("refresh must not evict other windows, got %d fetches", p.calls)
	}
}

func TestWarmWindowPopulatesCache(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	p := &stubProvider{games: []games.Game{testGame("g", date.Add(time.Hour), games.StatusScheduled, "1")}}
	svc := newTestService(p)

	if err := svc.WarmWindow(context.Background(), date); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day, err := svc.GamesForDate(context.Background(), date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(day) != 1 {
		t.Fatalf("unexpected games %+v", day)
	}
	if p.calls != 1 {
		t.Fatalf("expected warm fetch to be reused, got %d", p.calls)
	}
}

func TestGamesForDatePropagatesFetchError(t *testing.T) {
	p := &stubProvider{err: &pipeline.RequestError{Label: "espn-scoreboard", StatusCode: 500, Err: errors.New("boom")}}
	svc := newTestService(p)

	_, err := svc.GamesForDate(context.Background(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if _, ok := pipeline.AsRequestError(err); !ok {
		t.Fatalf("expected request error, got %v", err)
	}
}

func TestGameSummaryPassthrough(t *testing.T) {
	p := &stubProvider{}
	svc := newTestService(p)

	raw, err := svc.GameSummary(context.Background(), "401")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if decoded["event"] != "401" {
		t.Fatalf("unexpected payload %v", decoded)
	}
	if p.summaries != 1 {
		t.Fatalf("expected 1 summary call, got %d", p.summaries)
	}
}
