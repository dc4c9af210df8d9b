package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"nba-scoreboard-service/internal/domain/games"
	"nba-scoreboard-service/internal/domain/standings"
	"nba-scoreboard-service/internal/domain/teams"
)

// Provider returns a static data set useful for local testing and
// bootstrapping without hitting the upstream API.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchScoreboard returns a deterministic pair of games anchored on today.
func (p *Provider) FetchScoreboard(ctx context.Context, dateRange string) ([]games.Game, error) {
	_ = ctx
	_ = dateRange

	start := p.now().UTC().Truncate(time.Hour)

	return []games.Game{
		{
			ID:        "fixture-1",
			Provider:  "fixture",
			StartTime: start.Add(2 * time.Hour),
			Status:    games.StatusScheduled,
			HomeTeam:  teams.Team{ID: "2", Name: "Celtics", DisplayName: "Boston Celtics", Abbreviation: "BOS", Color: "007A33"},
			AwayTeam:  teams.Team{ID: "13", Name: "Lakers", DisplayName: "Los Angeles Lakers", Abbreviation: "LAL", Color: "552583"},
			Venue:     "TD Garden",
		},
		{
			ID:        "fixture-2",
			Provider:  "fixture",
			StartTime: start.Add(4 * time.Hour),
			Status:    games.StatusInProgress,
			HomeTeam:  teams.Team{ID: "9", Name: "Warriors", DisplayName: "Golden State Warriors", Abbreviation: "GSW", Color: "1D428A"},
			AwayTeam:  teams.Team{ID: "14", Name: "Heat", DisplayName: "Miami Heat", Abbreviation: "MIA", Color: "98002E"},
			Score:     &games.Score{Home: 58, Away: 61},
			Period:    2,
			Venue:     "Chase Center",
		},
	}, nil
}

// FetchConferenceStandings returns a deterministic unranked entry set.
func (p *Provider) FetchConferenceStandings(ctx context.Context, groupID string) ([]standings.Entry, error) {
	_ = ctx

	if groupID == "6" {
		return []standings.Entry{
			entry(teams.Team{ID: "25", Name: "Thunder", DisplayName: "Oklahoma City Thunder", Abbreviation: "OKC"}, 57, 25, 0.695),
			entry(teams.Team{ID: "16", Name: "Timberwolves", DisplayName: "Minnesota Timberwolves", Abbreviation: "MIN"}, 56, 26, 0.683),
		}, nil
	}
	return []standings.Entry{
		entry(teams.Team{ID: "2", Name: "Celtics", DisplayName: "Boston Celtics", Abbreviation: "BOS"}, 64, 18, 0.780),
		entry(teams.Team{ID: "18", Name: "Knicks", DisplayName: "New York Knicks", Abbreviation: "NYK"}, 50, 32, 0.610),
	}, nil
}

// FetchGameSummary returns a minimal summary payload.
func (p *Provider) FetchGameSummary(ctx context.Context, eventID string) (json.RawMessage, error) {
	_ = ctx
	payload := map[string]any{
		"header":    map[string]any{"id": eventID},
		"boxscore":  map[string]any{"teams": []any{}},
		"provider":  "fixture",
		"generated": p.now().UTC().Format(time.RFC3339),
	}
	return json.Marshal(payload)
}

func entry(team teams.Team, wins, losses int, pct float64) standings.Entry {
	return standings.Entry{
		Team: team,
		Stats: []standings.Stat{
			{Name: standings.StatWins, Abbreviation: "W", Value: float64(wins), DisplayValue: strconv.Itoa(wins)},
			{Name: standings.StatLosses, Abbreviation: "L", Value: float64(losses), DisplayValue: strconv.Itoa(losses)},
			{Name: standings.StatWinPercent, Abbreviation: "PCT", Value: pct, DisplayValue: fmt.Sprintf(".%03d", int(math.Round(pct*1000)))},
		},
	}
}
