package providers

import (
	"context"
	"encoding/json"

	"nba-scoreboard-service/internal/domain/games"
	"nba-scoreboard-service/internal/domain/standings"
)

// ScoreboardProvider fetches normalized games for an inclusive compact date
// range ("YYYYMMDD" or "YYYYMMDD-YYYYMMDD").
type ScoreboardProvider interface {
	FetchScoreboard(ctx context.Context, dateRange string) ([]games.Game, error)
}

// StandingsProvider fetches one conference's raw standings entries by its
// upstream group id. Entries come back unranked; the aggregator ranks them.
type StandingsProvider interface {
	FetchConferenceStandings(ctx context.Context, groupID string) ([]standings.Entry, error)
}

// SummaryProvider fetches a box-score summary payload for an event id. The
// payload is passed through as-is so an upstream shape change never blocks
// the UI.
type SummaryProvider interface {
	FetchGameSummary(ctx context.Context, eventID string) (json.RawMessage, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	ScoreboardProvider
	StandingsProvider
	SummaryProvider
}
