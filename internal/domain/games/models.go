package games

import (
	"time"

	"nba-scoreboard-service/internal/domain/teams"
)

// GameStatus mirrors the shared contract for game lifecycle states.
// Transitions only move forward: scheduled -> in-progress -> final.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
)

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Game is the canonical game shape exposed by the service.
type Game struct {
	ID           string     `json:"id"`
	Provider     string     `json:"provider"`
	StartTime    time.Time  `json:"startTime"`
	Status       GameStatus `json:"status"`
	HomeTeam     teams.Team `json:"homeTeam"`
	AwayTeam     teams.Team `json:"awayTeam"`
	Score        *Score     `json:"score,omitempty"`
	Period       int        `json:"period,omitempty"`
	DisplayClock string     `json:"displayClock,omitempty"`
	Venue        string     `json:"venue,omitempty"`
}

// DayResponse is the payload returned by /scores?date=YYYY-MM-DD.
type DayResponse struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}

// NewDayResponse builds a DayResponse payload.
func NewDayResponse(date string, list []Game) DayResponse {
	return DayResponse{
		Date:  date,
		Games: list,
	}
}

// statusTier orders statuses for display: live first, then upcoming, then finished.
func statusTier(s GameStatus) int {
	switch s {
	case StatusInProgress:
		return 0
	case StatusScheduled:
		return 1
	default:
		return 2
	}
}

// Less orders games for display: games involving the favorite team first,
// then by status tier, ties broken by start time.
func Less(a, b Game, favoriteTeamID string) bool {
	fa := involves(a, favoriteTeamID)
	fb := involves(b, favoriteTeamID)
	if fa != fb {
		return fa
	}
	ta, tb := statusTier(a.Status), statusTier(b.Status)
	if ta != tb {
		return ta < tb
	}
	return a.StartTime.Before(b.StartTime)
}

func involves(g Game, teamID string) bool {
	if teamID == "" {
		return false
	}
	return g.HomeTeam.ID == teamID || g.AwayTeam.ID == teamID
}
