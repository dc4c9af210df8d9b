package espn

import (
	"strconv"
	"strings"
	"time"

	"nba-scoreboard-service/internal/domain/games"
	"nba-scoreboard-service/internal/domain/standings"
	"nba-scoreboard-service/internal/domain/teams"
)

// eventDateLayout matches the upstream's minute-precision RFC3339 variant.
const eventDateLayout = "2006-01-02T15:04Z07:00"

// statusTable maps the provider's status vocabulary to the three-state enum.
// Unrecognized statuses default to scheduled.
var statusTable = map[string]games.GameStatus{
	"STATUS_SCHEDULED":     games.StatusScheduled,
	"STATUS_IN_PROGRESS":   games.StatusInProgress,
	"STATUS_HALFTIME":      games.StatusInProgress,
	"STATUS_END_OF_PERIOD": games.StatusInProgress,
	"STATUS_FINAL":         games.StatusFinal,
	"STATUS_FINAL_OT":      games.StatusFinal,
}

// mapScoreboard shapes raw events into games. Malformed events are dropped
// and duplicate event ids are filtered first-occurrence-wins, since
// overlapping window fetches can repeat events.
func mapScoreboard(payload scoreboardResponse) []games.Game {
	result := make([]games.Game, 0, len(payload.Events))
	seen := make(map[string]struct{}, len(payload.Events))

	for _, ev := range payload.Events {
		game, ok := mapEvent(ev)
		if !ok {
			continue
		}
		if _, dup := seen[game.ID]; dup {
			continue
		}
		seen[game.ID] = struct{}{}
		result = append(result, game)
	}
	return result
}

func mapEvent(ev eventResponse) (games.Game, bool) {
	if ev.ID == "" || len(ev.Competitions) == 0 {
		return games.Game{}, false
	}
	comp := ev.Competitions[0]
	if len(comp.Competitors) < 2 {
		return games.Game{}, false
	}

	home, away := resolveSides(comp.Competitors)

	game := games.Game{
		ID:           ev.ID,
		Provider:     ProviderName,
		StartTime:    parseEventDate(ev.Date),
		Status:       mapStatus(ev.Status.Type.Name),
		HomeTeam:     mapTeam(home),
		AwayTeam:     mapTeam(away),
		Score:        mapScore(home, away),
		Period:       ev.Status.Period,
		DisplayClock: ev.Status.DisplayClock,
		Venue:        comp.Venue.FullName,
	}
	return game, true
}

// resolveSides picks home and away by the homeAway role tag, falling back to
// positional order when the tag is absent: first entry away, second home.
func resolveSides(competitors []competitorResponse) (home, away competitorResponse) {
	away, home = competitors[0], competitors[1]
	for _, c := range competitors {
		switch strings.ToLower(c.HomeAway) {
		case "home":
			home = c
		case "away":
			away = c
		}
	}
	return home, away
}

func mapStatus(name string) games.GameStatus {
	if status, ok := statusTable[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return status
	}
	return games.StatusScheduled
}

// mapScore returns a score only when both sides report one.
func mapScore(home, away competitorResponse) *games.Score {
	if home.Score == "" || away.Score == "" {
		return nil
	}
	h, errH := strconv.Atoi(home.Score)
	a, errA := strconv.Atoi(away.Score)
	if errH != nil || errA != nil {
		return nil
	}
	return &games.Score{Home: h, Away: a}
}

func mapTeam(c competitorResponse) teams.Team {
	name := c.Team.Name
	if name == "" {
		name = c.Team.DisplayName
	}
	return teams.Team{
		ID:             c.Team.ID,
		Name:           name,
		DisplayName:    c.Team.DisplayName,
		Abbreviation:   c.Team.Abbreviation,
		Logo:           c.Team.Logo,
		Color:          c.Team.Color,
		AlternateColor: c.Team.AlternateColor,
		Record:         mapRecord(c.Records),
	}
}

// mapRecord parses a "W-L" summary like "50-30" into a record.
func mapRecord(records []recordResponse) *teams.Record {
	if len(records) == 0 {
		return nil
	}
	parts := strings.SplitN(records[0].Summary, "-", 2)
	if len(parts) != 2 {
		return nil
	}
	wins, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	losses, errL := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errL != nil {
		return nil
	}
	return &teams.Record{Wins: wins, Losses: losses}
}

// parseEventDate parses the upstream event timestamp, zero time when invalid.
func parseEventDate(raw string) time.Time {
	if t, err := time.Parse(eventDateLayout, raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}

// mapStandingsEntries shapes raw entries. Entries with no team id are dropped
// rather than failing the batch.
func mapStandingsEntries(raw []standingsEntryResponse) []standings.Entry {
	entries := make([]standings.Entry, 0, len(raw))
	for _, e := range raw {
		if e.Team.ID == "" {
			continue
		}
		entries = append(entries, standings.Entry{
			Team:  mapStandingsTeam(e.Team),
			Stats: mapStats(e.Stats),
		})
	}
	return entries
}

func mapStandingsTeam(t standingsTeamResponse) teams.Team {
	logo := ""
	if len(t.Logos) > 0 {
		logo = t.Logos[0].Href
	}
	return teams.Team{
		ID:             t.ID,
		Name:           t.Name,
		DisplayName:    t.DisplayName,
		Abbreviation:   t.Abbreviation,
		Logo:           logo,
		Color:          t.Color,
		AlternateColor: t.AlternateColor,
	}
}

// mapStats copies named stats, backfilling the core trio with zero defaults
// so a missing stat never fails the batch.
func mapStats(raw []statResponse) []standings.Stat {
	stats := make([]standings.Stat, 0, len(raw))
	for _, s := range raw {
		if s.Name == "" {
			continue
		}
		stats = append(stats, standings.Stat{
			Name:         s.Name,
			Abbreviation: s.Abbreviation,
			Value:        s.Value,
			DisplayValue: s.DisplayValue,
		})
	}
	ensureStat(&stats, standings.StatWins, "W", "0")
	ensureStat(&stats, standings.StatLosses, "L", "0")
	ensureStat(&stats, standings.StatWinPercent, "PCT", ".000")
	return stats
}

func ensureStat(stats *[]standings.Stat, name, abbrev, display string) {
	for _, s := range *stats {
		if s.Name == name {
			return
		}
	}
	*stats = append(*stats, standings.Stat{
		Name:         name,
		Abbreviation: abbrev,
		Value:        0,
		DisplayValue: display,
	})
}
