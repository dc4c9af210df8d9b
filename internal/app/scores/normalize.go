package scores

import (
	"time"

	"nba-scoreboard-service/internal/domain/games"
	"nba-scoreboard-service/internal/timeutil"
)

// FilterToLocalDay keeps games whose start time falls on targetDate's
// calendar day in loc, dropping neighboring-day events that ride along in a
// window fetch spanning a UTC date range. Duplicate ids from overlapping
// windows are filtered first-occurrence-wins.
func FilterToLocalDay(all []games.Game, targetDate time.Time, loc *time.Location) []games.Game {
	if loc == nil {
		loc = time.UTC
	}
	day := make([]games.Game, 0, len(all))
	seen := make(map[string]struct{}, len(all))

	for _, g := range all {
		if g.StartTime.IsZero() {
			continue
		}
		if !timeutil.SameLocalDay(g.StartTime, targetDate, loc) {
			continue
		}
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		day = append(day, g)
	}
	return day
}
