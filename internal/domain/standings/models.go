package standings

import (
	"fmt"
	"math"
	"sort"

	"nba-scoreboard-service/internal/domain/teams"
)

// Well-known stat names carried on a standings entry.
const (
	StatWins        = "wins"
	StatLosses      = "losses"
	StatWinPercent  = "winPercent"
	StatGamesBehind = "gamesBehind"
)

// Stat is a single named statistic with a raw value and display string.
type Stat struct {
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation,omitempty"`
	Value        float64 `json:"value"`
	DisplayValue string  `json:"displayValue"`
}

// Entry couples a team with its ordered stat list.
type Entry struct {
	Team  teams.Team `json:"team"`
	Stats []Stat     `json:"stats"`
}

// Conference is one ranked group of entries. Position in Entries is the rank.
type Conference struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation,omitempty"`
	Entries      []Entry `json:"standings"`
}

// Standings is the full ranked structure returned to the UI.
type Standings struct {
	Conferences []Conference `json:"conferences"`
}

// Empty reports whether no conference produced any entries.
func (s Standings) Empty() bool {
	for _, c := range s.Conferences {
		if len(c.Entries) > 0 {
			return false
		}
	}
	return true
}

// Stat returns the named stat when present.
func (e Entry) Stat(name string) (Stat, bool) {
	for _, s := range e.Stats {
		if s.Name == name {
			return s, true
		}
	}
	return Stat{}, false
}

// Wins returns the wins stat value, defaulting to 0 when absent.
func (e Entry) Wins() int {
	if s, ok := e.Stat(StatWins); ok {
		return int(s.Value)
	}
	return 0
}

// Losses returns the losses stat value, defaulting to 0 when absent.
func (e Entry) Losses() int {
	if s, ok := e.Stat(StatLosses); ok {
		return int(s.Value)
	}
	return 0
}

// WinPercent returns the win percentage stat value, defaulting to 0 when absent.
func (e Entry) WinPercent() float64 {
	if s, ok := e.Stat(StatWinPercent); ok {
		return s.Value
	}
	return 0
}

func (e *Entry) setStat(stat Stat) {
	for i, s := range e.Stats {
		if s.Name == stat.Name {
			e.Stats[i] = stat
			return
		}
	}
	e.Stats = append(e.Stats, stat)
}

// Rank sorts entries by win percentage descending and recomputes games-behind
// relative to the leader. The input slice is not modified.
func Rank(entries []Entry) []Entry {
	ranked := make([]Entry, len(entries))
	for i, e := range entries {
		ranked[i] = e
		// setStat below writes through the stat slice, so it must be ours.
		ranked[i].Stats = append([]Stat(nil), e.Stats...)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WinPercent() > ranked[j].WinPercent()
	})

	if len(ranked) == 0 {
		return ranked
	}

	leader := ranked[0]
	for i := range ranked {
		gb := GamesBehind(leader.Wins(), leader.Losses(), ranked[i].Wins(), ranked[i].Losses())
		ranked[i].setStat(Stat{
			Name:         StatGamesBehind,
			Abbreviation: "GB",
			Value:        gb,
			DisplayValue: FormatGamesBehind(gb),
		})
	}
	return ranked
}

// GamesBehind is the standard standings metric: half the combined win/loss
// differential against the leader.
func GamesBehind(leaderWins, leaderLosses, wins, losses int) float64 {
	return (float64(leaderWins-wins) + float64(losses-leaderLosses)) / 2
}

// FormatGamesBehind renders a games-behind value: "-" for zero, an integer for
// whole values, otherwise one decimal place.
func FormatGamesBehind(gb float64) string {
	if gb == 0 {
		return "-"
	}
	if gb == math.Trunc(gb) {
		return fmt.Sprintf("%d", int(gb))
	}
	return fmt.Sprintf("%.1f", gb)
}
