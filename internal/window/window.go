package window

import (
	"time"

	"nba-scoreboard-service/internal/timeutil"
)

const (
	// DefaultDaysBefore/After give a 5-day span: one network round trip
	// serves every date the user is likely to navigate to next.
	DefaultDaysBefore = 2
	DefaultDaysAfter  = 2
)

// Strategy maps an arbitrary calendar date to its fetch window and a stable
// cache key, so repeated views of a date reuse one fetch and nearby dates
// arrive in the same payload.
type Strategy struct {
	DaysBefore int
	DaysAfter  int
	Loc        *time.Location
}

// Window is a contiguous calendar-day span used as the unit of fetching and
// caching. Adjacent windows overlap so no boundary game is missed; each is
// independently keyed.
type Window struct {
	Start time.Time
	End   time.Time
	Key   string
}

// NewStrategy builds a Strategy, applying defaults for negative spans and a
// nil location (UTC).
func NewStrategy(daysBefore, daysAfter int, loc *time.Location) Strategy {
	if daysBefore < 0 {
		daysBefore = DefaultDaysBefore
	}
	if daysAfter < 0 {
		daysAfter = DefaultDaysAfter
	}
	if loc == nil {
		loc = time.UTC
	}
	return Strategy{DaysBefore: daysBefore, DaysAfter: daysAfter, Loc: loc}
}

// For computes the window covering date: the date is normalized to the start
// of its calendar day in the viewer's location, then extended DaysBefore back
// and DaysAfter forward. The key is the compact start date.
func (s Strategy) For(date time.Time) Window {
	loc := s.Loc
	if loc == nil {
		loc = time.UTC
	}
	anchor := timeutil.StartOfDay(date, loc)
	start := anchor.AddDate(0, 0, -s.DaysBefore)
	end := anchor.AddDate(0, 0, s.DaysAfter)
	return Window{
		Start: start,
		End:   end,
		Key:   timeutil.FormatCompactDate(start),
	}
}

// DateRange renders the inclusive span as the upstream's dates parameter,
// e.g. "20240313-20240317".
func (w Window) DateRange() string {
	return timeutil.FormatCompactDate(w.Start) + "-" + timeutil.FormatCompactDate(w.End)
}

// Contains reports whether t falls on a calendar day inside the window.
func (w Window) Contains(t time.Time) bool {
	day := timeutil.StartOfDay(t, w.Start.Location())
	return !day.Before(w.Start) && !day.After(w.End)
}
