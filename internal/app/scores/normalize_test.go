package scores

import (
	"testing"
	"time"

	"nba-scoreboard-service/internal/domain/games"
	"nba-scoreboard-service/internal/domain/teams"
)

func gameAt(id string, start time.Time) games.Game {
	return games.Game{
		ID:        id,
		StartTime: start,
		Status:    games.StatusScheduled,
		HomeTeam:  teams.Team{ID: "h-" + id},
		AwayTeam:  teams.Team{ID: "a-" + id},
	}
}

func TestFilterToLocalDayUsesViewerTimezone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	all := []games.Game{
		// 23:30 UTC March 15 is 19:30 March 15 in New York.
		gameAt("evening", time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)),
		// 01:00 UTC March 16 is 21:00 March 15 in New York.
		gameAt("late", time.Date(2024, 3, 16, 1, 0, 0, 0, time.UTC)),
		// 17:00 UTC March 16 is March 16 in New York.
		gameAt("next-day", time.Date(2024, 3, 16, 17, 0, 0, 0, time.UTC)),
		// 15:00 UTC March 14 is March 14 in New York.
		gameAt("prev-day", time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC)),
	}

	target := time.Date(2024, 3, 15, 0, 0, 0, 0, ny)
	day := FilterToLocalDay(all, target, ny)

	if len(day) != 2 {
		t.Fatalf("expected 2 games, got %d: %+v", len(day), day)
	}
	if day[0].ID != "evening" || day[1].ID != "late" {
		t.Fatalf("unexpected games %s %s", day[0].ID, day[1].ID)
	}
}

func TestFilterToLocalDayUTCBoundaryDiffers(t *testing.T) {
	// The same late game lands on March 16 when the viewer is in UTC.
	late := gameAt("late", time.Date(2024, 3, 16, 1, 0, 0, 0, time.UTC))

	target := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := FilterToLocalDay([]games.Game{late}, target, time.UTC); len(got) != 0 {
		t.Fatalf("expected no games on March 15 UTC, got %+v", got)
	}

	target = time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	if got := FilterToLocalDay([]games.Game{late}, target, time.UTC); len(got) != 1 {
		t.Fatalf("expected the game on March 16 UTC, got %+v", got)
	}
}

func TestFilterToLocalDayFixedOffsetZone(t *testing.T) {
	// 23:30 UTC is 18:30 the same day at UTC-5.
	est := time.FixedZone("UTC-5", -5*60*60)
	g := gameAt("g", time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC))

	target := time.Date(2024, 3, 15, 0, 0, 0, 0, est)
	if got := FilterToLocalDay([]games.Game{g}, target, est); len(got) != 1 {
		t.Fatalf("expected game on March 15 at UTC-5, got %+v", got)
	}
}

func TestFilterToLocalDaySkipsZeroStartTimes(t *testing.T) {
	all := []games.Game{
		{ID: "no-start"},
		gameAt("ok", time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)),
	}
	target := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	day := FilterToLocalDay(all, target, time.UTC)
	if len(day) != 1 || day[0].ID != "ok" {
		t.Fatalf("unexpected games %+v", day)
	}
}

func TestFilterToLocalDayDedupes(t *testing.T) {
	start := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	a := gameAt("dup", start)
	b := gameAt("dup", start.Add(time.Hour))

	day := FilterToLocalDay([]games.Game{a, b}, start, time.UTC)
	if len(day) != 1 {
		t.Fatalf("expected 1 game, got %d", len(day))
	}
	if !day[0].StartTime.Equal(start) {
		t.Fatal("expected first occurrence to win")
	}
}

func TestFilterToLocalDayNilLocationDefaultsUTC(t *testing.T) {
	g := gameAt("g", time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	target := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	if got := FilterToLocalDay([]games.Game{g}, target, nil); len(got) != 1 {
		t.Fatalf("unexpected games %+v", got)
	}
}
