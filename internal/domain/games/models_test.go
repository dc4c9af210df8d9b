package games

import (
	"sort"
	"testing"
	"time"

	"nba-scoreboard-service/internal/domain/teams"
)

func game(id string, status GameStatus, start time.Time, homeID, awayID string) Game {
	return Game{
		ID:        id,
		Status:    status,
		StartTime: start,
		HomeTeam:  teams.Team{ID: homeID},
		AwayTeam:  teams.Team{ID: awayID},
	}
}

func TestLessOrdersByStatusTier(t *testing.T) {
	at := time.Date(2024, 3, 15, 19, 0, 0, 0, time.UTC)
	final := game("f", StatusFinal, at, "1", "2")
	live := game("l", StatusInProgress, at, "3", "4")
	scheduled := game("s", StatusScheduled, at, "5", "6")

	list := []Game{final, scheduled, live}
	sort.SliceStable(list, func(i, j int) bool { return Less(list[i], list[j], "") })

	if list[0].ID != "l" || list[1].ID != "s" || list[2].ID != "f" {
		t.Fatalf("unexpected order %s %s %s", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestLessBreaksTiesByStartTime(t *testing.T) {
	early := game("early", StatusScheduled, time.Date(2024, 3, 15, 19, 0, 0, 0, time.UTC), "1", "2")
	late := game("late", StatusScheduled, time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC), "3", "4")

	if !Less(early, late, "") {
		t.Fatal("earlier start must sort first within a tier")
	}
	if Less(late, early, "") {
		t.Fatal("later start must not sort first")
	}
}

func TestLessFavoriteTeamFirst(t *testing.T) {
	at := time.Date(2024, 3, 15, 19, 0, 0, 0, time.UTC)
	live := game("l", StatusInProgress, at, "1", "2")
	favFinal := game("fav", StatusFinal, at, "9", "10")

	// A finished favorite game outranks a live non-favorite game.
	if !Less(favFinal, live, "10") {
		t.Fatal("favorite game must sort before non-favorite")
	}
	// Without a favorite, status order applies.
	if Less(favFinal, live, "") {
		t.Fatal("final must not outrank live without a favorite")
	}
}

func TestLessFavoriteMatchesEitherSide(t *testing.T) {
	at := time.Date(2024, 3, 15, 19, 0, 0, 0, time.UTC)
	home := game("h", StatusScheduled, at, "42", "2")
	away := game("a", StatusScheduled, at.Add(time.Hour), "3", "42")
	other := game("o", StatusScheduled, at, "5", "6")

	if !Less(home, other, "42") || !Less(away, other, "42") {
		t.Fatal("favorite must match either home or away side")
	}
}

func TestNewDayResponse(t *testing.T) {
	resp := NewDayResponse("2024-03-15", nil)
	if resp.Date != "2024-03-15" {
		t.Fatalf("unexpected date %q", resp.Date)
	}
	if len(resp.Games) != 0 {
		t.Fatalf("unexpected games %v", resp.Games)
	}
}
