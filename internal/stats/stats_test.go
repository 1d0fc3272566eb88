package stats

import (
	"testing"
	"time"

	"slack_shifumi/internal/domain"
	"slack_shifumi/internal/game"
)

var nextID int64

func completed(p1 string, g1 game.Gesture, p2 string, g2 game.Gesture) *domain.Match {
	nextID++
	return &domain.Match{
		ID:             nextID,
		ChannelID:      "C1",
		ChannelName:    "general",
		Player1ID:      p1,
		Player1Name:    p1,
		Player1Gesture: g1,
		Player2:        &domain.PlayerSide{ID: p2, Name: p2, Gesture: g2},
		Status:         domain.MatchComplete,
		CreatedAt:      time.Now(),
	}
}

func pending(p1 string, g1 game.Gesture) *domain.Match {
	nextID++
	return &domain.Match{
		ID:             nextID,
		ChannelID:      "C1",
		Player1ID:      p1,
		Player1Gesture: g1,
		Status:         domain.MatchPending,
		CreatedAt:      time.Now(),
	}
}

// repeat builds n identical completed matches.
func repeat(n int, p1 string, g1 game.Gesture, p2 string, g2 game.Gesture) []*domain.Match {
	res := make([]*domain.Match, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, completed(p1, g1, p2, g2))
	}
	return res
}

func moveStat(t *testing.T, stats []MoveStat, g game.Gesture) MoveStat {
	t.Helper()
	for _, st := range stats {
		if st.Gesture == g {
			return st
		}
	}
	t.Fatalf("no stat for %s", g)
	return MoveStat{}
}

func TestCurrentYearWindow(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	w := CurrentYear(now)

	if w.Start != time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("start = %v", w.Start)
	}
	if w.End != time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("end = %v", w.End)
	}
}

func TestPendingMatchesIgnored(t *testing.T) {
	matches := []*domain.Match{
		pending("alice", game.Rock),
		completed("alice", game.Rock, "bob", game.Scissors),
	}

	full := UserFullStats(matches, "alice")
	if full == nil || full.TotalGames != 1 || full.Wins != 1 {
		t.Fatalf("full = %+v", full)
	}
}
