package stats

import (
	"slack_shifumi/internal/domain"
	"slack_shifumi/internal/game"
)

// moveFilter selects which plays feed a move-stat computation.
type moveFilter func(p play) bool

func anyPlay(play) bool { return true }

func byPlayer(playerID string) moveFilter {
	return func(p play) bool { return p.playerID == playerID }
}

func playedFirst(p play) bool  { return p.first }
func playedSecond(p play) bool { return !p.first }

func allOf(filters ...moveFilter) moveFilter {
	return func(p play) bool {
		for _, f := range filters {
			if !f(p) {
				return false
			}
		}
		return true
	}
}

// moveStats aggregates the filtered plays per gesture. All three
// gestures are always reported, in canonical order, so that callers
// never have to special-case an unplayed move.
func moveStats(ps []play, keep moveFilter) []MoveStat {
	byGesture := make(map[game.Gesture]*MoveStat, len(game.Gestures))
	res := make([]MoveStat, len(game.Gestures))
	for i, g := range game.Gestures {
		res[i] = MoveStat{Gesture: g}
		byGesture[g] = &res[i]
	}

	total := 0
	for _, p := range ps {
		if !keep(p) {
			continue
		}
		st := byGesture[p.gesture]
		st.Total++
		total++
		switch p.result {
		case game.Player1Wins:
			st.Wins++
		case game.Player2Wins:
			st.Losses++
		default:
			st.Draws++
		}
	}

	for i := range res {
		st := &res[i]
		st.WinRate = pct(st.Wins, st.Wins+st.Losses)
		st.PlayRate = pct(st.Total, total)
	}
	return res
}

// PlayerStats is the per-gesture breakdown of one player's games.
func PlayerStats(matches []*domain.Match, playerID string) []MoveStat {
	return moveStats(plays(matches), byPlayer(playerID))
}

// MoveStats is the global gesture meta-game over all players.
func MoveStats(matches []*domain.Match) []MoveStat {
	return moveStats(plays(matches), anyPlay)
}

// MoveStatsBreakdown splits move stats by initiator/responder role.
// Pass an empty playerID for the global breakdown.
func MoveStatsBreakdown(matches []*domain.Match, playerID string) MoveBreakdown {
	ps := plays(matches)
	first, second := moveFilter(playedFirst), moveFilter(playedSecond)
	if playerID != "" {
		first = allOf(byPlayer(playerID), playedFirst)
		second = allOf(byPlayer(playerID), playedSecond)
	}
	return MoveBreakdown{
		First:  moveStats(ps, first),
		Second: moveStats(ps, second),
	}
}

// totalPlayed sums the play counts of a move-stat slice.
func totalPlayed(stats []MoveStat) int {
	n := 0
	for _, st := range stats {
		n += st.Total
	}
	return n
}
