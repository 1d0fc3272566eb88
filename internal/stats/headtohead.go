package stats

import (
	"slack_shifumi/internal/domain"
	"slack_shifumi/internal/game"
)

func versus(playerID, opponentID string) moveFilter {
	return func(p play) bool {
		return p.playerID == playerID && p.opponentID == opponentID
	}
}

// HeadToHeadStats restricts move stats to the matches between two
// players, from playerID's perspective, and derives the opponent's
// favorite gesture plus the counter that beats it. Returns nil when the
// pair has no completed games.
func HeadToHeadStats(matches []*domain.Match, playerID, opponentID string) *HeadToHead {
	ps := plays(matches)
	mine := moveStats(ps, versus(playerID, opponentID))

	total := totalPlayed(mine)
	if total == 0 {
		return nil
	}

	h := &HeadToHead{
		PlayerID:   playerID,
		OpponentID: opponentID,
		TotalGames: total,
		Moves:      mine,
	}

	theirs := moveStats(ps, versus(opponentID, playerID))
	if fav := favoriteGesture(theirs); fav != nil {
		counter := game.Counter(*fav)
		h.OpponentFavorite = fav
		h.RecommendedCounter = &counter
	}
	return h
}

// HeadToHeadBreakdownStats adds the first/second-mover split and the
// most effective opening and responding gestures.
func HeadToHeadBreakdownStats(matches []*domain.Match, playerID, opponentID string) *HeadToHeadBreakdown {
	h := HeadToHeadStats(matches, playerID, opponentID)
	if h == nil {
		return nil
	}

	ps := plays(matches)
	mine := versus(playerID, opponentID)
	first := moveStats(ps, allOf(mine, playedFirst))
	second := moveStats(ps, allOf(mine, playedSecond))

	return &HeadToHeadBreakdown{
		HeadToHead:  *h,
		Breakdown:   MoveBreakdown{First: first, Second: second},
		BestOpener:  bestMove(first),
		BestCounter: bestMove(second),
	}
}

// favoriteGesture picks the most played gesture; ties resolve in
// canonical order. Nil when nothing was played.
func favoriteGesture(stats []MoveStat) *game.Gesture {
	var best *MoveStat
	for i := range stats {
		st := &stats[i]
		if st.Total == 0 {
			continue
		}
		if best == nil || st.Total > best.Total {
			best = st
		}
	}
	if best == nil {
		return nil
	}
	g := best.Gesture
	return &g
}

// bestMove picks the gesture with the highest win rate, breaking ties
// on play count. Nil when the role has no plays.
func bestMove(stats []MoveStat) *MoveStat {
	var best *MoveStat
	for i := range stats {
		st := &stats[i]
		if st.Total == 0 {
			continue
		}
		if best == nil || st.WinRate > best.WinRate ||
			(st.WinRate == best.WinRate && st.Total > best.Total) {
			best = st
		}
	}
	if best == nil {
		return nil
	}
	cp := *best
	return &cp
}
