package stats

import (
	"sort"

	"slack_shifumi/internal/domain"
	"slack_shifumi/internal/game"
)

type record struct {
	wins, losses, draws int
}

func (r record) total() int { return r.wins + r.losses + r.draws }

func tally(matches []*domain.Match) map[string]record {
	totals := make(map[string]record)
	for _, p := range plays(matches) {
		rec := totals[p.playerID]
		switch p.result {
		case game.Player1Wins:
			rec.wins++
		case game.Player2Wins:
			rec.losses++
		default:
			rec.draws++
		}
		totals[p.playerID] = rec
	}
	return totals
}

// Leaderboard ranks every player with at least MinRankedGames completed
// games by win rate, then wins, then total games.
func Leaderboard(matches []*domain.Match) []LeaderboardEntry {
	totals := tally(matches)

	entries := make([]LeaderboardEntry, 0, len(totals))
	for id, rec := range totals {
		if rec.total() < MinRankedGames {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			PlayerID:   id,
			Wins:       rec.wins,
			Losses:     rec.losses,
			Draws:      rec.draws,
			TotalGames: rec.total(),
			WinRate:    pct(rec.wins, rec.total()),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.TotalGames != b.TotalGames {
			return a.TotalGames > b.TotalGames
		}
		return a.PlayerID < b.PlayerID
	})
	return entries
}

// UnrankedPlayers lists players with at least one game but fewer than
// MinRankedGames, with how many games they still need to qualify.
func UnrankedPlayers(matches []*domain.Match) []UnrankedEntry {
	totals := tally(matches)

	entries := make([]UnrankedEntry, 0)
	for id, rec := range totals {
		t := rec.total()
		if t == 0 || t >= MinRankedGames {
			continue
		}
		entries = append(entries, UnrankedEntry{
			PlayerID:    id,
			Games:       t,
			GamesNeeded: MinRankedGames - t,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Games != entries[j].Games {
			return entries[i].Games > entries[j].Games
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	return entries
}

// UserFullStats summarizes one player's record plus their standout
// opponent relationships. Returns nil when the player has no games.
func UserFullStats(matches []*domain.Match, playerID string) *FullStats {
	var rec record
	lossesBy := make(map[string]int)
	winsOver := make(map[string]int)
	drawsWith := make(map[string]int)

	for _, p := range plays(matches) {
		if p.playerID != playerID {
			continue
		}
		switch p.result {
		case game.Player1Wins:
			rec.wins++
			winsOver[p.opponentID]++
		case game.Player2Wins:
			rec.losses++
			lossesBy[p.opponentID]++
		default:
			rec.draws++
			drawsWith[p.opponentID]++
		}
	}

	if rec.total() == 0 {
		return nil
	}

	return &FullStats{
		PlayerID:    playerID,
		Wins:        rec.wins,
		Losses:      rec.losses,
		Draws:       rec.draws,
		TotalGames:  rec.total(),
		WinRate:     pct(rec.wins, rec.total()),
		Nemesis:     topOpponent(lossesBy),
		BestAgainst: topOpponent(winsOver),
		MostDraws:   topOpponent(drawsWith),
	}
}

func topOpponent(counts map[string]int) *OpponentRecord {
	var best *OpponentRecord
	for id, n := range counts {
		if n == 0 {
			continue
		}
		if best == nil || n > best.Count || (n == best.Count && id < best.OpponentID) {
			best = &OpponentRecord{OpponentID: id, Count: n}
		}
	}
	return best
}
