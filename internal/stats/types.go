package stats

import (
	"math"
	"time"

	"slack_shifumi/internal/domain"
	"slack_shifumi/internal/game"
)

// MinRankedGames is how many completed games a player needs before
// appearing on the leaderboard.
const MinRankedGames = 5

// Window bounds an analytics query to matches created in [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// CurrentYear returns the calendar-year window containing now.
func CurrentYear(now time.Time) Window {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: start.AddDate(1, 0, 0)}
}

// LeaderboardEntry - строка рейтинга за период
type LeaderboardEntry struct {
	PlayerID   string  `json:"player_id"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Draws      int     `json:"draws"`
	TotalGames int     `json:"total_games"`
	WinRate    float64 `json:"win_rate"`
}

// UnrankedEntry reports a player still short of MinRankedGames.
type UnrankedEntry struct {
	PlayerID    string `json:"player_id"`
	Games       int    `json:"games"`
	GamesNeeded int    `json:"games_needed"`
}

// MoveStat is the per-gesture breakdown used by every move-level query.
// WinRate counts decisive games only; PlayRate is the share of this
// gesture among all plays in the slice it was computed over.
type MoveStat struct {
	Gesture  game.Gesture `json:"move"`
	Wins     int          `json:"wins"`
	Losses   int          `json:"losses"`
	Draws    int          `json:"draws"`
	Total    int          `json:"total_games"`
	WinRate  float64      `json:"win_rate"`
	PlayRate float64      `json:"play_rate"`
}

// MoveBreakdown splits move stats by the role the gesture was played in.
type MoveBreakdown struct {
	First  []MoveStat `json:"first"`
	Second []MoveStat `json:"second"`
}

// OpponentRecord counts one relationship against one opponent.
type OpponentRecord struct {
	OpponentID string `json:"opponent_id"`
	Count      int    `json:"count"`
}

// FullStats - полная сводка по игроку
type FullStats struct {
	PlayerID    string          `json:"player_id"`
	Wins        int             `json:"wins"`
	Losses      int             `json:"losses"`
	Draws       int             `json:"draws"`
	TotalGames  int             `json:"total_games"`
	WinRate     float64         `json:"win_rate"`
	Nemesis     *OpponentRecord `json:"nemesis,omitempty"`
	BestAgainst *OpponentRecord `json:"best_against,omitempty"`
	MostDraws   *OpponentRecord `json:"most_draws,omitempty"`
}

// HeadToHead is the two-player restriction of move stats, seen from
// the first argument's perspective.
type HeadToHead struct {
	PlayerID           string        `json:"player_id"`
	OpponentID         string        `json:"opponent_id"`
	TotalGames         int           `json:"total_games"`
	Moves              []MoveStat    `json:"moves"`
	OpponentFavorite   *game.Gesture `json:"opponent_favorite,omitempty"`
	RecommendedCounter *game.Gesture `json:"recommended_counter,omitempty"`
}

// HeadToHeadBreakdown adds the first/second-mover split and the derived
// best opening and responding gestures.
type HeadToHeadBreakdown struct {
	HeadToHead
	Breakdown   MoveBreakdown `json:"breakdown"`
	BestOpener  *MoveStat     `json:"best_opener,omitempty"`
	BestCounter *MoveStat     `json:"best_counter,omitempty"`
}

// roundPct rounds a percentage to one decimal place.
func roundPct(x float64) float64 {
	return math.Round(x*10) / 10
}

// pct computes num/den as a percentage; zero denominator reports 0.
func pct(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return roundPct(float64(num) / float64(den) * 100)
}

// play is one player's side of a completed match.
type play struct {
	playerID        string
	opponentID      string
	gesture         game.Gesture
	opponentGesture game.Gesture
	first           bool
	result          game.Outcome // normalized: Player1Wins means this side won
}

// plays flattens completed matches into one record per side. Matches
// without a second player are skipped.
func plays(matches []*domain.Match) []play {
	res := make([]play, 0, 2*len(matches))
	for _, m := range matches {
		if m.Status != domain.MatchComplete || m.Player2 == nil {
			continue
		}
		out := m.Outcome()
		res = append(res, play{
			playerID:        m.Player1ID,
			opponentID:      m.Player2.ID,
			gesture:         m.Player1Gesture,
			opponentGesture: m.Player2.Gesture,
			first:           true,
			result:          out,
		})
		res = append(res, play{
			playerID:        m.Player2.ID,
			opponentID:      m.Player1ID,
			gesture:         m.Player2.Gesture,
			opponentGesture: m.Player1Gesture,
			first:           false,
			result:          invert(out),
		})
	}
	return res
}

func invert(o game.Outcome) game.Outcome {
	switch o {
	case game.Player1Wins:
		return game.Player2Wins
	case game.Player2Wins:
		return game.Player1Wins
	}
	return game.Draw
}
