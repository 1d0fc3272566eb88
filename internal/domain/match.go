package domain

import (
	"time"

	"slack_shifumi/internal/game"
)

// MatchStatus - статус партии
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchComplete MatchStatus = "complete"
)

// PlayerSide holds the second player's fields. All three are set
// together when the match completes; a pending match has none of them.
type PlayerSide struct {
	ID      string
	Name    string
	Gesture game.Gesture
}

// ChallengeInfo designates the only player allowed to answer a match.
// Nil on an open match.
type ChallengeInfo struct {
	TargetID   string
	TargetName string
}

// Match - партия, центральная сущность
type Match struct {
	ID          int64
	ChannelID   string
	ChannelName string

	Player1ID      string
	Player1Name    string
	Player1Gesture game.Gesture

	// Player2 is nil while the match is pending.
	Player2 *PlayerSide

	// Challenge is nil for an open match.
	Challenge *ChallengeInfo

	Status    MatchStatus
	CreatedAt time.Time
}

// IsChallenge reports whether the match is a directed challenge.
func (m *Match) IsChallenge() bool {
	return m.Challenge != nil
}

// Outcome resolves the completed match. Call only when Player2 is set.
func (m *Match) Outcome() game.Outcome {
	return game.ResolveOutcome(m.Player1Gesture, m.Player2.Gesture)
}
