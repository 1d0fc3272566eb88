package game

import (
	"fmt"
	"strings"
)

// Gesture - один из трёх канонических жестов
type Gesture string

const (
	Rock     Gesture = "ROCK"
	Paper    Gesture = "PAPER"
	Scissors Gesture = "SCISSORS"
)

// Gestures lists the canonical gestures in display order.
var Gestures = []Gesture{Rock, Paper, Scissors}

// ErrInvalidGesture is returned when an input token maps to no gesture.
type ErrInvalidGesture struct {
	Input string
}

func (e *ErrInvalidGesture) Error() string {
	return fmt.Sprintf("invalid gesture %q (accepted: %s, %s, %s)", e.Input, Rock, Paper, Scissors)
}

// aliases maps every accepted input token (uppercased) to a gesture.
// Covers the canonical English tokens, the French ones and the
// emoji-style variants used in chat.
var aliases = map[string]Gesture{
	"ROCK":       Rock,
	":ROCK:":     Rock,
	"PIERRE":     Rock,
	"CAILLOU":    Rock,
	"CAILLOUX":   Rock,
	":CAILLOU:":  Rock,
	"PAPER":      Paper,
	"FEUILLE":    Paper,
	"FEUILLES":   Paper,
	":LEAVES:":   Paper,
	":FEUILLE:":  Paper,
	"SCISSORS":   Scissors,
	"CISEAUX":    Scissors,
	":SCISSORS:": Scissors,
	":CISEAUX:":  Scissors,
}

// ParseGesture normalizes a raw chat token to a Gesture.
func ParseGesture(text string) (Gesture, error) {
	token := strings.ToUpper(strings.TrimSpace(text))
	g, ok := aliases[token]
	if !ok {
		return "", &ErrInvalidGesture{Input: text}
	}
	return g, nil
}

// Emoji returns the Slack emoji token for the gesture.
func (g Gesture) Emoji() string {
	switch g {
	case Rock:
		return ":rock:"
	case Paper:
		return ":leaves:"
	case Scissors:
		return ":scissors:"
	}
	return ""
}

// beats maps each gesture to the gesture it defeats.
var beats = map[Gesture]Gesture{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

// Counter returns the gesture that defeats g.
func Counter(g Gesture) Gesture {
	switch g {
	case Rock:
		return Paper
	case Paper:
		return Scissors
	default:
		return Rock
	}
}

// Outcome of a completed match, seen from player 1.
type Outcome int

const (
	Draw Outcome = iota
	Player1Wins
	Player2Wins
)

// ResolveOutcome decides a match over the fixed cycle
// ROCK > SCISSORS, PAPER > ROCK, SCISSORS > PAPER.
// Every completion path and every aggregation must go through here.
func ResolveOutcome(g1, g2 Gesture) Outcome {
	if g1 == g2 {
		return Draw
	}
	if beats[g1] == g2 {
		return Player1Wins
	}
	return Player2Wins
}
