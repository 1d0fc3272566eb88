package service

import (
	"context"
	"errors"

	"slack_shifumi/internal/domain"
	"slack_shifumi/internal/game"
	"slack_shifumi/internal/logger"
	"slack_shifumi/internal/repository"
)

var (
	ErrSelfPlay           = errors.New("cannot play against yourself")
	ErrChallengeNotFound  = errors.New("challenge not found or expired")
	ErrNotChallengeTarget = errors.New("challenge is directed at another player")
	ErrChallengePending   = errors.New("a challenge between these players is already pending")
	ErrMatchUnavailable   = repository.ErrMatchUnavailable
)

// MatchStore is the persistence contract the match engine needs.
type MatchStore interface {
	Create(ctx context.Context, m *domain.Match) error
	FindOpen(ctx context.Context, channelID string) (*domain.Match, error)
	FindPendingChallenge(ctx context.Context, playerA, playerB string) (*domain.Match, error)
	GetPending(ctx context.Context, id int64) (*domain.Match, error)
	Complete(ctx context.Context, id int64, p2 domain.PlayerSide) error
	ListPendingChallenges(ctx context.Context) ([]*domain.Match, error)
}

// MatchService owns the match lifecycle: creating open matches and
// challenges, and resolving them into outcomes.
type MatchService struct {
	store MatchStore
}

func NewMatchService(store MatchStore) *MatchService {
	return &MatchService{store: store}
}

// PlayResult reports what a move did.
type PlayResult struct {
	Match *domain.Match
	// Started is true when the move opened a new match instead of
	// completing one. Outcome is only meaningful when Started is false.
	Started bool
	Outcome game.Outcome
}

// Play handles a plain move in a channel: it completes the most recent
// open match there, or starts a new one when none is pending.
func (s *MatchService) Play(ctx context.Context, channelID, channelName, userID, userName string, g game.Gesture) (*PlayResult, error) {
	open, err := s.store.FindOpen(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if open == nil {
		m := &domain.Match{
			ChannelID:      channelID,
			ChannelName:    channelName,
			Player1ID:      userID,
			Player1Name:    userName,
			Player1Gesture: g,
			Status:         domain.MatchPending,
		}
		if err := s.store.Create(ctx, m); err != nil {
			return nil, err
		}
		logger.Info("match started", "match_id", m.ID, "channel", channelID, "player", userID)
		return &PlayResult{Match: m, Started: true}, nil
	}

	return s.complete(ctx, open, userID, userName, g)
}

// Challenge opens a directed challenge. Only the target will be able to
// answer it. At most one pending challenge may exist per player pair.
func (s *MatchService) Challenge(ctx context.Context, channelID, channelName, challengerID, challengerName, targetID, targetName string, g game.Gesture) (*domain.Match, error) {
	if challengerID == targetID {
		return nil, ErrSelfPlay
	}

	existing, err := s.store.FindPendingChallenge(ctx, challengerID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrChallengePending
	}

	m := &domain.Match{
		ChannelID:      channelID,
		ChannelName:    channelName,
		Player1ID:      challengerID,
		Player1Name:    challengerName,
		Player1Gesture: g,
		Challenge:      &domain.ChallengeInfo{TargetID: targetID, TargetName: targetName},
		Status:         domain.MatchPending,
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	logger.Info("challenge created", "match_id", m.ID, "challenger", challengerID, "target", targetID)
	return m, nil
}

// AnswerChallenge completes the pending challenge between the responder
// and the challenger. The responder must be the designated target.
func (s *MatchService) AnswerChallenge(ctx context.Context, challengerID, responderID, responderName string, g game.Gesture) (*PlayResult, error) {
	m, err := s.store.FindPendingChallenge(ctx, challengerID, responderID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrChallengeNotFound
	}
	return s.complete(ctx, m, responderID, responderName, g)
}

// CompleteByID re-validates a match referenced directly (interactive
// button payloads carry the match id) and completes it.
func (s *MatchService) CompleteByID(ctx context.Context, matchID int64, userID, userName string, g game.Gesture) (*PlayResult, error) {
	m, err := s.store.GetPending(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchUnavailable
	}
	return s.complete(ctx, m, userID, userName, g)
}

// complete runs the single permitted transition on a pending match,
// enforcing self-play and challenge-target rules first. The store-level
// conditional update decides concurrent races.
func (s *MatchService) complete(ctx context.Context, m *domain.Match, userID, userName string, g game.Gesture) (*PlayResult, error) {
	if m.Player1ID == userID {
		return nil, ErrSelfPlay
	}
	if m.Challenge != nil && m.Challenge.TargetID != userID {
		return nil, ErrNotChallengeTarget
	}

	p2 := domain.PlayerSide{ID: userID, Name: userName, Gesture: g}
	if err := s.store.Complete(ctx, m.ID, p2); err != nil {
		return nil, err
	}

	m.Player2 = &p2
	m.Status = domain.MatchComplete
	out := m.Outcome()
	logger.Info("match complete", "match_id", m.ID, "player1", m.Player1ID, "player2", userID, "outcome", out)
	return &PlayResult{Match: m, Outcome: out}, nil
}

// FindOpenMatch exposes the open-match lookup for callers that only
// need to peek (no state change).
func (s *MatchService) FindOpenMatch(ctx context.Context, channelID string) (*domain.Match, error) {
	return s.store.FindOpen(ctx, channelID)
}

// LookupMatch returns the match if it is still pending, nil otherwise.
func (s *MatchService) LookupMatch(ctx context.Context, matchID int64) (*domain.Match, error) {
	return s.store.GetPending(ctx, matchID)
}

// PendingChallenges lists every open directed challenge, newest first.
func (s *MatchService) PendingChallenges(ctx context.Context) ([]*domain.Match, error) {
	return s.store.ListPendingChallenges(ctx)
}
