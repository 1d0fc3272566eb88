package service

import (
	"context"
	"time"

	"slack_shifumi/internal/domain"
	"slack_shifumi/internal/stats"
)

// MatchHistory is the read contract of the analytics engine: completed
// matches for an explicit time window.
type MatchHistory interface {
	ListCompletedBetween(ctx context.Context, start, end time.Time) ([]*domain.Match, error)
}

// StatsService runs the aggregation queries over windowed match
// history. All derivation is done in memory so the engine stays
// deterministic under a fixed window.
type StatsService struct {
	history MatchHistory
}

func NewStatsService(history MatchHistory) *StatsService {
	return &StatsService{history: history}
}

func (s *StatsService) fetch(ctx context.Context, w stats.Window) ([]*domain.Match, error) {
	return s.history.ListCompletedBetween(ctx, w.Start, w.End)
}

func (s *StatsService) Leaderboard(ctx context.Context, w stats.Window) ([]stats.LeaderboardEntry, error) {
	matches, err := s.fetch(ctx, w)
	if err != nil {
		return nil, err
	}
	return stats.Leaderboard(matches), nil
}

func (s *StatsService) UnrankedPlayers(ctx context.Context, w stats.Window) ([]stats.UnrankedEntry, error) {
	matches, err := s.fetch(ctx, w)
	if err != nil {
		return nil, err
	}
	return stats.UnrankedPlayers(matches), nil
}

func (s *StatsService) PlayerStats(ctx context.Context, w stats.Window, playerID string) ([]stats.MoveStat, error) {
	matches, err := s.fetch(ctx, w)
	if err != nil {
		return nil, err
	}
	return stats.PlayerStats(matches, playerID), nil
}

func (s *StatsService) MoveStats(ctx context.Context, w stats.Window) ([]stats.MoveStat, error) {
	matches, err := s.fetch(ctx, w)
	if err != nil {
		return nil, err
	}
	return stats.MoveStats(matches), nil
}

// MoveStatsBreakdown splits the stats by initiator/responder role.
// An empty playerID means the global meta-game.
func (s *StatsService) MoveStatsBreakdown(ctx context.Context, w stats.Window, playerID string) (stats.MoveBreakdown, error) {
	matches, err := s.fetch(ctx, w)
	if err != nil {
		return stats.MoveBreakdown{}, err
	}
	return stats.MoveStatsBreakdown(matches, playerID), nil
}

func (s *StatsService) UserFullStats(ctx context.Context, w stats.Window, playerID string) (*stats.FullStats, error) {
	matches, err := s.fetch(ctx, w)
	if err != nil {
		return nil, err
	}
	return stats.UserFullStats(matches, playerID), nil
}

func (s *StatsService) HeadToHead(ctx context.Context, w stats.Window, playerID, opponentID string) (*stats.HeadToHead, error) {
	matches, err := s.fetch(ctx, w)
	if err != nil {
		return nil, err
	}
	return stats.HeadToHeadStats(matches, playerID, opponentID), nil
}

func (s *StatsService) HeadToHeadBreakdown(ctx context.Context, w stats.Window, playerID, opponentID string) (*stats.HeadToHeadBreakdown, error) {
	matches, err := s.fetch(ctx, w)
	if err != nil {
		return nil, err
	}
	return stats.HeadToHeadBreakdownStats(matches, playerID, opponentID), nil
}
