package repository

import (
	"context"
	"errors"
	"time"

	"slack_shifumi/internal/domain"
	"slack_shifumi/internal/game"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrMatchUnavailable is returned when completing a match that no longer
// exists or is no longer pending (including losing a concurrent
// completion race).
var ErrMatchUnavailable = errors.New("match not found or no longer pending")

type MatchRepository struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchColumns = `id, channel_id, channel_name,
	player1_id, player1_name, player1_move,
	player2_id, player2_name, player2_move,
	target_id, target_name, status, created_at`

// Create inserts a new pending match and fills in its id and timestamp.
func (r *MatchRepository) Create(ctx context.Context, m *domain.Match) error {
	var targetID, targetName *string
	if m.Challenge != nil {
		targetID = &m.Challenge.TargetID
		targetName = &m.Challenge.TargetName
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO matches
			(channel_id, channel_name, player1_id, player1_name, player1_move, target_id, target_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		m.ChannelID,
		m.ChannelName,
		m.Player1ID,
		m.Player1Name,
		string(m.Player1Gesture),
		targetID,
		targetName,
	).Scan(&m.ID, &m.CreatedAt)
}

// FindOpen returns the most recent pending open match in a channel,
// or nil when there is none. Directed challenges are never returned.
func (r *MatchRepository) FindOpen(ctx context.Context, channelID string) (*domain.Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE channel_id = $1
		   AND status = 'pending'
		   AND target_id IS NULL
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		channelID,
	)
	return scanMatchRow(row)
}

// FindPendingChallenge returns the most recent pending challenge between
// the two players, in either direction. Challenge keying is global, not
// scoped by channel.
func (r *MatchRepository) FindPendingChallenge(ctx context.Context, playerA, playerB string) (*domain.Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE status = 'pending'
		   AND ((player1_id = $1 AND target_id = $2) OR (player1_id = $2 AND target_id = $1))
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		playerA, playerB,
	)
	return scanMatchRow(row)
}

// GetPending returns the match by id if it is still pending, nil otherwise.
func (r *MatchRepository) GetPending(ctx context.Context, id int64) (*domain.Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE id = $1 AND status = 'pending'`,
		id,
	)
	return scanMatchRow(row)
}

// Complete sets the second player's fields and flips the match to
// complete. The update only applies while the match is still pending:
// of two concurrent callers exactly one wins, the other gets
// ErrMatchUnavailable.
func (r *MatchRepository) Complete(ctx context.Context, id int64, p2 domain.PlayerSide) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE matches
		 SET player2_id = $2, player2_name = $3, player2_move = $4, status = 'complete'
		 WHERE id = $1 AND status = 'pending'`,
		id, p2.ID, p2.Name, string(p2.Gesture),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMatchUnavailable
	}
	return nil
}

// ListCompletedBetween returns all completed matches created in
// [start, end), oldest first.
func (r *MatchRepository) ListCompletedBetween(ctx context.Context, start, end time.Time) ([]*domain.Match, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE status = 'complete'
		   AND created_at >= $1 AND created_at < $2
		 ORDER BY created_at ASC, id ASC`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatches(rows)
}

// ListPendingChallenges returns every pending directed challenge,
// newest first.
func (r *MatchRepository) ListPendingChallenges(ctx context.Context) ([]*domain.Match, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE status = 'pending' AND target_id IS NOT NULL
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatches(rows)
}

func scanMatchRow(row pgx.Row) (*domain.Match, error) {
	m, err := scanMatch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func scanMatches(rows pgx.Rows) ([]*domain.Match, error) {
	var res []*domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func scanMatch(row pgx.Row) (*domain.Match, error) {
	var (
		m          domain.Match
		move1      string
		p2ID       *string
		p2Name     *string
		p2Move     *string
		targetID   *string
		targetName *string
		status     string
	)

	if err := row.Scan(
		&m.ID, &m.ChannelID, &m.ChannelName,
		&m.Player1ID, &m.Player1Name, &move1,
		&p2ID, &p2Name, &p2Move,
		&targetID, &targetName, &status, &m.CreatedAt,
	); err != nil {
		return nil, err
	}

	m.Player1Gesture = game.Gesture(move1)
	m.Status = domain.MatchStatus(status)

	if p2ID != nil && p2Name != nil && p2Move != nil {
		m.Player2 = &domain.PlayerSide{
			ID:      *p2ID,
			Name:    *p2Name,
			Gesture: game.Gesture(*p2Move),
		}
	}
	if targetID != nil {
		tn := ""
		if targetName != nil {
			tn = *targetName
		}
		m.Challenge = &domain.ChallengeInfo{TargetID: *targetID, TargetName: tn}
	}

	return &m, nil
}
