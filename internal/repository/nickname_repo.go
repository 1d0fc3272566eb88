package repository

import (
	"context"
	"errors"

	"slack_shifumi/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NicknameRepository struct {
	db *pgxpool.Pool
}

func NewNicknameRepository(db *pgxpool.Pool) *NicknameRepository {
	return &NicknameRepository{db: db}
}

// Set upserts a player's nickname, refreshing updated_at on overwrite.
func (r *NicknameRepository) Set(ctx context.Context, userID, nickname, displayName string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO nicknames (user_id, nickname, display_name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id)
		 DO UPDATE SET nickname = EXCLUDED.nickname,
		               display_name = EXCLUDED.display_name,
		               updated_at = now()`,
		userID, nickname, displayName,
	)
	return err
}

// Get returns the player's nickname record, or nil when none is set.
func (r *NicknameRepository) Get(ctx context.Context, userID string) (*domain.Nickname, error) {
	var n domain.Nickname
	err := r.db.QueryRow(ctx,
		`SELECT user_id, nickname, COALESCE(display_name, ''), created_at, updated_at
		 FROM nicknames
		 WHERE user_id = $1`,
		userID,
	).Scan(&n.UserID, &n.Nickname, &n.DisplayName, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}
