package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PlayRepo struct {
	db *sql.DB
}

func NewPlayRepo(db *sql.DB) *PlayRepo {
	return &PlayRepo{db: db}
}

// Insert stores a finished session. An empty ID is filled with a new UUID.
func (r *PlayRepo) Insert(ctx context.Context, p Play) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.FinishedAt.IsZero() {
		p.FinishedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO plays (id, game, score, moves, xp_awarded, duration_ms, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Game, p.Score, p.Moves, p.XPAwarded, p.Duration.Milliseconds(), p.FinishedAt)
	if err != nil {
		return "", fmt.Errorf("play insert: %w", err)
	}
	return p.ID, nil
}

// ListRecent returns up to limit plays, newest first.
func (r *PlayRepo) ListRecent(ctx context.Context, limit int) ([]Play, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, game, score, moves, xp_awarded, duration_ms, finished_at
		FROM plays
		ORDER BY finished_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("play list: %w", err)
	}
	defer rows.Close()

	var out []Play
	for rows.Next() {
		var (
			p          Play
			durationMS int64
		)
		if err := rows.Scan(&p.ID, &p.Game, &p.Score, &p.Moves, &p.XPAwarded, &durationMS, &p.FinishedAt); err != nil {
			return nil, fmt.Errorf("play scan: %w", err)
		}
		p.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("play rows: %w", err)
	}
	return out, nil
}

func (r *PlayRepo) CountByGame(ctx context.Context, game string) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plays WHERE game = ?`, game)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("play count: %w", err)
	}
	return n, nil
}
