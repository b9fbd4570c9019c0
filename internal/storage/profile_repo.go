package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const MainProfileKey = "main_user"

type ProfileRepo struct {
	db  *sql.DB
	key string
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db, key: MainProfileKey}
}

// Load returns the stored profile, or nil if none has been saved yet.
func (r *ProfileRepo) Load(ctx context.Context) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT data FROM profile WHERE key = ?`, r.key)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile load: %w", err)
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("profile decode: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepo) Save(ctx context.Context, p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("profile encode: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profile (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, r.key, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("profile save: %w", err)
	}
	return nil
}

// Wipe removes the profile and the play log in one transaction.
func (r *ProfileRepo) Wipe(ctx context.Context) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM profile WHERE key = ?`, r.key); err != nil {
			return fmt.Errorf("profile wipe: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM plays`); err != nil {
			return fmt.Errorf("plays wipe: %w", err)
		}
		return nil
	})
}
