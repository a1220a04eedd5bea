package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// StoredSession is the raw persisted session. Profile is kept as the JSON
// text that was written so a corrupted slot can be detected by the reader.
type StoredSession struct {
	Profile   string    `db:"profile"`
	Token     string    `db:"token"`
	CreatedAt time.Time `db:"created_at"`
}

// SessionRepository persists the single current session slot.
type SessionRepository interface {
	Save(ctx context.Context, profile, token string) error
	Get(ctx context.Context) (*StoredSession, error)
	Clear(ctx context.Context) error
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Save(ctx context.Context, profile, token string) error {
	query := `
		INSERT INTO current_session (slot, profile, token, created_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET profile = excluded.profile, token = excluded.token, created_at = excluded.created_at
	`

	_, err := r.db.ExecContext(ctx, query, profile, token, time.Now().UTC())
	return err
}

func (r *sessionRepository) Get(ctx context.Context) (*StoredSession, error) {
	var stored StoredSession

	err := r.db.GetContext(ctx, &stored, `SELECT profile, token, created_at FROM current_session WHERE slot = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM current_session`)
	return err
}
