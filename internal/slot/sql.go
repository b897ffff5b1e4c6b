package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dtroode/jobboard/internal/model"
)

var _ model.TokenSlot = (*SQL)(nil)

// SQL keeps the token in the token_slots table under a fixed key.
type SQL struct {
	db  *sql.DB
	key string
}

// OpenSQL opens a postgres handle through the pgx stdlib driver.
func OpenSQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	return db, nil
}

// NewSQL creates a slot stored under key.
func NewSQL(db *sql.DB, key string) *SQL {
	if key == "" {
		key = DefaultKey
	}
	return &SQL{db: db, key: key}
}

func (s *SQL) Load(ctx context.Context) (string, bool, error) {
	const query = `SELECT token FROM token_slots WHERE slot_key = $1`

	var token string
	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load token slot: %w", err)
	}
	return token, token != "", nil
}

func (s *SQL) Store(ctx context.Context, token string) error {
	const query = `
        INSERT INTO token_slots (slot_key, token, updated_at) VALUES ($1, $2, NOW())
        ON CONFLICT (slot_key) DO UPDATE SET token = EXCLUDED.token, updated_at = NOW()
    `
	if _, err := s.db.ExecContext(ctx, query, s.key, token); err != nil {
		return fmt.Errorf("failed to store token slot: %w", err)
	}
	return nil
}

func (s *SQL) Clear(ctx context.Context) error {
	const query = `DELETE FROM token_slots WHERE slot_key = $1`
	if _, err := s.db.ExecContext(ctx, query, s.key); err != nil {
		return fmt.Errorf("failed to clear token slot: %w", err)
	}
	return nil
}
