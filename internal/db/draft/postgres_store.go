package draftdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"atelier/internal/order"
)

// PostgresStore persists the session's draft as one row per session.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a draft store backed by Postgres.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewPostgresStoreWithSchema initializes the schema then returns the store.
func NewPostgresStoreWithSchema(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	store := NewPostgresStore(db)
	if err := store.InitSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// InitSchema creates the drafts table if it does not exist.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS order_drafts (
			session_id TEXT PRIMARY KEY,
			draft JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

// Put upserts the session's draft (last writer wins).
func (s *PostgresStore) Put(ctx context.Context, d order.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO order_drafts (session_id, draft, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_id) DO UPDATE SET draft = $2, updated_at = NOW()`,
		d.SessionID, data,
	)
	return err
}

// Get returns the session's draft, or order.ErrNoDraft when the row is absent
// or its payload no longer parses.
func (s *PostgresStore) Get(ctx context.Context, sessionID string) (order.Draft, error) {
	var raw []byte
	row := s.db.QueryRowContext(ctx, `SELECT draft FROM order_drafts WHERE session_id = $1`, sessionID)
	switch err := row.Scan(&raw); {
	case errors.Is(err, sql.ErrNoRows):
		return order.Draft{}, order.ErrNoDraft
	case err != nil:
		return order.Draft{}, err
	}

	var d order.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return order.Draft{}, order.ErrNoDraft
	}
	if d.SessionID == "" || d.Phase == "" {
		return order.Draft{}, order.ErrNoDraft
	}
	return d, nil
}

// Clear deletes the session's row. Clearing an absent row is a no-op.
func (s *PostgresStore) Clear(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM order_drafts WHERE session_id = $1`, sessionID)
	return err
}
