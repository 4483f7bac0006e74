// Package store: PostgreSQL-backed session store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "embed"

	_ "github.com/lib/pq"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore persists sessions in a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens (and migrates) a PostgreSQL session store.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	if _, err := db.Exec(postgresMigrations); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("PostgresStore opened")
	return &PostgresStore{db: db}, nil
}

// GetOrCreate returns the session for the id, creating one in the WELCOME
// stage on first contact.
func (s *PostgresStore) GetOrCreate(sessionID string) (*models.SessionState, error) {
	if sessionID == "" {
		return nil, models.ErrEmptySessionID
	}

	var raw string
	err := s.db.QueryRow(`SELECT state FROM sessions WHERE session_id = $1`, sessionID).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		state := models.NewSessionState(sessionID)
		if err := s.Save(state); err != nil {
			return nil, err
		}
		slog.Debug("PostgresStore created session", "session_id", sessionID)
		return state, nil
	case err != nil:
		return nil, fmt.Errorf("failed to query session %s: %w", sessionID, err)
	}

	var state models.SessionState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return &state, nil
}

// Save overwrites the stored state. Idempotent upsert.
func (s *PostgresStore) Save(state *models.SessionState) error {
	if state == nil || state.SessionID == "" {
		return models.ErrEmptySessionID
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", state.SessionID, err)
	}
	_, err = s.db.Exec(`INSERT INTO sessions (session_id, state, created_at, updated_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id) DO UPDATE SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`,
		state.SessionID, string(raw), state.CreatedAt.Unix(), state.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", state.SessionID, err)
	}
	return nil
}

// Delete removes a session.
func (s *PostgresStore) Delete(sessionID string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

// Count returns the number of stored sessions.
func (s *PostgresStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
