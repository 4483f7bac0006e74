// Package store provides session storage backends for HudumaFinder.
//
// The default backend is in-memory with process-lifetime retention; SQLite
// and PostgreSQL backends persist session state across restarts using the
// SessionState JSON shape as the serialization contract. Individual
// SessionState mutation is serialized per session by the conversation
// engine; the store only synchronizes map/connection access.
package store

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

// Store is the session store contract: lookup-or-create plus idempotent
// overwrite, keyed by session id.
type Store interface {
	// GetOrCreate returns the session for the id, creating a fresh
	// WELCOME-stage session if none exists.
	GetOrCreate(sessionID string) (*models.SessionState, error)

	// Save overwrites the stored state for the session. Idempotent.
	Save(state *models.SessionState) error

	// Delete removes a session (explicit reset path).
	Delete(sessionID string) error

	// Count returns the number of known sessions.
	Count() (int, error)

	// Close releases any underlying resources.
	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	DSN string
}

// Option defines a configuration option for a store backend.
type Option func(*Opts)

// WithSQLiteDSN sets a SQLite database file path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithPostgresDSN sets a PostgreSQL connection string.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// DetectDSNType reports "postgres" for PostgreSQL connection strings and
// "sqlite" otherwise (file paths).
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}

// InMemoryStore keeps sessions in a process-wide map. Map access is
// synchronized; there is no eviction, so retention is bounded by process
// lifetime.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.SessionState
}

// NewInMemoryStore creates an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*models.SessionState)}
}

// GetOrCreate returns the session for the id, creating one in the WELCOME
// stage on first contact.
func (s *InMemoryStore) GetOrCreate(sessionID string) (*models.SessionState, error) {
	if sessionID == "" {
		return nil, models.ErrEmptySessionID
	}

	s.mu.RLock()
	state, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return state, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the write lock; another goroutine may have created it.
	if state, ok := s.sessions[sessionID]; ok {
		return state, nil
	}
	state = models.NewSessionState(sessionID)
	s.sessions[sessionID] = state
	slog.Debug("InMemoryStore created session", "session_id", sessionID)
	return state, nil
}

// Save overwrites the stored state.
func (s *InMemoryStore) Save(state *models.SessionState) error {
	if state == nil || state.SessionID == "" {
		return models.ErrEmptySessionID
	}
	s.mu.Lock()
	s.sessions[state.SessionID] = state
	s.mu.Unlock()
	return nil
}

// Delete removes a session.
func (s *InMemoryStore) Delete(sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// Count returns the number of live sessions.
func (s *InMemoryStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
