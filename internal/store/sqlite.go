package store

// #region imports
import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mockstage/interview-engine/internal/session"
	_ "modernc.org/sqlite"
)

// #endregion

// #region schema

const sessionsSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id  TEXT PRIMARY KEY,
	state_json  TEXT NOT NULL,
	expires_at  TEXT NOT NULL
);
`

// #endregion

// #region sqlite-struct

// SQLite is the keyed session store backed by a SQLite file, so live
// sessions survive a process restart. Expired rows are invisible to Get and
// swept opportunistically on Set.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens the database and runs migrations.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(sessionsSchema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// #endregion

// #region operations

// Get loads the state for id, treating expired rows as absent.
func (s *SQLite) Get(id string) (session.State, error) {
	var stateJSON, expiresAt string
	err := s.db.QueryRow(
		`SELECT state_json, expires_at FROM sessions WHERE session_id = ?`, id,
	).Scan(&stateJSON, &expiresAt)
	if err == sql.ErrNoRows {
		return session.State{}, ErrNotFound
	}
	if err != nil {
		return session.State{}, fmt.Errorf("get session: %w", err)
	}

	exp, err := time.Parse(time.RFC3339Nano, expiresAt)
	if err != nil {
		return session.State{}, fmt.Errorf("parse expiry: %w", err)
	}
	if s.now().After(exp) {
		_, _ = s.db.Exec(`DELETE FROM sessions WHERE session_id = ?`, id)
		return session.State{}, ErrNotFound
	}

	var st session.State
	if err := json.Unmarshal([]byte(stateJSON), &st); err != nil {
		return session.State{}, fmt.Errorf("decode session: %w", err)
	}
	return st, nil
}

// Set upserts the state with a fresh TTL. Last writer wins.
func (s *SQLite) Set(id string, st session.State, ttl time.Duration) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	now := s.now()
	_, err = s.db.Exec(
		`INSERT INTO sessions (session_id, state_json, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET state_json = excluded.state_json, expires_at = excluded.expires_at`,
		id, string(data), now.Add(ttl).Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	// Cheap sweep of anything already past its expiry.
	_, _ = s.db.Exec(`DELETE FROM sessions WHERE expires_at < ?`, now.Format(time.RFC3339Nano))
	return nil
}

// Delete removes the row. Deleting a missing id is not an error.
func (s *SQLite) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// #endregion
