// Package transitionlog records one audit row per state-machine transition.
// Rows live in the archive database and are read back by cmd/inspect.
package transitionlog

// #region imports
import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mockstage/interview-engine/internal/session"
)

// #endregion

// #region entry

// Entry is a single row in the session_transitions table.
type Entry struct {
	SessionID     string
	TurnID        string
	FromStatus    session.Status
	ToStatus      session.Status
	Event         string
	QuestionCount int
	Degraded      bool
	Reason        string
	CreatedAt     time.Time
}

// #endregion

// #region log

// Log writes one transition row.
func Log(db *sql.DB, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	degraded := 0
	if entry.Degraded {
		degraded = 1
	}

	_, err := db.Exec(
		`INSERT INTO session_transitions
		 (session_id, turn_id, from_status, to_status, event, question_count, degraded, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID,
		entry.TurnID,
		string(entry.FromStatus),
		string(entry.ToStatus),
		entry.Event,
		entry.QuestionCount,
		degraded,
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log transition: %w", err)
	}
	return nil
}

// #endregion

// #region list

// List returns the transitions for one session in insertion order, or the
// most recent rows across all sessions when sessionID is empty.
func List(db *sql.DB, sessionID string, limit int) ([]Entry, error) {
	var rows *sql.Rows
	var err error
	if sessionID != "" {
		rows, err = db.Query(
			`SELECT session_id, turn_id, from_status, to_status, event, question_count, degraded, reason, created_at
			 FROM session_transitions WHERE session_id = ? ORDER BY id ASC LIMIT ?`,
			sessionID, limit,
		)
	} else {
		rows, err = db.Query(
			`SELECT session_id, turn_id, from_status, to_status, event, question_count, degraded, reason, created_at
			 FROM session_transitions ORDER BY id DESC LIMIT ?`,
			limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var from, to, createdAt string
		var degraded int
		var reason sql.NullString
		if err := rows.Scan(&e.SessionID, &e.TurnID, &from, &to, &e.Event, &e.QuestionCount, &degraded, &reason, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		e.FromStatus = session.Status(from)
		e.ToStatus = session.Status(to)
		e.Degraded = degraded != 0
		e.Reason = reason.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion

// #region helpers

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// #endregion
