// Package store holds interview session state between turns. Entries expire:
// this is the ephemeral keyed store, not the durable archive.
package store

// #region imports
import (
	"errors"
	"time"

	"github.com/mockstage/interview-engine/internal/session"
)

// #endregion

// #region errors

// ErrNotFound is returned when a session id has no live entry (never stored,
// deleted, or expired).
var ErrNotFound = errors.New("session not found")

// #endregion

// #region store-interface

// Store is the keyed session-state store. Last-writer-wins; no transactional
// guarantee. Callers must serialize writes per session id.
type Store interface {
	Get(id string) (session.State, error)
	Set(id string, st session.State, ttl time.Duration) error
	Delete(id string) error
}

// #endregion
