// internal/store/store.go
//
// Persistence contract for game sessions.
// A Session is the persisted shape of one game: the canonical board text,
// the pending piece code, and the two player-role bindings. The engine
// itself never touches a Store; collaborators rebuild a game.Game from a
// Session, mutate it, and write the Session back.

package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound reports a lookup for an unknown session id.
	ErrNotFound = errors.New("session not found")

	// ErrExists reports a create for an id that is already stored.
	ErrExists = errors.New("session already exists")
)

// Session is the persisted record of one Quarto game.
type Session struct {
	ID             string // opaque identifier (uuid v4)
	Board          string // canonical board text
	NextPiece      string // pending piece code, "" when none
	AssignedFirst  bool   // first player role bound
	AssignedSecond bool   // second player role bound
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Store defines the persistence interface for sessions.
// Implementations may be backed by memory (development/tests) or SQLite.
// Callers must serialize mutations per session id; implementations do not
// arbitrate concurrent writers of the same game.
type Store interface {
	// Create inserts a new session. Fails with ErrExists on a duplicate id.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by id. Fails with ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Save updates an existing session. Fails with ErrNotFound.
	Save(ctx context.Context, s *Session) error

	// List returns all sessions, oldest first.
	List(ctx context.Context) ([]*Session, error)
}
