// internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
// Responsibilities:
//   - Opening the database file with safe defaults (WAL, busy timeout,
//     foreign keys).
//   - Bootstrapping the game table schema (idempotent).
//   - CRUD over session records.
//
// Schema:
//   game(id INTEGER PRIMARY KEY, uuid UNIQUE, assigned_1st, assigned_2nd,
//        board_state, next_piece, created_at, updated_at)
//   next_piece is NULL when no piece is pending. Timestamps are RFC3339.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS game
(
  id INTEGER PRIMARY KEY,
  uuid VARCHAR NOT NULL UNIQUE,
  assigned_1st BOOLEAN NOT NULL DEFAULT false,
  assigned_2nd BOOLEAN NOT NULL DEFAULT false,
  board_state VARCHAR NOT NULL,
  next_piece VARCHAR,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`

// SQLite is a Store backed by a local SQLite database file.
type SQLite struct {
	db *sql.DB
}

// Open opens (and creates if missing) a SQLite database file and ensures
// the schema exists.
//
//   - Ensures the parent directory exists for relative paths (e.g.
//     ./data/quarto.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
func Open(path string) (*SQLite, error) {
	// Ensure directory exists for ./data/quarto.db, etc.
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	// Open DB with busy timeout and WAL journaling.
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// Explicitly enforce foreign keys + WAL.
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create game table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Init creates a brand-new database file and its schema.
// Fails if the file already exists, so an accidental re-init can't clobber
// recorded games.
func Init(path string) (*SQLite, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("database %s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	s, err := Open(path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Msg("database initialized")
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// Create inserts a new session row.
func (s *SQLite) Create(ctx context.Context, sess *Session) error {
	// Check first rather than decoding driver-specific constraint errors.
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM game WHERE uuid=?`, sess.ID).Scan(&exists)
	if err == nil {
		return ErrExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("query game: %w", err)
	}

	now := time.Now().UTC()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.UpdatedAt = now
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO game (uuid, assigned_1st, assigned_2nd, board_state, next_piece, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?)`,
		sess.ID, sess.AssignedFirst, sess.AssignedSecond, sess.Board,
		nullable(sess.NextPiece),
		sess.CreatedAt.Format(time.RFC3339), sess.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", sess.ID, err)
	}
	return nil
}

// Get retrieves a session row by uuid.
func (s *SQLite) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT uuid, assigned_1st, assigned_2nd, board_state, next_piece, created_at, updated_at
        FROM game WHERE uuid=?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return sess, err
}

// Save updates an existing session row.
func (s *SQLite) Save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
        UPDATE game
        SET assigned_1st=?, assigned_2nd=?, board_state=?, next_piece=?, updated_at=?
        WHERE uuid=?`,
		sess.AssignedFirst, sess.AssignedSecond, sess.Board,
		nullable(sess.NextPiece),
		sess.UpdatedAt.Format(time.RFC3339), sess.ID,
	)
	if err != nil {
		return fmt.Errorf("update game %s: %w", sess.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every session row, oldest first.
func (s *SQLite) List(ctx context.Context) ([]*Session, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT uuid, assigned_1st, assigned_2nd, board_state, next_piece, created_at, updated_at
        FROM game ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var (
		sess    Session
		next    sql.NullString
		created string
		updated string
	)
	if err := row.Scan(&sess.ID, &sess.AssignedFirst, &sess.AssignedSecond,
		&sess.Board, &next, &created, &updated); err != nil {
		return nil, err
	}
	sess.NextPiece = next.String
	sess.CreatedAt, _ = time.Parse(time.RFC3339, created)
	sess.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &sess, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
