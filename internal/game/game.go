// internal/game/game.go
//
// Core game state for a single Quarto session.
// Responsibilities:
//   - Own the three-way piece partition: board, free pool, pending piece.
//   - Enforce the pick-then-place turn protocol.
//   - Reconstruct a session from persisted board text plus a pending code.
//
// Protocol:
//   - Pick moves a free piece into the pending slot; the opponent of the
//     player who picked it must place it. At most one piece is pending.
//   - Place writes the pending piece into an empty cell and clears it.
//   - There is no pass or skip, and no terminal state is tracked here;
//     win/draw detection is a separate pure query on the board.
//   - The first piece of a fresh game is introduced by an ordinary Pick,
//     chosen by whichever collaborator seeds the game.
//
// Invariant: {pieces on board} + {free pool} + {pending piece, if any}
// always partition the 16-piece universe. Every operation either completes
// or leaves the state untouched.

package game

import (
	"errors"
	"fmt"
	"sort"

	"github.com/robalobadob/quarto/internal/board"
	"github.com/robalobadob/quarto/internal/piece"
)

var (
	// ErrPieceAlreadyUsed reports a pick of a piece that is not free
	// (already on the board or pending).
	ErrPieceAlreadyUsed = errors.New("piece already used")

	// ErrPendingPieceExists reports a pick while a piece is still pending.
	ErrPendingPieceExists = errors.New("a piece is already pending")

	// ErrNoPendingPiece reports a placement with nothing pending.
	ErrNoPendingPiece = errors.New("no piece is pending")
)

// Game holds the state of one Quarto session.
type Game struct {
	board *board.Board
	free  map[piece.Piece]struct{}
	next  *piece.Piece
}

// New returns a fresh session: empty board, all 16 pieces free, nothing
// pending.
func New() *Game {
	free := make(map[piece.Piece]struct{}, 16)
	for _, p := range piece.All() {
		free[p] = struct{}{}
	}
	return &Game{board: board.New(), free: free}
}

// Restore rebuilds a session from persisted board text and an optional
// pending piece code (empty string means none). The free pool is recomputed
// as the complement of the board's pieces; the pending piece must be in
// that complement or the restore fails with ErrPieceAlreadyUsed.
func Restore(boardText, pendingCode string) (*Game, error) {
	b, err := board.Decode(boardText)
	if err != nil {
		return nil, err
	}
	g := New()
	g.board = b
	for _, p := range b.Pieces() {
		delete(g.free, p)
	}
	if pendingCode != "" {
		p, err := piece.Parse(pendingCode)
		if err != nil {
			return nil, err
		}
		if _, ok := g.free[p]; !ok {
			return nil, fmt.Errorf("%w: pending piece %s is on the board", ErrPieceAlreadyUsed, p)
		}
		delete(g.free, p)
		g.next = &p
	}
	return g, nil
}

// Pick takes p out of the free pool and makes it the pending piece.
// Fails with ErrPendingPieceExists if a piece is already pending, or
// ErrPieceAlreadyUsed if p is not free. No mutation on failure.
func (g *Game) Pick(p piece.Piece) error {
	if g.next != nil {
		return fmt.Errorf("%w: %s", ErrPendingPieceExists, g.next)
	}
	if _, ok := g.free[p]; !ok {
		return fmt.Errorf("%w: %s", ErrPieceAlreadyUsed, p)
	}
	delete(g.free, p)
	g.next = &p
	return nil
}

// Place writes the pending piece into cell (x, y) and clears the pending
// slot. Fails with board.ErrOutOfRange, ErrNoPendingPiece, or
// board.ErrCellOccupied; the session is unchanged on any failure.
func (g *Game) Place(x, y int) error {
	if !board.InRange(x, y) {
		return fmt.Errorf("%w: (%d,%d)", board.ErrOutOfRange, x, y)
	}
	if g.next == nil {
		return ErrNoPendingPiece
	}
	if err := g.board.Place(x, y, *g.next); err != nil {
		return err
	}
	g.next = nil
	return nil
}

// Board exposes the underlying board for queries (win checks, rendering).
func (g *Game) Board() *board.Board { return g.board }

// BoardText returns the canonical text encoding of the board.
func (g *Game) BoardText() string { return g.board.Encode() }

// Pending returns the pending piece, if any.
func (g *Game) Pending() (piece.Piece, bool) {
	if g.next == nil {
		return piece.Piece{}, false
	}
	return *g.next, true
}

// PendingCode returns the pending piece's code, or "" when nothing is
// pending. This is the persisted form.
func (g *Game) PendingCode() string {
	if g.next == nil {
		return ""
	}
	return g.next.Code()
}

// FreePieces returns the free pool sorted by canonical code.
func (g *Game) FreePieces() []piece.Piece {
	out := make([]piece.Piece, 0, len(g.free))
	for p := range g.free {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return out
}

// Quarto reports whether the board currently holds a completed line.
func (g *Game) Quarto() bool { return board.IsQuarto(g.board) }

// Drawn reports a finished game with no winner: every piece is on the
// board and no line is a quarto.
func (g *Game) Drawn() bool {
	return len(g.free) == 0 && g.next == nil && !g.Quarto()
}
