// internal/board/board.go
//
// Board state for Quarto: a 4x4 grid of optional pieces plus the canonical
// fixed-width text encoding used for display and persistence.
//
// Text format:
//   - Exactly 4 lines joined by a single newline, no trailing newline.
//   - Each line is 19 characters: four 4-character cells separated by a
//     single space. An empty cell is 4 spaces.

package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/quarto/internal/piece"
)

// Size is the board edge length. Only 4x4 boards exist in Quarto.
const Size = 4

// lineWidth is the width of one encoded row: four cells plus separators.
const lineWidth = Size*4 + (Size - 1)

const emptyCell = "    "

var (
	// ErrInvalidBoardText reports malformed board text: wrong line count,
	// wrong line length, a bad separator, or a bad piece code.
	ErrInvalidBoardText = errors.New("invalid board text")

	// ErrDuplicatePiece reports a piece code appearing in more than one cell.
	ErrDuplicatePiece = errors.New("duplicate piece")

	// ErrOutOfRange reports a coordinate outside [0,4).
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrCellOccupied reports a placement into a non-empty cell.
	ErrCellOccupied = errors.New("cell already occupied")
)

type cell struct {
	p  piece.Piece
	ok bool
}

// Board is a 4x4 grid of optional pieces, indexed (x, y) = (row, col).
// The zero value is an empty board. A piece value never occupies two cells.
type Board struct {
	cells [Size][Size]cell
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// InRange reports whether (x, y) addresses a cell on the board.
func InRange(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// At returns the piece at (x, y) and whether the cell is occupied.
// Coordinates must be in range.
func (b *Board) At(x, y int) (piece.Piece, bool) {
	c := b.cells[x][y]
	return c.p, c.ok
}

// Place writes p into the empty cell (x, y).
// Fails with ErrOutOfRange or ErrCellOccupied; the board is unchanged on
// any failure.
func (b *Board) Place(x, y int, p piece.Piece) error {
	if !InRange(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, x, y)
	}
	if b.cells[x][y].ok {
		return fmt.Errorf("%w: (%d,%d)", ErrCellOccupied, x, y)
	}
	b.cells[x][y] = cell{p: p, ok: true}
	return nil
}

// Pieces returns the pieces on the board in row-major order.
func (b *Board) Pieces() []piece.Piece {
	var out []piece.Piece
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if c := b.cells[x][y]; c.ok {
				out = append(out, c.p)
			}
		}
	}
	return out
}

// Equal reports whether two boards hold the same pieces in the same cells.
func (b *Board) Equal(other *Board) bool {
	return b.cells == other.cells
}

// Encode renders the canonical text form of the board.
func (b *Board) Encode() string {
	var sb strings.Builder
	for x := 0; x < Size; x++ {
		if x > 0 {
			sb.WriteByte('\n')
		}
		for y := 0; y < Size; y++ {
			if y > 0 {
				sb.WriteByte(' ')
			}
			if c := b.cells[x][y]; c.ok {
				sb.WriteString(c.p.Code())
			} else {
				sb.WriteString(emptyCell)
			}
		}
	}
	return sb.String()
}

// Decode parses canonical board text.
//
// Validation:
//   - Exactly Size lines, each exactly lineWidth characters.
//   - Separator positions hold a single space. Any other character would
//     still be unambiguous, but rejecting it keeps stored text normalized.
//   - Each cell is 4 spaces (empty) or a valid piece code.
//   - No piece code appears twice anywhere on the grid.
func Decode(text string) (*Board, error) {
	lines := strings.Split(text, "\n")
	if len(lines) != Size {
		return nil, fmt.Errorf("%w: got %d lines, want %d", ErrInvalidBoardText, len(lines), Size)
	}

	b := New()
	seen := make(map[piece.Piece]bool, Size*Size)
	for x, line := range lines {
		if len(line) != lineWidth {
			return nil, fmt.Errorf("%w: line %d is %d characters, want %d",
				ErrInvalidBoardText, x, len(line), lineWidth)
		}
		for y := 0; y < Size; y++ {
			if y > 0 && line[5*y-1] != ' ' {
				return nil, fmt.Errorf("%w: line %d: bad separator before cell %d",
					ErrInvalidBoardText, x, y)
			}
			seg := line[5*y : 5*y+4]
			if seg == emptyCell {
				continue
			}
			p, err := piece.Parse(seg)
			if err != nil {
				return nil, fmt.Errorf("%w: cell (%d,%d): %w", ErrInvalidBoardText, x, y, err)
			}
			if seen[p] {
				return nil, fmt.Errorf("%w: %s at (%d,%d)", ErrDuplicatePiece, p.Code(), x, y)
			}
			seen[p] = true
			b.cells[x][y] = cell{p: p, ok: true}
		}
	}
	return b, nil
}
