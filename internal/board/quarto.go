// internal/board/quarto.go
//
// Win detection.
// The 4x4 board has exactly 10 winning lines: 4 rows, 4 columns, and the
// 2 main diagonals. A line is a quarto when all four of its cells are
// occupied and the four pieces share at least one attribute value.
// Detection is a pure query over a board; it never mutates anything.

package board

import "github.com/robalobadob/quarto/internal/piece"

// Coord addresses a single board cell.
type Coord struct {
	X, Y int
}

// Line is an ordered set of four cell coordinates.
type Line [Size]Coord

// winLines is the static table of the 10 winning lines, built once at
// startup.
var winLines = buildWinLines()

func buildWinLines() []Line {
	lines := make([]Line, 0, 2*Size+2)
	var diag, anti Line
	for i := 0; i < Size; i++ {
		var row, col Line
		for j := 0; j < Size; j++ {
			row[j] = Coord{X: i, Y: j}
			col[j] = Coord{X: j, Y: i}
		}
		lines = append(lines, row, col)
		diag[i] = Coord{X: i, Y: i}
		anti[i] = Coord{X: i, Y: Size - 1 - i}
	}
	return append(lines, diag, anti)
}

// attributes projects each of the four attribute values out of a piece so
// lines can be checked attribute by attribute.
var attributes = []func(piece.Piece) uint8{
	func(p piece.Piece) uint8 { return uint8(p.Color) },
	func(p piece.Piece) uint8 { return uint8(p.Height) },
	func(p piece.Piece) uint8 { return uint8(p.Shape) },
	func(p piece.Piece) uint8 { return uint8(p.Top) },
}

// lineQuarto reports whether the given line is complete and shares an
// attribute. An empty cell disqualifies the line outright.
func lineQuarto(b *Board, l Line) bool {
	var pieces [Size]piece.Piece
	for i, c := range l {
		p, ok := b.At(c.X, c.Y)
		if !ok {
			return false
		}
		pieces[i] = p
	}
	for _, attr := range attributes {
		want := attr(pieces[0])
		same := true
		for _, p := range pieces[1:] {
			if attr(p) != want {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}

// IsQuarto reports whether any of the 10 lines is a quarto.
// Pure and idempotent; an empty board is never a quarto.
func IsQuarto(b *Board) bool {
	for _, l := range winLines {
		if lineQuarto(b, l) {
			return true
		}
	}
	return false
}

// WinningLines returns every line that currently forms a quarto, in table
// order. Empty when the board has no quarto.
func WinningLines(b *Board) []Line {
	var out []Line
	for _, l := range winLines {
		if lineQuarto(b, l) {
			out = append(out, l)
		}
	}
	return out
}
