// internal/piece/piece.go
//
// Piece and attribute model for Quarto.
// Responsibilities:
//   - Define the four binary piece attributes (Color, Height, Shape, Top).
//   - Encode/decode the canonical 4-character piece code.
//   - Enumerate the 16-piece universe in a stable order.
//
// Encoding convention:
//   - Attribute codes appear in the fixed order Color, Height, Shape, Top.
//     "BSCF" = Brown Short Circle Flat. Interoperating encoders/decoders
//     rely on this order; it must not change.

package piece

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAttributeCode reports a character outside an attribute's
	// two-letter alphabet.
	ErrInvalidAttributeCode = errors.New("invalid attribute code")

	// ErrInvalidPieceCode reports a malformed 4-character piece code
	// (wrong length, or an invalid attribute character).
	ErrInvalidPieceCode = errors.New("invalid piece code")
)

// Color is the piece color attribute: Brown ("B") or White ("W").
type Color uint8

const (
	Brown Color = iota
	White
)

// Height is the piece height attribute: Short ("S") or Tall ("T").
type Height uint8

const (
	Short Height = iota
	Tall
)

// Shape is the piece footprint attribute: Circle ("C") or Square ("S").
type Shape uint8

const (
	Circle Shape = iota
	Square
)

// Top is the piece top attribute: Flat ("F") or Hole ("H").
type Top uint8

const (
	Flat Top = iota
	Hole
)

// Code returns the single-character code for the color.
func (c Color) Code() byte {
	if c == Brown {
		return 'B'
	}
	return 'W'
}

// Code returns the single-character code for the height.
func (h Height) Code() byte {
	if h == Short {
		return 'S'
	}
	return 'T'
}

// Code returns the single-character code for the shape.
func (s Shape) Code() byte {
	if s == Circle {
		return 'C'
	}
	return 'S'
}

// Code returns the single-character code for the top.
func (t Top) Code() byte {
	if t == Flat {
		return 'F'
	}
	return 'H'
}

// ParseColor decodes a single-character color code.
func ParseColor(b byte) (Color, error) {
	switch b {
	case 'B':
		return Brown, nil
	case 'W':
		return White, nil
	}
	return 0, fmt.Errorf("%w: color %q", ErrInvalidAttributeCode, string(b))
}

// ParseHeight decodes a single-character height code.
func ParseHeight(b byte) (Height, error) {
	switch b {
	case 'S':
		return Short, nil
	case 'T':
		return Tall, nil
	}
	return 0, fmt.Errorf("%w: height %q", ErrInvalidAttributeCode, string(b))
}

// ParseShape decodes a single-character shape code.
func ParseShape(b byte) (Shape, error) {
	switch b {
	case 'C':
		return Circle, nil
	case 'S':
		return Square, nil
	}
	return 0, fmt.Errorf("%w: shape %q", ErrInvalidAttributeCode, string(b))
}

// ParseTop decodes a single-character top code.
func ParseTop(b byte) (Top, error) {
	switch b {
	case 'F':
		return Flat, nil
	case 'H':
		return Hole, nil
	}
	return 0, fmt.Errorf("%w: top %q", ErrInvalidAttributeCode, string(b))
}

// Piece is one of the 16 Quarto pieces. Equality is structural, so Piece
// values are usable as map keys.
type Piece struct {
	Color  Color
	Height Height
	Shape  Shape
	Top    Top
}

// Code returns the canonical 4-character code, e.g. "BSCF".
func (p Piece) Code() string {
	return string([]byte{p.Color.Code(), p.Height.Code(), p.Shape.Code(), p.Top.Code()})
}

// String implements fmt.Stringer using the canonical code.
func (p Piece) String() string { return p.Code() }

// Parse decodes a canonical 4-character piece code.
// Returns ErrInvalidPieceCode for wrong length; attribute failures wrap
// both ErrInvalidPieceCode and ErrInvalidAttributeCode.
func Parse(code string) (Piece, error) {
	if len(code) != 4 {
		return Piece{}, fmt.Errorf("%w: %q (want 4 characters)", ErrInvalidPieceCode, code)
	}
	c, err := ParseColor(code[0])
	if err != nil {
		return Piece{}, fmt.Errorf("%w: %q: %w", ErrInvalidPieceCode, code, err)
	}
	h, err := ParseHeight(code[1])
	if err != nil {
		return Piece{}, fmt.Errorf("%w: %q: %w", ErrInvalidPieceCode, code, err)
	}
	s, err := ParseShape(code[2])
	if err != nil {
		return Piece{}, fmt.Errorf("%w: %q: %w", ErrInvalidPieceCode, code, err)
	}
	t, err := ParseTop(code[3])
	if err != nil {
		return Piece{}, fmt.Errorf("%w: %q: %w", ErrInvalidPieceCode, code, err)
	}
	return Piece{Color: c, Height: h, Shape: s, Top: t}, nil
}

// All returns the full 16-piece universe as a fresh slice, ordered by
// canonical code position (Color, then Height, then Shape, then Top).
// Computed on every call; callers may mutate the result freely.
func All() []Piece {
	pieces := make([]Piece, 0, 16)
	for _, c := range []Color{Brown, White} {
		for _, h := range []Height{Short, Tall} {
			for _, s := range []Shape{Circle, Square} {
				for _, t := range []Top{Flat, Hole} {
					pieces = append(pieces, Piece{Color: c, Height: h, Shape: s, Top: t})
				}
			}
		}
	}
	return pieces
}
