package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/robalobadob/quarto/internal/board"
	"github.com/robalobadob/quarto/internal/piece"
)

const fullBoardText = "BSCF BSCH BSSF BSSH\n" +
	"BTCF BTCH BTSF BTSH\n" +
	"WSCF WSCH WSSF WSSH\n" +
	"WTCF WTCH WTSF WTSH"

func mustPiece(t *testing.T, code string) piece.Piece {
	t.Helper()
	p, err := piece.Parse(code)
	if err != nil {
		t.Fatalf("Parse(%q): %v", code, err)
	}
	return p
}

// checkPartition asserts the board, pool, and pending piece are pairwise
// disjoint and together cover all 16 pieces.
func checkPartition(t *testing.T, g *Game) {
	t.Helper()
	seen := make(map[piece.Piece]string)
	record := func(p piece.Piece, where string) {
		if prev, ok := seen[p]; ok {
			t.Fatalf("piece %s in both %s and %s", p, prev, where)
		}
		seen[p] = where
	}
	for _, p := range g.Board().Pieces() {
		record(p, "board")
	}
	for _, p := range g.FreePieces() {
		record(p, "pool")
	}
	if p, ok := g.Pending(); ok {
		record(p, "pending")
	}
	if len(seen) != 16 {
		t.Fatalf("partition covers %d pieces, want 16", len(seen))
	}
}

// TestNewGame checks the fresh-session shape.
func TestNewGame(t *testing.T) {
	g := New()
	if len(g.FreePieces()) != 16 {
		t.Fatalf("expected 16 free pieces, got %d", len(g.FreePieces()))
	}
	if _, ok := g.Pending(); ok {
		t.Fatal("fresh game has a pending piece")
	}
	if len(g.Board().Pieces()) != 0 {
		t.Fatal("fresh game has pieces on the board")
	}
	checkPartition(t, g)
}

// TestPickThenPlace covers the composed happy path.
func TestPickThenPlace(t *testing.T) {
	g := New()
	p := mustPiece(t, "BSCF")

	if err := g.Pick(p); err != nil {
		t.Fatalf("Pick returned error: %v", err)
	}
	if got, ok := g.Pending(); !ok || got != p {
		t.Fatalf("expected %s pending, got %v ok=%v", p, got, ok)
	}
	if len(g.FreePieces()) != 15 {
		t.Fatalf("expected 15 free pieces, got %d", len(g.FreePieces()))
	}
	checkPartition(t, g)

	if err := g.Place(2, 1); err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if got, ok := g.Board().At(2, 1); !ok || got != p {
		t.Fatalf("expected %s at (2,1), got %v ok=%v", p, got, ok)
	}
	if _, ok := g.Pending(); ok {
		t.Fatal("pending piece not cleared after placement")
	}
	checkPartition(t, g)

	// Re-picking a placed piece must fail.
	if err := g.Pick(p); !errors.Is(err, ErrPieceAlreadyUsed) {
		t.Fatalf("expected ErrPieceAlreadyUsed, got %v", err)
	}
}

// TestPickWhilePending ensures a second pick is rejected without mutation.
func TestPickWhilePending(t *testing.T) {
	g := New()
	if err := g.Pick(mustPiece(t, "BSCF")); err != nil {
		t.Fatalf("Pick returned error: %v", err)
	}
	if err := g.Pick(mustPiece(t, "WTSH")); !errors.Is(err, ErrPendingPieceExists) {
		t.Fatalf("expected ErrPendingPieceExists, got %v", err)
	}
	if p, _ := g.Pending(); p.Code() != "BSCF" {
		t.Fatalf("pending piece changed on failed pick: %s", p)
	}
	if len(g.FreePieces()) != 15 {
		t.Fatalf("free pool changed on failed pick: %d", len(g.FreePieces()))
	}
}

// TestPlaceFailures covers out-of-range, no-pending, and occupied cells,
// and that each failure leaves the session untouched.
func TestPlaceFailures(t *testing.T) {
	g := New()

	if err := g.Place(0, 0); !errors.Is(err, ErrNoPendingPiece) {
		t.Fatalf("expected ErrNoPendingPiece, got %v", err)
	}

	if err := g.Pick(mustPiece(t, "BSCF")); err != nil {
		t.Fatalf("Pick returned error: %v", err)
	}
	for _, c := range [][2]int{{4, 0}, {0, 4}, {-1, 0}, {0, -1}} {
		if err := g.Place(c[0], c[1]); !errors.Is(err, board.ErrOutOfRange) {
			t.Fatalf("Place(%d,%d): expected ErrOutOfRange, got %v", c[0], c[1], err)
		}
	}
	// Out-of-range before no-pending: a fresh game still reports the
	// coordinate error first.
	if err := New().Place(4, 4); !errors.Is(err, board.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}

	if err := g.Place(0, 0); err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if err := g.Pick(mustPiece(t, "WTSH")); err != nil {
		t.Fatalf("Pick returned error: %v", err)
	}
	before := g.BoardText()
	if err := g.Place(0, 0); !errors.Is(err, board.ErrCellOccupied) {
		t.Fatalf("expected ErrCellOccupied, got %v", err)
	}
	if g.BoardText() != before {
		t.Fatal("board changed on failed placement")
	}
	if p, ok := g.Pending(); !ok || p.Code() != "WTSH" {
		t.Fatalf("pending piece lost on failed placement: %v ok=%v", p, ok)
	}
	checkPartition(t, g)
}

// TestRestoreEmptyBoard rebuilds a fresh session from text.
func TestRestoreEmptyBoard(t *testing.T) {
	empty := strings.Repeat(" ", 19)
	text := strings.Join([]string{empty, empty, empty, empty}, "\n")
	g, err := Restore(text, "")
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if len(g.FreePieces()) != 16 {
		t.Fatalf("expected 16 free pieces, got %d", len(g.FreePieces()))
	}
	checkPartition(t, g)
}

// TestRestoreFullBoard leaves an empty pool.
func TestRestoreFullBoard(t *testing.T) {
	g, err := Restore(fullBoardText, "")
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if len(g.FreePieces()) != 0 {
		t.Fatalf("expected empty pool, got %d pieces", len(g.FreePieces()))
	}
	checkPartition(t, g)
}

// TestRestoreWithPending removes the pending piece from the pool.
func TestRestoreWithPending(t *testing.T) {
	g := New()
	if err := g.Pick(mustPiece(t, "BTCH")); err != nil {
		t.Fatalf("Pick returned error: %v", err)
	}
	if err := g.Place(1, 2); err != nil {
		t.Fatalf("Place returned error: %v", err)
	}

	restored, err := Restore(g.BoardText(), "WSCF")
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if p, ok := restored.Pending(); !ok || p.Code() != "WSCF" {
		t.Fatalf("expected WSCF pending, got %v ok=%v", p, ok)
	}
	if len(restored.FreePieces()) != 14 {
		t.Fatalf("expected 14 free pieces, got %d", len(restored.FreePieces()))
	}
	checkPartition(t, restored)
}

// TestRestoreRejectsUsedPending fails when the pending piece is on the board.
func TestRestoreRejectsUsedPending(t *testing.T) {
	g := New()
	if err := g.Pick(mustPiece(t, "BSCF")); err != nil {
		t.Fatalf("Pick returned error: %v", err)
	}
	if err := g.Place(0, 0); err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if _, err := Restore(g.BoardText(), "BSCF"); !errors.Is(err, ErrPieceAlreadyUsed) {
		t.Fatalf("expected ErrPieceAlreadyUsed, got %v", err)
	}
}

// TestRestorePropagatesBoardErrors surfaces decode failures unchanged.
func TestRestorePropagatesBoardErrors(t *testing.T) {
	if _, err := Restore("garbage", ""); !errors.Is(err, board.ErrInvalidBoardText) {
		t.Fatalf("expected ErrInvalidBoardText, got %v", err)
	}
	text := strings.Replace(fullBoardText, "WTSH", "BSCF", 1)
	if _, err := Restore(text, ""); !errors.Is(err, board.ErrDuplicatePiece) {
		t.Fatalf("expected ErrDuplicatePiece, got %v", err)
	}
}

// TestQuartoAndDrawQueries checks the session-level wrappers.
func TestQuartoAndDrawQueries(t *testing.T) {
	g := New()
	if g.Quarto() || g.Drawn() {
		t.Fatal("fresh game reported finished")
	}

	// Play out row 0 with four brown pieces.
	for i, code := range []string{"BSCF", "BSCH", "BSSF", "BTSH"} {
		if err := g.Pick(mustPiece(t, code)); err != nil {
			t.Fatalf("Pick returned error: %v", err)
		}
		if err := g.Place(0, i); err != nil {
			t.Fatalf("Place returned error: %v", err)
		}
	}
	if !g.Quarto() {
		t.Fatal("brown row not reported as quarto")
	}
	if g.Drawn() {
		t.Fatal("won game reported as draw")
	}
}
