// commands.go
//
// Subcommand handlers for the Quarto CLI.
// Each handler parses its own flag set, loads the session record, applies
// one engine operation, and persists the result. Human-facing output goes
// to stdout; diagnostics go through zerolog.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/quarto/internal/board"
	"github.com/robalobadob/quarto/internal/game"
	"github.com/robalobadob/quarto/internal/piece"
	"github.com/robalobadob/quarto/internal/store"
)

// cmdInit creates the database file and schema. Refuses to touch an
// existing file.
func cmdInit(dbPath string) error {
	st, err := store.Init(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	fmt.Printf("initialized %s\n", dbPath)
	return nil
}

// cmdNew inserts a fresh game (empty board, nothing pending) and prints
// its id.
func cmdNew(dbPath string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	sess := &store.Session{
		ID:    uuid.NewString(),
		Board: game.New().BoardText(),
	}
	if err := st.Create(context.Background(), sess); err != nil {
		return err
	}
	log.Info().Str("game", sess.ID).Msg("game created")
	fmt.Println(sess.ID)
	return nil
}

// cmdJoin binds one of the two player seats on a session.
func cmdJoin(dbPath string, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	id := fs.String("game", "", "game id")
	seat := fs.Int("seat", 0, "seat to claim (1 or 2)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || (*seat != 1 && *seat != 2) {
		return errors.New("join requires -game ID and -seat 1|2")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	sess, err := st.Get(ctx, *id)
	if err != nil {
		return err
	}
	switch *seat {
	case 1:
		if sess.AssignedFirst {
			return fmt.Errorf("seat 1 of game %s is already taken", *id)
		}
		sess.AssignedFirst = true
	case 2:
		if sess.AssignedSecond {
			return fmt.Errorf("seat 2 of game %s is already taken", *id)
		}
		sess.AssignedSecond = true
	}
	if err := st.Save(ctx, sess); err != nil {
		return err
	}
	fmt.Printf("joined game %s as player %d\n", *id, *seat)
	return nil
}

// cmdPick chooses the piece the opponent must place next.
func cmdPick(dbPath string, args []string) error {
	fs := flag.NewFlagSet("pick", flag.ExitOnError)
	id := fs.String("game", "", "game id")
	code := fs.String("piece", "", "piece code, e.g. BSCF")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *code == "" {
		return errors.New("pick requires -game ID and -piece CODE")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	sess, err := st.Get(ctx, *id)
	if err != nil {
		return err
	}
	g, err := game.Restore(sess.Board, sess.NextPiece)
	if err != nil {
		return err
	}
	p, err := piece.Parse(strings.ToUpper(strings.TrimSpace(*code)))
	if err != nil {
		return err
	}
	if err := g.Pick(p); err != nil {
		return err
	}

	sess.Board = g.BoardText()
	sess.NextPiece = g.PendingCode()
	if err := st.Save(ctx, sess); err != nil {
		return err
	}
	log.Info().Str("game", *id).Str("piece", p.Code()).Msg("piece picked")
	fmt.Printf("%s is pending; the opponent places it\n", p.Code())
	return nil
}

// cmdPlace places the pending piece and reports the game status.
func cmdPlace(dbPath string, args []string) error {
	fs := flag.NewFlagSet("place", flag.ExitOnError)
	id := fs.String("game", "", "game id")
	x := fs.Int("x", -1, "row [0,4)")
	y := fs.Int("y", -1, "column [0,4)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("place requires -game ID, -x ROW and -y COL")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	sess, err := st.Get(ctx, *id)
	if err != nil {
		return err
	}
	g, err := game.Restore(sess.Board, sess.NextPiece)
	if err != nil {
		return err
	}
	if err := g.Place(*x, *y); err != nil {
		return err
	}

	sess.Board = g.BoardText()
	sess.NextPiece = g.PendingCode()
	if err := st.Save(ctx, sess); err != nil {
		return err
	}
	log.Info().Str("game", *id).Int("x", *x).Int("y", *y).Msg("piece placed")

	fmt.Println(g.BoardText())
	switch {
	case g.Quarto():
		fmt.Println("QUARTO! " + describeLines(board.WinningLines(g.Board())))
	case g.Drawn():
		fmt.Println("draw: all pieces placed, no quarto")
	default:
		fmt.Println("awaiting selection: pick the opponent's next piece")
	}
	return nil
}

// cmdShow prints the current state of a session.
func cmdShow(dbPath string, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	id := fs.String("game", "", "game id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("show requires -game ID")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := st.Get(context.Background(), *id)
	if err != nil {
		return err
	}
	g, err := game.Restore(sess.Board, sess.NextPiece)
	if err != nil {
		return err
	}

	fmt.Printf("game %s (seat1=%v seat2=%v)\n", sess.ID, sess.AssignedFirst, sess.AssignedSecond)
	fmt.Println(g.BoardText())
	if p, ok := g.Pending(); ok {
		fmt.Printf("pending: %s\n", p.Code())
	} else {
		fmt.Println("pending: none")
	}
	fmt.Printf("free: %s\n", joinCodes(g.FreePieces()))
	switch {
	case g.Quarto():
		fmt.Println("status: quarto " + describeLines(board.WinningLines(g.Board())))
	case g.Drawn():
		fmt.Println("status: draw")
	default:
		if _, ok := g.Pending(); ok {
			fmt.Println("status: awaiting placement")
		} else {
			fmt.Println("status: awaiting selection")
		}
	}
	return nil
}

// cmdList prints one line per stored game.
func cmdList(dbPath string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	sessions, err := st.List(context.Background())
	if err != nil {
		return err
	}
	for _, s := range sessions {
		g, err := game.Restore(s.Board, s.NextPiece)
		if err != nil {
			log.Warn().Err(err).Str("game", s.ID).Msg("skipping unreadable record")
			continue
		}
		status := "in progress"
		if g.Quarto() {
			status = "quarto"
		} else if g.Drawn() {
			status = "draw"
		}
		fmt.Printf("%s  placed=%-2d  %s\n", s.ID, len(g.Board().Pieces()), status)
	}
	return nil
}

func joinCodes(pieces []piece.Piece) string {
	if len(pieces) == 0 {
		return "(none)"
	}
	codes := make([]string, len(pieces))
	for i, p := range pieces {
		codes[i] = p.Code()
	}
	return strings.Join(codes, " ")
}

func describeLines(lines []board.Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		cells := make([]string, len(l))
		for j, c := range l {
			cells[j] = fmt.Sprintf("(%d,%d)", c.X, c.Y)
		}
		parts[i] = strings.Join(cells, " ")
	}
	return strings.Join(parts, "; ")
}
