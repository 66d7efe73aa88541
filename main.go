// main.go
//
// CLI entrypoint for the Quarto session tool.
// Responsibilities:
//   - Load .env + configure the global zerolog level.
//   - Resolve the database path from DATABASE_URL.
//   - Dispatch subcommands (init, new, join, pick, place, show, list).
//
// The CLI is a thin collaborator: every game mutation is restore → engine
// operation → save. Rules live in internal/game and internal/board.

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]
	dbPath := getEnv("DATABASE_URL", "./quarto.db")

	var err error
	switch cmd {
	case "init":
		err = cmdInit(dbPath)
	case "new":
		err = cmdNew(dbPath)
	case "join":
		err = cmdJoin(dbPath, args)
	case "pick":
		err = cmdPick(dbPath, args)
	case "place":
		err = cmdPlace(dbPath, args)
	case "show":
		err = cmdShow(dbPath, args)
	case "list":
		err = cmdList(dbPath)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Str("command", cmd).Msg("command failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: quarto <command> [flags]

commands:
  init                              create the database file
  new                               start a game, print its id
  join  -game ID -seat 1|2          bind a player seat
  pick  -game ID -piece CODE        choose the piece the opponent must place
  place -game ID -x ROW -y COL      place the pending piece
  show  -game ID                    print board, pending piece, free pieces
  list                              list stored games

environment:
  DATABASE_URL  path to the SQLite file (default ./quarto.db)
  LOG_LEVEL     zerolog level (default info)`)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
