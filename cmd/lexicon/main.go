// Command lexicon manages word lists and solves boards from the shell.
//
//	lexicon import -db ./data/words.db -file enable1.txt
//	lexicon solve  -file enable1.txt -board "cats/oxen/ride/wave"
//	lexicon solve  -db ./data/words.db -random -policy dice
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/internal/board"
	"github.com/robalobadob/boggle/internal/config"
	"github.com/robalobadob/boggle/internal/db"
	"github.com/robalobadob/boggle/internal/game"
	"github.com/robalobadob/boggle/internal/solver"
	"github.com/robalobadob/boggle/internal/words"
)

func main() {
	config.LoadDotEnv()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "import":
		err = runImport(ctx, os.Args[2:])
	case "solve":
		err = runSolve(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg(os.Args[1])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lexicon import -db DSN -file WORDS | lexicon solve [-file WORDS | -db DSN] [-board B | -random]")
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dsn := fs.String("db", os.Getenv("WORDS_DB"), "SQLite database to import into")
	file := fs.String("file", os.Getenv("WORDS_FILE"), "newline-delimited word list")
	_ = fs.Parse(args)
	if *dsn == "" || *file == "" {
		return fmt.Errorf("both -db and -file are required")
	}

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("%w: %w", words.ErrSourceUnavailable, err)
	}
	defer f.Close()
	list, err := words.Parse(f)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", words.ErrSourceUnavailable, *file, err)
	}

	sqlDB, err := db.Open(*dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if err := db.Migrate(ctx, sqlDB); err != nil {
		return err
	}
	added, err := db.ImportWords(ctx, sqlDB, list)
	if err != nil {
		return err
	}
	total, err := db.CountWords(ctx, sqlDB)
	if err != nil {
		return err
	}
	log.Info().Int("read", len(list)).Int("added", added).Int("total", total).Msg("import done")
	return nil
}

func runSolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	file := fs.String("file", os.Getenv("WORDS_FILE"), "newline-delimited word list")
	dsn := fs.String("db", os.Getenv("WORDS_DB"), "SQLite database holding the words table")
	layout := fs.String("board", "", `board rows separated by "/", e.g. "cats/oxen/ride/wave"`)
	random := fs.Bool("random", false, "generate a board instead of -board")
	size := fs.Int("size", board.DefaultSize, "side length for -random")
	policy := fs.String("policy", string(board.PolicyDice), "generation policy for -random: dice|random")
	workers := fs.Int("workers", 0, "search goroutines")
	_ = fs.Parse(args)

	var src words.Source = words.EmbeddedSource{}
	switch {
	case *file != "":
		src = words.FileSource(*file)
	case *dsn != "":
		sqlDB, err := db.Open(*dsn)
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		src = words.SQLiteSource{DB: sqlDB}
	}
	lex := words.New(src)
	if err := lex.Load(ctx); err != nil {
		return err
	}

	var b board.Board
	var err error
	if *random {
		var p board.Policy
		if p, err = board.ParsePolicy(*policy); err != nil {
			return err
		}
		b, err = board.NewGenerator(nil).Generate(*size, *size, p)
	} else {
		b, err = board.Parse(*layout)
	}
	if err != nil {
		return err
	}

	start := time.Now()
	rs, err := solver.SolveParallel(ctx, b, lex, *workers, solver.Options{})
	if err != nil {
		return err
	}
	took := time.Since(start)

	fmt.Println(b)
	fmt.Println()
	for _, r := range game.SortForDisplay(rs) {
		fmt.Printf("%-16s %v\n", r.Word, r.Path)
	}
	log.Info().Int("words", len(rs)).Int("lexicon", lex.Size()).Dur("took", took).Msg("solved")
	return nil
}
