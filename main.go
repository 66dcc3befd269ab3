package main

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/internal/config"
	"github.com/robalobadob/boggle/internal/db"
	"github.com/robalobadob/boggle/internal/game"
	"github.com/robalobadob/boggle/internal/httpserver"
	"github.com/robalobadob/boggle/internal/metrics"
	"github.com/robalobadob/boggle/internal/store"
	"github.com/robalobadob/boggle/internal/words"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	src, closeSrc, err := wordSource(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open word source")
	}
	defer closeSrc()

	m := metrics.NewCollector("boggle")
	lex := words.New(src)

	// Serve while the lexicon builds; game routes answer 503 until it is ready.
	go func() {
		err := lex.Load(context.Background())
		m.RecordLexiconLoad(err, lex.Size())
		if err != nil {
			log.Fatal().Err(err).Str("source", src.String()).Msg("failed to load word list")
		}
	}()

	eng := game.NewEngine(lex, cfg.SolverWorkers, m)
	srv := httpserver.New(store.NewMemoryStore(cfg.StoreMaxGames), eng, lex, httpserver.Options{
		ClientOrigin: cfg.ClientOrigin,
		DailySalt:    cfg.DailySalt,
		BoardSize:    cfg.BoardSize,
		Metrics:      m,
	})
	log.Info().Str("port", cfg.Port).Str("words", src.String()).Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// wordSource picks WORDS_FILE, then WORDS_DB, then the embedded list.
func wordSource(cfg config.Config) (words.Source, func(), error) {
	switch {
	case cfg.WordsFile != "":
		return words.FileSource(cfg.WordsFile), func() {}, nil
	case cfg.WordsDB != "":
		sqlDB, err := db.Open(cfg.WordsDB)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(context.Background(), sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		return words.SQLiteSource{DB: sqlDB}, closeDB(sqlDB), nil
	default:
		return words.EmbeddedSource{}, func() {}, nil
	}
}

func closeDB(sqlDB *sql.DB) func() {
	return func() { _ = sqlDB.Close() }
}
