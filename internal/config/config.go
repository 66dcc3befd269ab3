// internal/config/config.go
//
// Environment configuration. main loads an optional .env with godotenv first,
// then Load reads the process environment.
//
//	PORT             listen port (5175)
//	LOG_LEVEL        zerolog level (info)
//	WORDS_FILE       newline-delimited word list on disk
//	WORDS_DB         SQLite DSN whose `words` table is the word list
//	DAILY_SALT       HMAC salt for the board of the day (local_dev_salt)
//	CLIENT_ORIGIN    allowed CORS origin (http://localhost:5173)
//	BOARD_SIZE       default side length for new games (4, at most 8)
//	SOLVER_WORKERS   goroutines per search; 0 or 1 searches sequentially
//	STORE_MAX_GAMES  sessions kept in memory (1000)

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/robalobadob/boggle/internal/board"
)

// Config is the resolved service configuration.
type Config struct {
	Port          string
	LogLevel      string
	WordsFile     string
	WordsDB       string
	DailySalt     string
	ClientOrigin  string
	BoardSize     int
	SolverWorkers int
	StoreMaxGames int
}

// LoadDotEnv loads the given .env files (default ".env") if present.
// A missing file is not an error.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// Load reads Config from the environment.
func Load() (Config, error) {
	c := Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		WordsFile:    os.Getenv("WORDS_FILE"),
		WordsDB:      os.Getenv("WORDS_DB"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}
	var err error
	if c.BoardSize, err = envInt("BOARD_SIZE", 4); err != nil {
		return c, err
	}
	if c.SolverWorkers, err = envInt("SOLVER_WORKERS", 0); err != nil {
		return c, err
	}
	if c.StoreMaxGames, err = envInt("STORE_MAX_GAMES", 1000); err != nil {
		return c, err
	}
	if c.BoardSize <= 0 || c.BoardSize > board.MaxSide {
		return c, fmt.Errorf("config: BOARD_SIZE must be in 1..%d, got %d", board.MaxSide, c.BoardSize)
	}
	return c, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return n, nil
}
