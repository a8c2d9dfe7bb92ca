// cmd/wordle-solver/main.go
//
// Command-line front end to the solver.
// Responsibilities:
//   - suggest: fold WORD:PATTERN guesses and print the best next guesses.
//   - bench:   play every dictionary word as the answer and report how many
//              guesses the greedy strategy needs.
//   - import:  seed the SQLite words table from a word list file.
//
// Configuration comes from the same environment variables as the server
// (see internal/config); flags given on the command line win.

package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-helper/internal/config"
	"github.com/robalobadob/wordle-helper/internal/solver"
	"github.com/robalobadob/wordle-helper/internal/words"
)

var (
	cfg config.Config

	// --- persistent flags ---
	wordsFile   string
	wordLength  int
	weightsFile string
	dbPath      string
	logLevel    string
	workers     int

	rootCmd = &cobra.Command{
		Use:               "wordle-solver",
		Short:             "Suggest Wordle guesses and benchmark the solver",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

func main() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&wordsFile, "words", "", "word list file, one word per line (default WORDS_FILE or the built-in list)")
	pf.IntVar(&wordLength, "length", 0, "word length (default WORD_LENGTH or 5)")
	pf.StringVar(&weightsFile, "weights", "", "YAML scoring weights (default WEIGHTS_FILE)")
	pf.StringVar(&dbPath, "db", "", "SQLite database holding a words table")
	pf.StringVar(&logLevel, "log-level", "", "zerolog level (default LOG_LEVEL or info)")
	pf.IntVar(&workers, "workers", 0, "ranking workers (default RANK_WORKERS or GOMAXPROCS)")

	rootCmd.AddCommand(suggestCmd, benchCmd, importCmd)
}

// setup reads the environment, applies flag overrides and configures logging.
func setup(cmd *cobra.Command, _ []string) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	c, err := config.FromEnv()
	if err != nil {
		return err
	}
	if wordsFile != "" {
		c.WordsFile = wordsFile
	}
	if wordLength > 0 {
		c.WordLength = wordLength
	}
	if workers > 0 {
		c.RankWorkers = workers
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if weightsFile != "" {
		w, err := config.LoadWeights(weightsFile)
		if err != nil {
			return err
		}
		c.Weights = w
	}
	if err := c.Validate(); err != nil {
		return err
	}

	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	cfg = c
	return nil
}

// loadDictionary resolves the word list from --words, --db or the
// embedded default.
func loadDictionary(ctx context.Context, db *sql.DB) (*solver.Dictionary, error) {
	d, _, err := words.LoadDictionary(ctx, words.Options{
		File:   cfg.WordsFile,
		DB:     db,
		Length: cfg.WordLength,
	})
	return d, err
}

func newRanker(d *solver.Dictionary, limit int) *solver.Ranker {
	return solver.NewRanker(d,
		solver.WithWeights(cfg.Weights),
		solver.WithWorkers(cfg.RankWorkers),
		solver.WithLimit(limit),
	)
}
