// main.go
//
// Solver HTTP server.
// Responsibilities:
//   - Load .env, configure zerolog, read config from the environment.
//   - Open the SQLite database and apply the embedded migrations.
//   - Load the dictionary (WORDS_FILE, words table, or the built-in list).
//   - Serve the session API with a background sweeper for idle sessions.
//   - Shut down gracefully on SIGINT/SIGTERM.

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-helper/assets"
	"github.com/robalobadob/wordle-helper/internal/config"
	"github.com/robalobadob/wordle-helper/internal/database"
	"github.com/robalobadob/wordle-helper/internal/history"
	"github.com/robalobadob/wordle-helper/internal/httpserver"
	"github.com/robalobadob/wordle-helper/internal/solver"
	"github.com/robalobadob/wordle-helper/internal/store"
	"github.com/robalobadob/wordle-helper/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()
	if err := database.Migrate(ctx, db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	dict, _, err := words.LoadDictionary(ctx, words.Options{
		File:   cfg.WordsFile,
		DB:     db,
		Length: cfg.WordLength,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(httpserver.Options{
		Store: mem,
		Dict:  dict,
		Ranker: solver.NewRanker(dict,
			solver.WithWeights(cfg.Weights),
			solver.WithWorkers(cfg.RankWorkers),
			solver.WithLimit(cfg.SuggestionLimit),
		),
		History:        history.NewStore(db),
		JWTSecret:      cfg.JWTSecret,
		ClientOrigin:   cfg.ClientOrigin,
		RankTimeout:    cfg.RankTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	go sweep(ctx, srv, cfg.SessionTTL)

	hs := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("port", cfg.Port).Int("words", dict.Len()).Msg("starting solver server")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}

	// record whatever is still live before exiting
	srv.SweepIdle(context.Background(), -time.Hour)
	log.Info().Msg("server stopped")
}

// sweep evicts sessions idle for longer than ttl until ctx is done.
func sweep(ctx context.Context, srv *httpserver.Server, ttl time.Duration) {
	t := time.NewTicker(max(ttl/4, time.Second))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			srv.SweepIdle(ctx, ttl)
		}
	}
}
