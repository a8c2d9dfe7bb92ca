package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-helper/assets"
	"github.com/robalobadob/wordle-helper/internal/database"
	"github.com/robalobadob/wordle-helper/internal/words"
)

var (
	importFile string

	importCmd = &cobra.Command{
		Use:   "import",
		Short: "Seed the SQLite words table from a word list",
		Long: `Reads one word per line from --file and inserts the words of the
configured length into the words table of --db (default DB_PATH).
Words already present are left alone.`,
		Args: cobra.NoArgs,
		RunE: runImport,
	}
)

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "word list to import")
	_ = importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	path := dbPath
	if path == "" {
		path = cfg.DBPath
	}
	db, err := database.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := migrate(ctx, db); err != nil {
		return err
	}

	list, err := words.ReadFile(importFile, cfg.WordLength)
	if err != nil {
		return err
	}
	added, err := words.Seed(ctx, db, list)
	if err != nil {
		return err
	}
	total, err := words.Count(ctx, db)
	if err != nil {
		return err
	}
	log.Info().Str("db", path).Str("file", importFile).Int("added", added).Int("total", total).Msg("words imported")
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d new words into %s (%d total)\n", added, path, total)
	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	if err := database.Migrate(ctx, db, assets.Migrations()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
