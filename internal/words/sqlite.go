// internal/words/sqlite.go
//
// SQLite-backed word list (table words(id, word), see assets/sql).
// Words are read in id order, which is insertion order, so a seeded list
// keeps the order of the file it came from.

package words

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/samber/lo"
)

// FromDB returns the length-letter words of the words table in id order.
func FromDB(ctx context.Context, db *sql.DB, length int) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT word FROM words WHERE length(word) = ? ORDER BY id`, length)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keepValid(out, length, "sqlite"), nil
}

// Seed inserts words into the words table in one transaction.
// Words are upper-cased; ones already present are ignored.
// Returns the number of rows actually inserted.
func Seed(ctx context.Context, db *sql.DB, list []string) (int, error) {
	list = lo.Uniq(lo.Map(list, func(w string, _ int) string { return normalize(w) }))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words(word) VALUES (?)`)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, w := range list {
		if w == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, w)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert %q: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// Count returns the number of rows in the words table.
func Count(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&n)
	return n, err
}
