// internal/words/words.go
//
// Provides the dictionary the solver ranks against.
//
// Responsibilities:
//   - Read word lists from a file, the SQLite words table, or the embedded
//     default list.
//   - Pick the first source that yields words and build a solver.Dictionary.
//
// Source priority (Resolve):
//   1. Options.File (WORDS_FILE) if set. A missing or unreadable file is an
//      error rather than a silent fallback.
//   2. The words table in Options.DB, if a DB is given and it holds words of
//      the configured length.
//   3. The embedded assets/words.txt.
//
// Constraints:
//   • Lines are trimmed; blank lines and # comments are skipped.
//   • Words of the wrong length or with non-letters are dropped and counted,
//     so that one bad line in a large list does not stop the server.
//   • Case is normalized by solver.Load (upper case).

package words

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle-helper/assets"
	"github.com/robalobadob/wordle-helper/internal/solver"
)

// Source names where a dictionary came from.
type Source string

const (
	SourceFile     Source = "file"
	SourceDB       Source = "sqlite"
	SourceEmbedded Source = "embedded"
)

// Options selects and shapes the dictionary.
type Options struct {
	File   string  // WORDS_FILE; empty to skip
	DB     *sql.DB // nil to skip
	Length int     // word length L
}

// ReadFile loads one word per line from path and keeps the valid
// length-letter words.
func ReadFile(path string, length int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return keepValid(lines, length, path), nil
}

// Embedded returns the valid length-letter words of the built-in list.
func Embedded(length int) ([]string, error) {
	lines, err := assets.Words()
	if err != nil {
		return nil, err
	}
	return keepValid(lines, length, "embedded"), nil
}

// Resolve returns the words of the first source that has any.
func Resolve(ctx context.Context, opts Options) ([]string, Source, error) {
	if opts.File != "" {
		list, err := ReadFile(opts.File, opts.Length)
		if err != nil {
			return nil, SourceFile, err
		}
		if len(list) == 0 {
			return nil, SourceFile, fmt.Errorf("%s: no %d-letter words", opts.File, opts.Length)
		}
		return list, SourceFile, nil
	}

	if opts.DB != nil {
		list, err := FromDB(ctx, opts.DB, opts.Length)
		if err != nil {
			return nil, SourceDB, err
		}
		if len(list) > 0 {
			return list, SourceDB, nil
		}
		log.Info().Int("length", opts.Length).Msg("words table empty, using embedded list")
	}

	list, err := Embedded(opts.Length)
	return list, SourceEmbedded, err
}

// LoadDictionary resolves the word list and validates it into a Dictionary.
func LoadDictionary(ctx context.Context, opts Options) (*solver.Dictionary, Source, error) {
	list, src, err := Resolve(ctx, opts)
	if err != nil {
		return nil, src, err
	}
	d, err := solver.Load(list, opts.Length)
	if err != nil {
		return nil, src, err
	}
	log.Info().
		Str("source", string(src)).
		Int("words", d.Len()).
		Int("length", d.WordLength()).
		Msg("dictionary loaded")
	return d, src, nil
}

// keepValid drops lines that cannot be dictionary words and logs how many.
func keepValid(lines []string, length int, from string) []string {
	valid, invalid := lo.FilterReject(lines, func(w string, _ int) bool {
		return isWord(w, length)
	})
	if len(invalid) > 0 {
		log.Warn().
			Str("from", from).
			Int("skipped", len(invalid)).
			Strs("sample", lo.Slice(invalid, 0, 5)).
			Msg("skipped invalid words")
	}
	return valid
}

// isWord reports whether s is length ASCII letters, either case.
func isWord(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if _, ok := solver.NormalizeLetter(s[i]); !ok {
			return false
		}
	}
	return true
}

// normalize upper-cases and trims a word for storage.
func normalize(w string) string { return strings.ToUpper(strings.TrimSpace(w)) }
