package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-helper/internal/solver"
)

var testWords = []string{"CRANE", "SLATE", "THOSE", "WHOLE", "ERASE"}

func writeWords(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	body := "# test list\n" + strings.ToLower(strings.Join(testWords, "\n")) + "\nabc\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// execute runs the root command with fresh flag values.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	wordsFile, wordLength, weightsFile, dbPath, logLevel, workers = "", 0, "", "", "error", 0
	suggestGuesses, suggestLimit, suggestHard, suggestShow, fullRankThreshold = nil, 10, false, 20, 2000
	benchLimit, benchTurns, benchOpener, benchQuiet = 0, 6, "", true
	importFile = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPlay(t *testing.T) {
	d, err := solver.Load(testWords, 5)
	require.NoError(t, err)
	r := solver.NewRanker(d, solver.WithLimit(1))
	ctx := context.Background()

	turns, ok, err := play(ctx, d, r, "CRANE", "CRANE", 6)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, turns)

	turns, ok, err = play(ctx, d, r, "THOSE", "CRANE", 6)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.LessOrEqual(t, turns, 3)

	turns, ok, err = play(ctx, d, r, "THOSE", "CRANE", 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, turns)
}

func TestPrintBench(t *testing.T) {
	var out bytes.Buffer
	printBench(&out, "CRANE", benchResult{
		Games: 3, Solved: 2, Total: 5,
		Distribution: map[int]int{3: 1, 2: 1},
		Failed:       []string{"ERASE"},
	})
	assert.Equal(t, "opener CRANE: solved 2/3, mean 2.500 guesses\n  2: 1\n  3: 1\n  failed: [ERASE]\n", out.String())
}

func TestSuggestCommand(t *testing.T) {
	path := writeWords(t)

	out, err := execute(t, "suggest", "--words", path, "--guess", "crane:00002")
	require.NoError(t, err)
	assert.Contains(t, out, "2 candidates")
	assert.Contains(t, out, "THOSE WHOLE")
	assert.Contains(t, out, "WORD")

	out, err = execute(t, "suggest", "--words", path, "--full-rank-threshold", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "openers: SLATE CRANE")

	out, err = execute(t, "suggest", "--words", path, "-g", "those:22222")
	require.NoError(t, err)
	assert.Contains(t, out, "solved: THOSE")

	_, err = execute(t, "suggest", "--words", path, "--guess", "crane:00000")
	assert.ErrorIs(t, err, solver.ErrNoCandidatesRemain)

	_, err = execute(t, "suggest", "--words", path, "--guess", "crane")
	assert.ErrorIs(t, err, solver.ErrMalformedGuess)
}

func TestBenchCommand(t *testing.T) {
	out, err := execute(t, "bench", "--words", writeWords(t), "--opener", "crane")
	require.NoError(t, err)
	assert.Contains(t, out, "opener CRANE: solved 5/5")

	_, err = execute(t, "bench", "--words", writeWords(t), "--opener", "zzzzz")
	assert.Error(t, err)
}

func TestImportCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "words.db")
	path := writeWords(t)

	out, err := execute(t, "import", "--db", db, "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 5 new words")

	out, err = execute(t, "import", "--db", db, "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 0 new words")
	assert.Contains(t, out, "(5 total)")

	// the seeded table now backs the dictionary
	out, err = execute(t, "suggest", "--db", db, "--guess", "crane:00002")
	require.NoError(t, err)
	assert.Contains(t, out, "2 candidates")
}
