package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-helper/internal/solver"
)

var allKeys = []string{
	"PORT", "LOG_LEVEL", "DB_PATH", "WORDS_FILE", "WORD_LENGTH", "WEIGHTS_FILE",
	"RANK_WORKERS", "RANK_TIMEOUT", "SUGGESTION_LIMIT", "SESSION_TTL",
	"JWT_SECRET", "CLIENT_ORIGIN", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, 5, c.WordLength)
	assert.Equal(t, 5*time.Second, c.RankTimeout)
	assert.Equal(t, 10, c.SuggestionLimit)
	assert.Equal(t, 30*time.Minute, c.SessionTTL)
	assert.Equal(t, solver.DefaultWeights(), c.Weights)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("WORD_LENGTH", "6")
	t.Setenv("RANK_TIMEOUT", "250ms")
	t.Setenv("RATE_LIMIT_RPS", "0.5")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 6, c.WordLength)
	assert.Equal(t, 250*time.Millisecond, c.RankTimeout)
	assert.InDelta(t, 0.5, c.RateLimitRPS, 1e-9)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"WORD_LENGTH", "five"},
		{"WORD_LENGTH", "0"},
		{"WORD_LENGTH", "17"},
		{"RANK_TIMEOUT", "soon"},
		{"SESSION_TTL", "-1m"},
		{"RATE_LIMIT_BURST", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoadWeights(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "weights.yaml")
	require.NoError(t, os.WriteFile(p, []byte("entropy: 2\nvowel_target: 0.3\n"), 0o644))

	w, err := LoadWeights(p)
	require.NoError(t, err)
	assert.Equal(t, 2.0, w.Entropy)
	assert.Equal(t, 0.3, w.VowelTarget)
	assert.Equal(t, solver.DefaultWeights().Frequency, w.Frequency, "unset keys keep defaults")

	clearEnv(t)
	t.Setenv("WEIGHTS_FILE", p)
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, w, c.Weights)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("diversity: -1\n"), 0o644))
	_, err = LoadWeights(bad)
	assert.Error(t, err)

	_, err = LoadWeights(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
