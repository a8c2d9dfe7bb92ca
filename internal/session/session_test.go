package session

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-helper/internal/solver"
)

var words = []string{
	"CRANE", "SLATE", "AUDIO", "ARISE", "SPEED",
	"ERASE", "THREE", "THERE", "ABIDE", "GUIDE",
	"THOSE", "WHOLE", "STEAL", "STALE", "SHEEP",
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	d, err := solver.Load(words, 5)
	require.NoError(t, err)
	return New(d, opts...)
}

func enter(t *testing.T, s *Session, word, pattern string) {
	t.Helper()
	require.NoError(t, s.Row().SetWord(word))
	for i := 0; i < len(pattern); i++ {
		for n := pattern[i] - '0'; n > 0; n-- {
			_, err := s.Row().Cycle(i)
			require.NoError(t, err)
		}
	}
}

func TestSession_ConfirmRowNarrowsCandidates(t *testing.T) {
	s := newTestSession(t)
	assert.Len(t, s.Candidates(), len(words))

	enter(t, s, "speed", "10110")
	g, err := s.ConfirmRow()
	require.NoError(t, err)
	assert.Equal(t, "SPEED:10110", g.String())

	assert.Equal(t, []string{"ERASE"}, s.Candidates())
	assert.Len(t, s.Guesses(), 1)
	assert.False(t, s.Solved())
	assert.Equal(t, "_____", s.Row().Letters())

	r, err := s.Suggestions(context.Background())
	require.NoError(t, err)
	require.Len(t, r.Suggestions, 1)
	assert.Equal(t, "ERASE", r.Suggestions[0].Word)
}

func TestSession_ConfirmIncompleteRow(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Row().SetLetter(0, 'C'))

	_, err := s.ConfirmRow()
	assert.ErrorIs(t, err, solver.ErrIncompleteGuess)
	assert.Empty(t, s.Guesses())
	assert.Equal(t, "C____", s.Row().Letters())
	assert.Len(t, s.Candidates(), len(words))
}

func TestSession_ContradictoryFeedback(t *testing.T) {
	s := newTestSession(t)

	// A correct at position 2, then A absent at the same position.
	g1, err := solver.ParseGuess("CRANE:00200")
	require.NoError(t, err)
	g2, err := solver.ParseGuess("CRANE:00000")
	require.NoError(t, err)
	require.NoError(t, s.Apply(g1))
	require.NoError(t, s.Apply(g2))

	assert.Empty(t, s.Candidates())
	_, err = s.Suggestions(context.Background())
	assert.ErrorIs(t, err, solver.ErrNoCandidatesRemain)
}

func TestSession_SuggestionsCachedUntilConfirm(t *testing.T) {
	s := newTestSession(t)

	first, err := s.Suggestions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(words), first.Candidates)
	require.NotNil(t, s.cached)

	again, err := s.Suggestions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, again)

	g, err := solver.GuessFor("CRANE", "THOSE")
	require.NoError(t, err)
	require.NoError(t, s.Apply(g))
	assert.Nil(t, s.cached)

	after, err := s.Suggestions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(s.Candidates()), after.Candidates)
}

func TestSession_PartialRankingNotCached(t *testing.T) {
	s := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := s.Suggestions(ctx)
	require.NoError(t, err)
	assert.True(t, r.Partial)
	assert.Nil(t, s.cached)
}

func TestSession_SuggestionsFromCandidates(t *testing.T) {
	s := newTestSession(t)
	g, err := solver.GuessFor("CRANE", "THOSE")
	require.NoError(t, err)
	require.NoError(t, s.Apply(g))

	r, err := s.SuggestionsFrom(context.Background(), s.Candidates())
	require.NoError(t, err)
	for _, sug := range r.Suggestions {
		assert.Contains(t, s.Candidates(), sug.Word)
		assert.True(t, sug.IsCandidate)
	}
}

func TestSession_SolvedAndReset(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSession(t, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)), WithID("abc"))

	enter(t, s, "THOSE", "22222")
	_, err := s.ConfirmRow()
	require.NoError(t, err)
	assert.True(t, s.Solved())
	answer, ok := s.Answer()
	assert.True(t, ok)
	assert.Equal(t, "THOSE", answer)
	assert.Contains(t, buf.String(), `"session":"abc"`)

	s.Reset()
	assert.False(t, s.Solved())
	assert.Empty(t, s.Guesses())
	assert.Len(t, s.Candidates(), len(words))
	assert.Zero(t, s.Constraints().Guesses())
	_, ok = s.Answer()
	assert.False(t, ok)
}

func TestSession_ApplyWrongLength(t *testing.T) {
	s := newTestSession(t)
	g, err := solver.ParseGuess("CRANES:000000")
	require.NoError(t, err)

	assert.ErrorIs(t, s.Apply(g), solver.ErrMalformedGuess)
	assert.Empty(t, s.Guesses())
}
