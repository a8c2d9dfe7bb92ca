package solver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedback_Next(t *testing.T) {
	f := Absent
	seq := []Feedback{}
	for i := 0; i < 4; i++ {
		f = f.Next()
		seq = append(seq, f)
	}
	assert.Equal(t, []Feedback{Present, Correct, Absent, Present}, seq)
}

func TestParseFeedback(t *testing.T) {
	tests := []struct {
		in      string
		want    Feedback
		wantErr bool
	}{
		{"absent", Absent, false},
		{"GREY", Absent, false},
		{"0", Absent, false},
		{"present", Present, false},
		{"yellow", Present, false},
		{" 1 ", Present, false},
		{"Correct", Correct, false},
		{"green", Correct, false},
		{"2", Correct, false},
		{"3", Absent, true},
		{"blue", Absent, true},
		{"", Absent, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFeedback(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedGuess)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePattern(t *testing.T) {
	got, err := ParsePattern("01220")
	require.NoError(t, err)
	assert.Equal(t, []Feedback{Absent, Present, Correct, Correct, Absent}, got)
	assert.Equal(t, "01220", FormatPattern(got))

	_, err = ParsePattern("0a220")
	assert.ErrorIs(t, err, ErrMalformedGuess)
}

func TestNewGuess(t *testing.T) {
	fb := []Feedback{Correct, Absent, Absent, Present, Absent}

	t.Run("normalizes case and copies feedback", func(t *testing.T) {
		g, err := NewGuess(" crane ", fb)
		require.NoError(t, err)
		assert.Equal(t, "CRANE", g.Word())

		fb[0] = Absent
		l, f := g.At(0)
		assert.Equal(t, byte('C'), l)
		assert.Equal(t, Correct, f, "guess must not alias the caller's slice")
		fb[0] = Correct

		out := g.Feedback()
		out[1] = Correct
		_, f = g.At(1)
		assert.Equal(t, Absent, f)
	})

	bad := []struct {
		name string
		word string
		fb   []Feedback
	}{
		{"empty", "", nil},
		{"length mismatch", "CRAN", fb},
		{"non-letter", "CR4NE", fb},
		{"unknown feedback", "CRANE", []Feedback{Correct, 7, Absent, Absent, Absent}},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGuess(tt.word, tt.fb)
			assert.ErrorIs(t, err, ErrMalformedGuess)
		})
	}
}

func TestParseGuess(t *testing.T) {
	g, err := ParseGuess("speed:10110")
	require.NoError(t, err)
	assert.Equal(t, "SPEED:10110", g.String())
	assert.False(t, g.Solved())

	g, err = ParseGuess("ERASE:22222")
	require.NoError(t, err)
	assert.True(t, g.Solved())

	_, err = ParseGuess("ERASE")
	assert.ErrorIs(t, err, ErrMalformedGuess)
	_, err = ParseGuess("ERASE:2222")
	assert.ErrorIs(t, err, ErrMalformedGuess)
}

func TestGuess_JSON(t *testing.T) {
	g, err := GuessFor("speed", "erase")
	require.NoError(t, err)

	b, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"word":"SPEED","feedback":["present","absent","present","present","absent"]}`, string(b))

	var back Guess
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, g, back)

	err = json.Unmarshal([]byte(`{"word":"SPEED","feedback":["present"]}`), &back)
	assert.ErrorIs(t, err, ErrMalformedGuess)
}
