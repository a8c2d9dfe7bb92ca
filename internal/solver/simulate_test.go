package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		target string
		want   string
	}{
		{"exact match", "CRANE", "CRANE", "22222"},
		{"nothing shared", "BUMPY", "CRANE", "00000"},
		{"repeated guess letter, two in target", "SPEED", "ERASE", "10110"},
		{"green consumes before yellow", "EERIE", "THREE", "10202"},
		{"second copy absent when target has one", "SPEED", "ABIDE", "00101"},
		{"yellow and green of the same letter", "LLAMA", "ALLEY", "12100"},
		{"triple letter guess", "EEEEE", "THREE", "00022"},
		{"anagram", "LEAST", "SLATE", "11211"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simulate(tt.guess, tt.target)
			assert.Equal(t, tt.want, FormatPattern(got))
			assert.Equal(t, PatternCode(got), patternOf(tt.guess, tt.target))
		})
	}
}

func TestSimulate_LengthMismatch(t *testing.T) {
	got := Simulate("CRANE", "CRANES")
	require.Len(t, got, 5)
	assert.Equal(t, "00000", FormatPattern(got))
}

func TestPatternCode(t *testing.T) {
	assert.Equal(t, Pattern(0), PatternCode([]Feedback{Absent, Absent, Absent, Absent, Absent}))
	assert.Equal(t, Pattern(242), PatternCode([]Feedback{Correct, Correct, Correct, Correct, Correct}))
	// most significant digit first: 1*81 + 0*27 + 1*9 + 1*3 + 0
	assert.Equal(t, Pattern(93), PatternCode([]Feedback{Present, Absent, Present, Present, Absent}))

	row, err := ParsePattern("10110")
	require.NoError(t, err)
	assert.Equal(t, Pattern(93), PatternCode(row))
}
