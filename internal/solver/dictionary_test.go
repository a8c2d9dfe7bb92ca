package solver

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	d, err := Load([]string{"crane", " SLATE", "Crane", "audio"}, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, d.WordLength())
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []string{"CRANE", "SLATE", "AUDIO"}, slices.Collect(d.Words()))
	assert.Equal(t, "SLATE", d.Word(1))

	i, ok := d.Index("audio")
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	assert.True(t, d.Contains("Slate"))
	assert.False(t, d.Contains("SLATES"))

	all := d.All()
	all[0] = "XXXXX"
	assert.Equal(t, "CRANE", d.Word(0))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		words  []string
		length int
	}{
		{"empty list", nil, 5},
		{"wrong length", []string{"CRANE", "CRANES"}, 5},
		{"digit", []string{"CR4NE"}, 5},
		{"accented letter", []string{"CAFÉS"}, 5},
		{"zero length", []string{"A"}, 0},
		{"too long", []string{"ABCDEFGHIJKLMNOPQ"}, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.words, tt.length)
			assert.ErrorIs(t, err, ErrInvalidDictionary)
		})
	}
}

func TestDictionary_LetterFrequency(t *testing.T) {
	d, err := Load([]string{"ABCDE", "AAFGH"}, 5)
	require.NoError(t, err)

	assert.InDelta(t, 0.3, d.LetterFrequency('A'), 1e-9)
	assert.InDelta(t, 0.3, d.LetterFrequency('a'), 1e-9)
	assert.InDelta(t, 0.1, d.LetterFrequency('H'), 1e-9)
	assert.Zero(t, d.LetterFrequency('Z'))
	assert.Zero(t, d.LetterFrequency('?'))
}

func TestFilter_KeepsDictionaryOrder(t *testing.T) {
	d, err := Load(testWords, 5)
	require.NoError(t, err)

	c := NewConstraints(5)
	assert.Equal(t, d.All(), Filter(d, c))

	require.NoError(t, c.Update(mustGuess(t, "CRANE:00002")))
	got := Filter(d, c)
	require.NotEmpty(t, got)
	for _, w := range got {
		assert.Equal(t, byte('E'), w[4], w)
	}
	assert.True(t, slices.IsSortedFunc(got, func(a, b string) int {
		ia, _ := d.Index(a)
		ib, _ := d.Index(b)
		return ia - ib
	}))

	assert.Empty(t, Filter(d, NewConstraints(4)))
}
