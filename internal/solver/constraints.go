// internal/solver/constraints.go
//
// Constraints: everything the confirmed guesses of one session say about the
// answer.
//
// Responsibilities:
//   - Fold a Guess in three passes (Correct, then Present, then Absent).
//     The order matters for repeated letters: a gray copy of a letter that is
//     also green/yellow in the same guess only caps its count, it does not
//     ban the letter.
//   - Answer Allows(word) for the candidate filter.
//
// State only tightens through Update and only loosens through Reset.

package solver

import (
	"fmt"
	"slices"
)

// unbounded marks a letter with no upper count.
const unbounded = -1

// Constraints accumulates feedback for words of a fixed length.
// The zero value is not usable; call NewConstraints.
type Constraints struct {
	length     int
	fixed      []byte      // 0 = position still open
	excludedAt []letterSet // letters known not to sit at each position
	minCount   [alphabetSize]int
	maxCount   [alphabetSize]int
	excluded   letterSet // letters not in the answer at all

	contradictory bool
	guesses       int
}

// NewConstraints returns an empty state for length-letter words.
func NewConstraints(length int) *Constraints {
	c := &Constraints{length: length}
	c.Reset()
	return c
}

// Reset clears every constraint.
func (c *Constraints) Reset() {
	c.fixed = make([]byte, c.length)
	c.excludedAt = make([]letterSet, c.length)
	c.minCount = [alphabetSize]int{}
	for i := range c.maxCount {
		c.maxCount[i] = unbounded
	}
	c.excluded = 0
	c.contradictory = false
	c.guesses = 0
}

// Update folds one confirmed guess into the state.
// A guess of the wrong length returns ErrMalformedGuess and changes nothing.
func (c *Constraints) Update(g Guess) error {
	if g.Len() != c.length {
		return fmt.Errorf("%w: %q has %d letters, want %d", ErrMalformedGuess, g.Word(), g.Len(), c.length)
	}
	for i := 0; i < g.Len(); i++ {
		if l, f := g.At(i); !isLetter(l) || !f.Valid() {
			return fmt.Errorf("%w: %q: bad letter or feedback at position %d", ErrMalformedGuess, g.Word(), i)
		}
	}

	var seen [alphabetSize]int

	// Correct
	for i := 0; i < g.Len(); i++ {
		l, f := g.At(i)
		if f != Correct {
			continue
		}
		switch c.fixed[i] {
		case 0:
			c.fixed[i] = l
		case l:
		default:
			c.contradictory = true
		}
		seen[letterIndex(l)]++
	}

	// Present
	for i := 0; i < g.Len(); i++ {
		l, f := g.At(i)
		if f != Present {
			continue
		}
		c.excludedAt[i].add(letterIndex(l))
		seen[letterIndex(l)]++
	}
	for j, n := range seen {
		if n > c.minCount[j] {
			c.minCount[j] = n
		}
	}

	// Absent
	for i := 0; i < g.Len(); i++ {
		l, f := g.At(i)
		if f != Absent {
			continue
		}
		j := letterIndex(l)
		c.excludedAt[i].add(j)
		if seen[j] > 0 {
			if c.maxCount[j] == unbounded || seen[j] < c.maxCount[j] {
				c.maxCount[j] = seen[j]
			}
		} else {
			c.excluded.add(j)
		}
	}

	c.guesses++
	return nil
}

// Allows reports whether word is consistent with every constraint.
// word must be upper-case; dictionary words always are.
func (c *Constraints) Allows(word string) bool {
	if c.contradictory || len(word) != c.length {
		return false
	}

	var counts [alphabetSize]int
	for i := 0; i < len(word); i++ {
		b := word[i]
		if !isLetter(b) {
			return false
		}
		if c.fixed[i] != 0 && b != c.fixed[i] {
			return false
		}
		j := letterIndex(b)
		if c.excludedAt[i].has(j) {
			return false
		}
		counts[j]++
	}

	for j := 0; j < alphabetSize; j++ {
		if counts[j] < c.minCount[j] {
			return false
		}
		if c.maxCount[j] != unbounded && counts[j] > c.maxCount[j] {
			return false
		}
		// a letter that is also required wins over the global ban
		if counts[j] > 0 && c.excluded.has(j) && c.minCount[j] == 0 {
			return false
		}
	}
	return true
}

// Length returns the word length the state was created for.
func (c *Constraints) Length() int { return c.length }

// Guesses returns how many guesses have been folded since the last Reset.
func (c *Constraints) Guesses() int { return c.guesses }

// Contradictory reports whether two guesses fixed different letters at the
// same position. No word passes the filter afterwards.
func (c *Constraints) Contradictory() bool { return c.contradictory }

// Fixed returns the known letter per position (0 where unknown).
func (c *Constraints) Fixed() []byte { return slices.Clone(c.fixed) }

// ExcludedAt returns the letters ruled out at pos, sorted.
func (c *Constraints) ExcludedAt(pos int) []byte { return c.excludedAt[pos].letters() }

// GloballyExcluded returns the letters known to be absent, sorted.
func (c *Constraints) GloballyExcluded() []byte { return c.excluded.letters() }

// MinCount returns the minimum number of times letter must occur.
func (c *Constraints) MinCount(letter byte) int {
	l, ok := NormalizeLetter(letter)
	if !ok {
		return 0
	}
	return c.minCount[letterIndex(l)]
}

// MaxCount returns the maximum number of times letter may occur, or -1 when
// no upper bound is known.
func (c *Constraints) MaxCount(letter byte) int {
	l, ok := NormalizeLetter(letter)
	if !ok {
		return unbounded
	}
	return c.maxCount[letterIndex(l)]
}
