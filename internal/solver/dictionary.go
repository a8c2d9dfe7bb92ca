// internal/solver/dictionary.go
//
// Dictionary: the immutable, ordered word list every session filters and
// ranks against, plus a letter-frequency table computed once at Load.
//
// Constraints:
//   • Every word is exactly WordLength() letters A–Z (input is upper-cased).
//   • Duplicates are dropped; the first occurrence keeps its position.
//   • Nothing mutates a Dictionary after Load, so one value is shared by all
//     sessions and ranking workers without locking.

package solver

import (
	"fmt"
	"iter"
	"slices"

	"github.com/samber/lo"
)

// MaxWordLength bounds the configured word length so that a feedback row
// always packs into a Pattern.
const MaxWordLength = 16

// Dictionary is a validated, ordered word list.
type Dictionary struct {
	length int
	words  []string
	index  map[string]int
	freq   [alphabetSize]float64
}

// Load validates words and builds a Dictionary of length-letter words.
// Returns ErrInvalidDictionary (wrapped with the offending word) if any word
// has the wrong length or a non-letter, or if nothing is left.
func Load(words []string, length int) (*Dictionary, error) {
	if length < 1 || length > MaxWordLength {
		return nil, fmt.Errorf("%w: word length %d outside 1..%d", ErrInvalidDictionary, length, MaxWordLength)
	}

	normalized := lo.Map(words, func(w string, _ int) string { return normalizeWord(w) })
	for i, w := range normalized {
		if len(w) != length {
			return nil, fmt.Errorf("%w: word %d %q has %d letters, want %d", ErrInvalidDictionary, i, w, len(w), length)
		}
		for j := 0; j < len(w); j++ {
			if !isLetter(w[j]) {
				return nil, fmt.Errorf("%w: word %d %q contains %q", ErrInvalidDictionary, i, w, w[j])
			}
		}
	}

	unique := lo.Uniq(normalized)
	if len(unique) == 0 {
		return nil, fmt.Errorf("%w: no words", ErrInvalidDictionary)
	}

	d := &Dictionary{
		length: length,
		words:  unique,
		index:  make(map[string]int, len(unique)),
	}
	var counts [alphabetSize]int
	for i, w := range unique {
		d.index[w] = i
		for j := 0; j < len(w); j++ {
			counts[letterIndex(w[j])]++
		}
	}
	total := float64(len(unique) * length)
	for i, c := range counts {
		d.freq[i] = float64(c) / total
	}
	return d, nil
}

// WordLength returns L.
func (d *Dictionary) WordLength() int { return d.length }

// Len returns the number of words.
func (d *Dictionary) Len() int { return len(d.words) }

// Word returns the i-th word in dictionary order.
func (d *Dictionary) Word(i int) string { return d.words[i] }

// Words yields every word in dictionary order.
func (d *Dictionary) Words() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, w := range d.words {
			if !yield(w) {
				return
			}
		}
	}
}

// All returns a copy of the word list.
func (d *Dictionary) All() []string { return slices.Clone(d.words) }

// Index returns the position of word (any case) in dictionary order.
func (d *Dictionary) Index(word string) (int, bool) {
	i, ok := d.index[normalizeWord(word)]
	return i, ok
}

// Contains reports whether word (any case) is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.index[normalizeWord(word)]
	return ok
}

// LetterFrequency returns the share of all letter slots in the dictionary
// holding letter (either case). Unknown characters report 0.
func (d *Dictionary) LetterFrequency(letter byte) float64 {
	l, ok := NormalizeLetter(letter)
	if !ok {
		return 0
	}
	return d.freq[letterIndex(l)]
}

// validWord reports whether w (already normalized) could be a guess here.
func (d *Dictionary) validWord(w string) bool {
	if len(w) != d.length {
		return false
	}
	for i := 0; i < len(w); i++ {
		if !isLetter(w[i]) {
			return false
		}
	}
	return true
}
