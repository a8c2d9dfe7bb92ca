// internal/solver/feedback.go
//
// Core value types for the solving engine.
// Defines:
//   - Feedback: per-letter result of a guess (absent/present/correct).
//   - Guess:    a confirmed word together with its feedback row.
//   - Pattern:  a feedback row packed into a base-3 integer (partition key).
//
// Notes:
//   - Words are upper-case A–Z; constructors normalize their input.
//   - The zero Feedback is Absent, matching an untouched grid cell.

package solver

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Feedback represents the evaluation result for a single letter in a guess.
type Feedback uint8

const (
	Absent  Feedback = iota // letter not in the answer (accounting for duplicates)
	Present                 // letter in the answer, different position
	Correct                 // letter in the answer at this position
)

// String returns the lower-case name used in JSON payloads.
func (f Feedback) String() string {
	switch f {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	}
	return fmt.Sprintf("feedback(%d)", uint8(f))
}

// Valid reports whether f is one of the three defined values.
func (f Feedback) Valid() bool { return f <= Correct }

// Next returns the value a click on a grid cell moves to:
// Absent → Present → Correct → Absent.
func (f Feedback) Next() Feedback {
	switch f {
	case Absent:
		return Present
	case Present:
		return Correct
	}
	return Absent
}

// Digit returns the pattern digit (0 absent, 1 present, 2 correct).
func (f Feedback) Digit() byte { return '0' + byte(f) }

// MarshalText encodes f by name.
func (f Feedback) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid feedback %d", uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText accepts a name ("present") or a digit ("1").
func (f *Feedback) UnmarshalText(b []byte) error {
	v, err := ParseFeedback(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseFeedback parses a feedback name, digit or Wordle colour.
func ParseFeedback(s string) (Feedback, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "absent", "gray", "grey", "0":
		return Absent, nil
	case "present", "yellow", "1":
		return Present, nil
	case "correct", "green", "2":
		return Correct, nil
	}
	return Absent, fmt.Errorf("%w: unknown feedback %q", ErrMalformedGuess, s)
}

// ParsePattern parses a digit string such as "01020" into a feedback row.
func ParsePattern(s string) ([]Feedback, error) {
	s = strings.TrimSpace(s)
	out := make([]Feedback, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '2' {
			return nil, fmt.Errorf("%w: pattern %q: position %d is not 0, 1 or 2", ErrMalformedGuess, s, i)
		}
		out[i] = Feedback(s[i] - '0')
	}
	return out, nil
}

// FormatPattern renders a feedback row as digits ("01020").
func FormatPattern(fb []Feedback) string {
	b := make([]byte, len(fb))
	for i, f := range fb {
		b[i] = f.Digit()
	}
	return string(b)
}

// Pattern is a feedback row packed as a base-3 number, most significant
// digit first. Rows of up to MaxWordLength letters fit.
type Pattern uint64

// PatternCode packs fb into a Pattern.
func PatternCode(fb []Feedback) Pattern {
	var p Pattern
	for _, f := range fb {
		p = p*3 + Pattern(f)
	}
	return p
}

// Guess is a confirmed word with one Feedback per letter.
// Values are copied on construction, so a Guess never changes afterwards.
type Guess struct {
	word     string
	feedback []Feedback
}

// NewGuess validates and normalizes a guess.
// The word is upper-cased; it must be A–Z only and match len(feedback).
// Length against the session's word length is checked by Constraints.Update.
func NewGuess(word string, feedback []Feedback) (Guess, error) {
	word = normalizeWord(word)
	if len(word) == 0 {
		return Guess{}, fmt.Errorf("%w: empty word", ErrMalformedGuess)
	}
	if len(word) != len(feedback) {
		return Guess{}, fmt.Errorf("%w: %q has %d letters but %d feedback values",
			ErrMalformedGuess, word, len(word), len(feedback))
	}
	for i := 0; i < len(word); i++ {
		if !isLetter(word[i]) {
			return Guess{}, fmt.Errorf("%w: %q: character %q is not a letter", ErrMalformedGuess, word, word[i])
		}
		if !feedback[i].Valid() {
			return Guess{}, fmt.Errorf("%w: %q: invalid feedback at position %d", ErrMalformedGuess, word, i)
		}
	}
	return Guess{word: word, feedback: append([]Feedback(nil), feedback...)}, nil
}

// ParseGuess parses "WORD:PATTERN" (e.g. "crane:01020").
func ParseGuess(s string) (Guess, error) {
	word, pattern, ok := strings.Cut(s, ":")
	if !ok {
		return Guess{}, fmt.Errorf("%w: %q: expected WORD:PATTERN", ErrMalformedGuess, s)
	}
	fb, err := ParsePattern(pattern)
	if err != nil {
		return Guess{}, err
	}
	return NewGuess(word, fb)
}

// GuessFor builds the guess a human would enter after playing guess
// against target.
func GuessFor(guess, target string) (Guess, error) {
	guess, target = normalizeWord(guess), normalizeWord(target)
	if len(guess) != len(target) {
		return Guess{}, fmt.Errorf("%w: %q and %q differ in length", ErrMalformedGuess, guess, target)
	}
	return NewGuess(guess, Simulate(guess, target))
}

// Word returns the upper-case guessed word.
func (g Guess) Word() string { return g.word }

// Len returns the number of letters.
func (g Guess) Len() int { return len(g.word) }

// Feedback returns a copy of the feedback row.
func (g Guess) Feedback() []Feedback { return append([]Feedback(nil), g.feedback...) }

// At returns the letter and feedback at position i.
func (g Guess) At(i int) (byte, Feedback) { return g.word[i], g.feedback[i] }

// Pattern returns the packed feedback row.
func (g Guess) Pattern() Pattern { return PatternCode(g.feedback) }

// Solved reports whether every letter is Correct.
func (g Guess) Solved() bool {
	if len(g.feedback) == 0 {
		return false
	}
	for _, f := range g.feedback {
		if f != Correct {
			return false
		}
	}
	return true
}

// String renders the guess as "WORD:PATTERN".
func (g Guess) String() string { return g.word + ":" + FormatPattern(g.feedback) }

// guessJSON is the wire shape of a Guess.
type guessJSON struct {
	Word     string     `json:"word"`
	Feedback []Feedback `json:"feedback"`
}

// MarshalJSON encodes the guess as {"word": ..., "feedback": [...]}.
func (g Guess) MarshalJSON() ([]byte, error) {
	return json.Marshal(guessJSON{Word: g.word, Feedback: g.feedback})
}

// UnmarshalJSON decodes and validates a guess.
func (g *Guess) UnmarshalJSON(b []byte) error {
	var raw guessJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v, err := NewGuess(raw.Word, raw.Feedback)
	if err != nil {
		return err
	}
	*g = v
	return nil
}
