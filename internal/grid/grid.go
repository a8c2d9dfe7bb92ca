// internal/grid/grid.go
//
// Input row for one guess, modelled as a small state machine per cell.
// Defines:
//   - Cell: an optional letter plus its feedback (Absent until cycled).
//   - Row:  exactly L cells; Incomplete until every cell holds a letter.
//
// Transitions:
//   - empty cell  --SetLetter-->  letter, Absent
//   - set cell    --SetLetter-->  new letter, Absent
//   - set cell    --Cycle----->   Absent → Present → Correct → Absent
//   - any cell    --Clear----->   empty
//   - Ready row   --Confirm--->   emits a solver.Guess, row starts fresh
//
// A failed operation never changes the row.

package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle-helper/internal/solver"
)

var (
	ErrCellOutOfRange = errors.New("cell out of range")
	ErrEmptyCell      = errors.New("cell has no letter")
	ErrInvalidLetter  = errors.New("invalid letter")
)

// State of a Row.
type State int

const (
	Incomplete State = iota // at least one cell is empty
	Ready                   // every cell holds a letter
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "incomplete"
}

// Cell is one position of the input row.
type Cell struct {
	Letter   byte            // upper-case A–Z; 0 when empty
	Feedback solver.Feedback // meaningful only when the cell is set
}

// Set reports whether the cell holds a letter.
func (c Cell) Set() bool { return c.Letter != 0 }

// Row is the editable guess row of a session.
type Row struct {
	cells []Cell
}

// NewRow returns an empty row of length cells.
func NewRow(length int) *Row {
	return &Row{cells: make([]Cell, length)}
}

// Len returns the number of cells.
func (r *Row) Len() int { return len(r.cells) }

// State reports whether the row can be confirmed.
func (r *Row) State() State {
	for _, c := range r.cells {
		if !c.Set() {
			return Incomplete
		}
	}
	return Ready
}

// Cells returns a snapshot of the row for rendering.
func (r *Row) Cells() []Cell {
	return append([]Cell(nil), r.cells...)
}

// Letters renders the row as text with '_' for empty cells.
func (r *Row) Letters() string {
	var b strings.Builder
	for _, c := range r.cells {
		if c.Set() {
			b.WriteByte(c.Letter)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func (r *Row) check(pos int) error {
	if pos < 0 || pos >= len(r.cells) {
		return fmt.Errorf("%w: position %d, row has %d cells", ErrCellOutOfRange, pos, len(r.cells))
	}
	return nil
}

// SetLetter puts letter (either case) at pos. An existing letter is
// overwritten and the cell's feedback goes back to Absent.
func (r *Row) SetLetter(pos int, letter byte) error {
	if err := r.check(pos); err != nil {
		return err
	}
	l, ok := solver.NormalizeLetter(letter)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLetter, letter)
	}
	r.cells[pos] = Cell{Letter: l, Feedback: solver.Absent}
	return nil
}

// SetWord fills every cell from word, resetting all feedback.
// The word must have exactly Len() letters.
func (r *Row) SetWord(word string) error {
	word = strings.TrimSpace(word)
	if len(word) != len(r.cells) {
		return fmt.Errorf("%w: %q has %d letters, row has %d cells", ErrInvalidLetter, word, len(word), len(r.cells))
	}
	next := make([]Cell, len(r.cells))
	for i := 0; i < len(word); i++ {
		l, ok := solver.NormalizeLetter(word[i])
		if !ok {
			return fmt.Errorf("%w: %q in %q", ErrInvalidLetter, word[i], word)
		}
		next[i] = Cell{Letter: l}
	}
	r.cells = next
	return nil
}

// Cycle advances the feedback of the cell at pos and returns the new value.
func (r *Row) Cycle(pos int) (solver.Feedback, error) {
	if err := r.check(pos); err != nil {
		return solver.Absent, err
	}
	c := &r.cells[pos]
	if !c.Set() {
		return solver.Absent, fmt.Errorf("%w: position %d", ErrEmptyCell, pos)
	}
	c.Feedback = c.Feedback.Next()
	return c.Feedback, nil
}

// Clear empties the cell at pos.
func (r *Row) Clear(pos int) error {
	if err := r.check(pos); err != nil {
		return err
	}
	r.cells[pos] = Cell{}
	return nil
}

// Reset empties every cell.
func (r *Row) Reset() {
	r.cells = make([]Cell, len(r.cells))
}

// Confirm emits the row as a Guess and starts a fresh row.
// An Incomplete row returns solver.ErrIncompleteGuess and is left as is.
func (r *Row) Confirm() (solver.Guess, error) {
	if r.State() != Ready {
		return solver.Guess{}, fmt.Errorf("%w: %s", solver.ErrIncompleteGuess, r.Letters())
	}
	word := make([]byte, len(r.cells))
	fb := make([]solver.Feedback, len(r.cells))
	for i, c := range r.cells {
		word[i], fb[i] = c.Letter, c.Feedback
	}
	g, err := solver.NewGuess(string(word), fb)
	if err != nil {
		return solver.Guess{}, err
	}
	r.Reset()
	return g, nil
}
