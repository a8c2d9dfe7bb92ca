package solver

import "errors"

var (
	// ErrInvalidDictionary: the word list handed to Load is unusable.
	ErrInvalidDictionary = errors.New("invalid dictionary")

	// ErrMalformedGuess: a guess of the wrong length or with bad letters/feedback.
	// The constraint state is left untouched.
	ErrMalformedGuess = errors.New("malformed guess")

	// ErrIncompleteGuess: an input row was confirmed before every cell had a letter.
	ErrIncompleteGuess = errors.New("incomplete guess")

	// ErrNoCandidatesRemain: the accumulated feedback is contradictory, or the
	// answer is missing from the dictionary.
	ErrNoCandidatesRemain = errors.New("no candidates remain")
)
