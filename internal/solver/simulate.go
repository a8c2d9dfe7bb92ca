// internal/solver/simulate.go
//
// Feedback simulation: what the game would answer for guess against target.
//
// Uses the standard two-pass Wordle rule:
//   Pass 1: mark exact matches Correct and count the remaining (non-correct)
//           target letters.
//   Pass 2: left to right, a non-correct guess letter is Present while the
//           remaining count for that letter is positive (and consumes one),
//           otherwise Absent.
//
// This is the same counting discipline Constraints.Update inverts, so a
// Guess built from Simulate folds exactly like one typed in by a player.

package solver

// Simulate returns the feedback row for guess played against target.
// Both words are expected upper-case A–Z (dictionary words are). If the
// lengths differ every position is Absent.
func Simulate(guess, target string) []Feedback {
	out := make([]Feedback, len(guess))
	if len(guess) != len(target) {
		return out
	}
	simulateInto(out, guess, target)
	return out
}

// simulateInto writes the feedback row into out (len(out) == len(guess)).
func simulateInto(out []Feedback, guess, target string) {
	var counts [alphabetSize]int
	n := len(guess)

	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			out[i] = Correct
			continue
		}
		out[i] = Absent
		if isLetter(target[i]) {
			counts[letterIndex(target[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if out[i] == Correct || !isLetter(guess[i]) {
			continue
		}
		if j := letterIndex(guess[i]); counts[j] > 0 {
			out[i] = Present
			counts[j]--
		}
	}
}

// patternOf is Simulate packed straight into a Pattern without allocating.
// Used on the ranking hot path; len(guess) == len(target) <= MaxWordLength.
func patternOf(guess, target string) Pattern {
	var buf [MaxWordLength]Feedback
	row := buf[:len(guess)]
	simulateInto(row, guess, target)
	return PatternCode(row)
}
