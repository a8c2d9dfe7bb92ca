package solver

import (
	"math/bits"
	"strings"
)

const alphabetSize = 26

// normalizeWord trims and upper-cases a word.
func normalizeWord(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// isLetter reports whether b is an upper-case ASCII letter.
func isLetter(b byte) bool { return b >= 'A' && b <= 'Z' }

// letterIndex maps 'A'..'Z' to 0..25.
// Callers validate with isLetter first.
func letterIndex(b byte) int { return int(b - 'A') }

// NormalizeLetter upper-cases an ASCII letter; ok is false for anything else.
func NormalizeLetter(b byte) (letter byte, ok bool) {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	return b, isLetter(b)
}

// IsVowel reports whether the letter is one of A E I O U (either case).
func IsVowel(b byte) bool {
	switch b {
	case 'A', 'E', 'I', 'O', 'U', 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// letterSet is a bitmask over the 26 letters.
type letterSet uint32

func (s letterSet) has(i int) bool { return s&(1<<uint(i)) != 0 }
func (s *letterSet) add(i int)     { *s |= 1 << uint(i) }
func (s letterSet) count() int     { return bits.OnesCount32(uint32(s)) }
func (s letterSet) letters() []byte {
	out := make([]byte, 0, s.count())
	for i := 0; i < alphabetSize; i++ {
		if s.has(i) {
			out = append(out, byte('A'+i))
		}
	}
	return out
}
