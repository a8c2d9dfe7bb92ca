package solver

import "github.com/samber/lo"

// Filter returns the dictionary words consistent with c, in dictionary order.
// The result is recomputed from scratch on every call.
func Filter(d *Dictionary, c *Constraints) []string {
	if c.Length() != d.WordLength() {
		return []string{}
	}
	return lo.Filter(d.words, func(w string, _ int) bool { return c.Allows(w) })
}
