package solver

import "fmt"

// Weights scales each scoring term into Score.Total.
//
// Entropy dominates; the other terms only separate guesses whose expected
// information is close. Frequency is a mean share per letter slot (around
// 0.04–0.10 for English), so its weight is larger than its effect suggests.
type Weights struct {
	Entropy   float64 `yaml:"entropy" json:"entropy"`
	Frequency float64 `yaml:"frequency" json:"frequency"`
	Diversity float64 `yaml:"diversity" json:"diversity"`
	Balance   float64 `yaml:"balance" json:"balance"`
	Candidate float64 `yaml:"candidate" json:"candidate"`

	// VowelTarget is the vowel share per word that scores a full Balance.
	VowelTarget float64 `yaml:"vowel_target" json:"vowelTarget"`
}

// DefaultWeights returns the weights used when nothing is configured.
func DefaultWeights() Weights {
	return Weights{
		Entropy:     1.0,
		Frequency:   0.5,
		Diversity:   0.05,
		Balance:     0.02,
		Candidate:   1.0,
		VowelTarget: 0.4,
	}
}

// Validate rejects negative weights and a vowel target outside (0, 1).
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"entropy":   w.Entropy,
		"frequency": w.Frequency,
		"diversity": w.Diversity,
		"balance":   w.Balance,
		"candidate": w.Candidate,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s is negative (%g)", name, v)
		}
	}
	if w.VowelTarget <= 0 || w.VowelTarget >= 1 {
		return fmt.Errorf("vowel_target must be in (0, 1), got %g", w.VowelTarget)
	}
	return nil
}
