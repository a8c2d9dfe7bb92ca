// internal/solver/rank.go
//
// Suggestion engine: scores pool words as the next guess.
//
// Responsibilities:
//   - Partition the candidate set by the feedback each pool word would get
//     and score the expected information (Shannon entropy, bits).
//   - Add the secondary heuristics (letter frequency, diversity, vowel
//     balance, candidate bonus) scaled by Weights.
//   - Fan the pool out over an errgroup of Workers goroutines. Each worker
//     owns a contiguous chunk of result slots, so no locking is needed.
//   - Stop early when ctx is done and hand back what was scored.
//
// The dictionary, candidates and pool are read-only for the whole call.

package solver

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// DefaultOpeners are well-known first guesses for five-letter Wordle.
// Hosts return them instead of ranking a large dictionary from scratch.
var DefaultOpeners = []string{"SLATE", "CRANE", "AUDIO", "ARISE", "OUTER"}

// Score holds every term of a suggestion's score and the weighted total.
type Score struct {
	Entropy   float64 `json:"entropy"`
	Frequency float64 `json:"frequency"`
	Diversity float64 `json:"diversity"`
	Balance   float64 `json:"balance"`
	Candidate float64 `json:"candidate"`
	Total     float64 `json:"total"`
}

// Suggestion is one ranked pool word.
type Suggestion struct {
	Word        string `json:"word"`
	Score       Score  `json:"score"`
	Groups      int    `json:"groups"` // distinct feedback patterns over the candidates
	IsCandidate bool   `json:"isCandidate"`
}

// Ranking is the result of Ranker.Rank, best first.
type Ranking struct {
	Suggestions []Suggestion `json:"suggestions"`
	Candidates  int          `json:"candidates"`
	Scored      int          `json:"scored"`
	Partial     bool         `json:"partial"` // ctx ended before the whole pool was scored
}

// Best returns the top suggestion.
func (r Ranking) Best() (Suggestion, bool) {
	if len(r.Suggestions) == 0 {
		return Suggestion{}, false
	}
	return r.Suggestions[0], true
}

// Words returns the suggested words in rank order.
func (r Ranking) Words() []string {
	return lo.Map(r.Suggestions, func(s Suggestion, _ int) string { return s.Word })
}

// Ranker scores guesses against a dictionary. A Ranker is safe for
// concurrent use once built; Rank does not mutate it.
type Ranker struct {
	dict    *Dictionary
	Weights Weights
	Workers int // <= 0 means GOMAXPROCS
	Limit   int // <= 0 means no limit
}

// RankerOption configures a Ranker.
type RankerOption func(*Ranker)

// WithWeights sets the scoring weights.
func WithWeights(w Weights) RankerOption { return func(r *Ranker) { r.Weights = w } }

// WithWorkers sets the number of scoring goroutines.
func WithWorkers(n int) RankerOption { return func(r *Ranker) { r.Workers = n } }

// WithLimit truncates rankings to n suggestions.
func WithLimit(n int) RankerOption { return func(r *Ranker) { r.Limit = n } }

// NewRanker returns a Ranker over d with DefaultWeights.
func NewRanker(d *Dictionary, opts ...RankerOption) *Ranker {
	r := &Ranker{dict: d, Weights: DefaultWeights()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Dictionary returns the dictionary the ranker scores against.
func (r *Ranker) Dictionary() *Dictionary { return r.dict }

// Rank scores every pool word against candidates.
//
// A nil pool means the whole dictionary. Pool words are upper-cased and
// words of the wrong length or with non-letters are skipped. Suggestions are
// ordered by descending Total; ties go by dictionary order, with words
// outside the dictionary last in pool order.
//
// With no candidates Rank returns ErrNoCandidatesRemain. With exactly one
// candidate the ranking holds only that word. If ctx is done before the
// pool is exhausted the words scored so far are returned with Partial set
// and a nil error.
func (r *Ranker) Rank(ctx context.Context, candidates, pool []string) (Ranking, error) {
	cands := r.normalize(candidates)
	if len(cands) == 0 {
		return Ranking{}, fmt.Errorf("%w: nothing left to rank against", ErrNoCandidatesRemain)
	}
	if len(cands) == 1 {
		s := r.score(cands[0], cands, true, make(map[Pattern]int, 1))
		return Ranking{Suggestions: []Suggestion{s}, Candidates: 1, Scored: 1}, nil
	}

	if pool == nil {
		pool = r.dict.words
	} else {
		pool = r.normalize(pool)
	}
	isCand := lo.Keyify(cands)

	results := make([]Suggestion, len(pool))
	done := make([]bool, len(pool))

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, max(len(pool), 1))
	chunk := (len(pool) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(pool); start += chunk {
		end := min(start+chunk, len(pool))
		g.Go(func() error {
			groups := make(map[Pattern]int, 64)
			for i := start; i < end; i++ {
				if gctx.Err() != nil {
					return nil
				}
				_, ok := isCand[pool[i]]
				results[i] = r.score(pool[i], cands, ok, groups)
				done[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Ranking{}, err
	}

	scored := make([]Suggestion, 0, len(pool))
	for i, s := range results {
		if done[i] {
			scored = append(scored, s)
		}
	}
	slices.SortStableFunc(scored, func(a, b Suggestion) int {
		if c := cmp.Compare(b.Score.Total, a.Score.Total); c != 0 {
			return c
		}
		return cmp.Compare(r.dictOrder(a.Word), r.dictOrder(b.Word))
	})

	out := Ranking{
		Candidates: len(cands),
		Scored:     len(scored),
		Partial:    len(scored) < len(pool),
	}
	if r.Limit > 0 && len(scored) > r.Limit {
		scored = scored[:r.Limit]
	}
	out.Suggestions = scored
	return out, nil
}

// ScoreWord scores a single guess against candidates, without ranking.
func (r *Ranker) ScoreWord(guess string, candidates []string) (Suggestion, error) {
	guess = normalizeWord(guess)
	if !r.dict.validWord(guess) {
		return Suggestion{}, fmt.Errorf("%w: %q is not a %d-letter word", ErrMalformedGuess, guess, r.dict.length)
	}
	cands := r.normalize(candidates)
	if len(cands) == 0 {
		return Suggestion{}, ErrNoCandidatesRemain
	}
	return r.score(guess, cands, lo.Contains(cands, guess), make(map[Pattern]int, 64)), nil
}

// dictOrder is the tie-break key of word.
func (r *Ranker) dictOrder(word string) int {
	if i, ok := r.dict.Index(word); ok {
		return i
	}
	return math.MaxInt
}

func (r *Ranker) normalize(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = normalizeWord(w); r.dict.validWord(w) {
			out = append(out, w)
		}
	}
	return lo.Uniq(out)
}

// score computes every term for guess. groups is scratch space owned by
// the calling worker.
func (r *Ranker) score(guess string, cands []string, isCandidate bool, groups map[Pattern]int) Suggestion {
	clear(groups)
	for _, t := range cands {
		groups[patternOf(guess, t)]++
	}
	n := float64(len(cands))
	var entropy float64
	for _, c := range groups {
		p := float64(c) / n
		entropy -= p * math.Log2(p)
	}

	var distinct letterSet
	vowels := 0
	for i := 0; i < len(guess); i++ {
		distinct.add(letterIndex(guess[i]))
		if IsVowel(guess[i]) {
			vowels++
		}
	}
	var freq float64
	for _, l := range distinct.letters() {
		freq += r.dict.LetterFrequency(l)
	}
	freq /= float64(distinct.count())

	L := float64(len(guess))
	target := r.Weights.VowelTarget
	balance := 1 - math.Abs(float64(vowels)/L-target)/math.Max(target, 1-target)

	var bonus float64
	if isCandidate {
		bonus = 1 / n
	}

	s := Score{
		Entropy:   entropy,
		Frequency: freq,
		Diversity: float64(distinct.count()) / L,
		Balance:   math.Max(balance, 0),
		Candidate: bonus,
	}
	w := r.Weights
	s.Total = w.Entropy*s.Entropy +
		w.Frequency*s.Frequency +
		w.Diversity*s.Diversity +
		w.Balance*s.Balance +
		w.Candidate*s.Candidate

	return Suggestion{Word: guess, Score: s, Groups: len(groups), IsCandidate: isCandidate}
}
