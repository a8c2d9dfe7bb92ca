// internal/session/session.go
//
// One solving session: the constraint state, the candidate set derived from
// it, the input row, and a cached ranking.
//
// Responsibilities:
//   - Confirm the input row (or apply a ready-made Guess), fold it into the
//     constraints and recompute the candidate set from the dictionary.
//   - Serve suggestions, caching the full-dictionary ranking until the next
//     confirm or reset.
//   - Track solved state and the confirmed guesses for history.
//
// A Session is not safe for concurrent use. Hosts serialize access per
// session (see internal/store).

package session

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-helper/internal/grid"
	"github.com/robalobadob/wordle-helper/internal/solver"
)

// Session is the per-user solving state over a shared Dictionary.
type Session struct {
	id      string
	dict    *solver.Dictionary
	ranker  *solver.Ranker
	base    zerolog.Logger
	log     zerolog.Logger
	started time.Time

	constraints *solver.Constraints
	candidates  []string
	row         *grid.Row
	guesses     []solver.Guess
	solved      bool

	cached *solver.Ranking // full-dictionary ranking for the current candidates
}

// Option configures a Session.
type Option func(*Session)

// WithRanker sets the ranker used for suggestions. It must be built over
// the same dictionary.
func WithRanker(r *solver.Ranker) Option { return func(s *Session) { s.ranker = r } }

// WithLogger sets the logger for confirmations and contradictions.
func WithLogger(l zerolog.Logger) Option { return func(s *Session) { s.base = l } }

// WithID sets the session id used in log fields.
func WithID(id string) Option { return func(s *Session) { s.id = id } }

// New starts an empty session over dict.
func New(dict *solver.Dictionary, opts ...Option) *Session {
	s := &Session{
		dict:    dict,
		base:    zerolog.Nop(),
		started: time.Now(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.ranker == nil {
		s.ranker = solver.NewRanker(dict)
	}
	s.constraints = solver.NewConstraints(dict.WordLength())
	s.row = grid.NewRow(dict.WordLength())
	s.candidates = dict.All()
	s.bindLogger()
	return s
}

// SetID assigns the session id (the store does this on Create).
func (s *Session) SetID(id string) {
	s.id = id
	s.bindLogger()
}

func (s *Session) bindLogger() {
	s.log = s.base
	if s.id != "" {
		s.log = s.base.With().Str("session", s.id).Logger()
	}
}

// ID returns the session id, empty until assigned.
func (s *Session) ID() string { return s.id }

// Started returns when the session (or its last reset) began.
func (s *Session) Started() time.Time { return s.started }

// Dictionary returns the shared dictionary.
func (s *Session) Dictionary() *solver.Dictionary { return s.dict }

// Row returns the editable input row.
func (s *Session) Row() *grid.Row { return s.row }

// Constraints exposes the accumulated constraints for display.
// Callers must not Update or Reset it directly.
func (s *Session) Constraints() *solver.Constraints { return s.constraints }

// ConfirmRow confirms the input row and applies the resulting guess.
// An incomplete row returns solver.ErrIncompleteGuess and changes nothing.
func (s *Session) ConfirmRow() (solver.Guess, error) {
	if s.row.State() != grid.Ready {
		return solver.Guess{}, fmt.Errorf("%w: %s", solver.ErrIncompleteGuess, s.row.Letters())
	}
	g, err := s.row.Confirm()
	if err != nil {
		return solver.Guess{}, err
	}
	if err := s.Apply(g); err != nil {
		return solver.Guess{}, err
	}
	return g, nil
}

// Apply folds a guess built outside the input row.
func (s *Session) Apply(g solver.Guess) error {
	if err := s.constraints.Update(g); err != nil {
		return err
	}
	before := len(s.candidates)
	s.guesses = append(s.guesses, g)
	s.candidates = solver.Filter(s.dict, s.constraints)
	s.cached = nil
	if g.Solved() {
		s.solved = true
	}

	s.log.Debug().
		Str("guess", g.String()).
		Int("before", before).
		Int("candidates", len(s.candidates)).
		Bool("solved", s.solved).
		Msg("guess applied")
	if len(s.candidates) == 0 {
		s.log.Warn().
			Str("guess", g.String()).
			Bool("contradictory", s.constraints.Contradictory()).
			Msg("no candidates remain")
	}
	return nil
}

// Candidates returns the words still consistent with every guess, in
// dictionary order.
func (s *Session) Candidates() []string { return slices.Clone(s.candidates) }

// Suggestions ranks the whole dictionary as the next guess.
// The result is cached until the next confirm or reset; partial rankings
// are not cached.
func (s *Session) Suggestions(ctx context.Context) (solver.Ranking, error) {
	if s.cached != nil {
		return *s.cached, nil
	}
	r, err := s.rank(ctx, nil)
	if err != nil {
		return solver.Ranking{}, err
	}
	if !r.Partial {
		s.cached = &r
	}
	return r, nil
}

// SuggestionsFrom ranks an explicit pool, e.g. Candidates() for hard mode.
func (s *Session) SuggestionsFrom(ctx context.Context, pool []string) (solver.Ranking, error) {
	if pool == nil {
		pool = []string{}
	}
	return s.rank(ctx, pool)
}

func (s *Session) rank(ctx context.Context, pool []string) (solver.Ranking, error) {
	if len(s.candidates) == 0 {
		return solver.Ranking{}, fmt.Errorf("%w after %d guesses", solver.ErrNoCandidatesRemain, len(s.guesses))
	}
	started := time.Now()
	r, err := s.ranker.Rank(ctx, s.candidates, pool)
	if err != nil {
		return solver.Ranking{}, err
	}
	ev := s.log.Debug()
	if r.Partial {
		ev = s.log.Warn()
	}
	ev.Int("candidates", r.Candidates).
		Int("scored", r.Scored).
		Bool("partial", r.Partial).
		Dur("took", time.Since(started)).
		Msg("ranked")
	return r, nil
}

// Guesses returns the confirmed guesses in order.
func (s *Session) Guesses() []solver.Guess { return slices.Clone(s.guesses) }

// Solved reports whether a confirmed guess was all Correct.
func (s *Session) Solved() bool { return s.solved }

// Answer returns the solved word, if any.
func (s *Session) Answer() (string, bool) {
	if !s.solved {
		return "", false
	}
	for _, g := range s.guesses {
		if g.Solved() {
			return g.Word(), true
		}
	}
	return "", false
}

// Reset clears the constraints, candidates, row, guesses and cache.
func (s *Session) Reset() {
	s.constraints.Reset()
	s.candidates = s.dict.All()
	s.row.Reset()
	s.guesses = nil
	s.solved = false
	s.cached = nil
	s.started = time.Now()
	s.log.Debug().Msg("session reset")
}
