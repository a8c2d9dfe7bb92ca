// internal/history/store.go
//
// Solve history: one row per finished session in the solves table.
// Written best-effort by the HTTP layer when a session is solved, reset,
// deleted or swept; read back for /stats.

package history

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle-helper/internal/session"
	"github.com/robalobadob/wordle-helper/internal/solver"
)

// Result is one finished session.
type Result struct {
	SessionID  string    `json:"sessionId"`
	WordLength int       `json:"wordLength"`
	Guesses    int       `json:"guesses"`
	Solved     bool      `json:"solved"`
	Answer     string    `json:"answer,omitempty"`
	Trail      []string  `json:"trail"` // WORD:PATTERN per guess
	ElapsedMs  int64     `json:"elapsedMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromSession summarizes s for recording.
func FromSession(s *session.Session, now time.Time) Result {
	guesses := s.Guesses()
	answer, _ := s.Answer()
	return Result{
		SessionID:  s.ID(),
		WordLength: s.Dictionary().WordLength(),
		Guesses:    len(guesses),
		Solved:     s.Solved(),
		Answer:     answer,
		Trail:      lo.Map(guesses, func(g solver.Guess, _ int) string { return g.String() }),
		ElapsedMs:  now.Sub(s.Started()).Milliseconds(),
	}
}

// Stats aggregates the solves table.
type Stats struct {
	Sessions     int         `json:"sessions"`
	Solved       int         `json:"solved"`
	MeanGuesses  float64     `json:"meanGuesses"` // over solved sessions
	Distribution map[int]int `json:"distribution"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts r. Attempts with no guesses are skipped.
func (s *Store) Record(ctx context.Context, r Result) error {
	if r.Guesses == 0 {
		return nil
	}
	var answer sql.NullString
	if r.Answer != "" {
		answer = sql.NullString{String: r.Answer, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO solves(session_id, word_length, guesses, solved, answer, trail, elapsed_ms)
		VALUES(?,?,?,?,?,?,?)`,
		r.SessionID, r.WordLength, r.Guesses, r.Solved, answer, strings.Join(r.Trail, " "), r.ElapsedMs,
	)
	return err
}

// Recent returns the latest results, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, word_length, guesses, solved, answer, trail, elapsed_ms, created_at
		FROM solves
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var (
			r      Result
			answer sql.NullString
			trail  string
		)
		if err := rows.Scan(&r.SessionID, &r.WordLength, &r.Guesses, &r.Solved, &answer, &trail, &r.ElapsedMs, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Answer = answer.String
		r.Trail = strings.Fields(trail)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats returns totals and the guess-count distribution of solved sessions.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{Distribution: map[int]int{}}
	var mean sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(solved), 0), AVG(CASE WHEN solved = 1 THEN guesses END)
		FROM solves`,
	).Scan(&st.Sessions, &st.Solved, &mean)
	if err != nil {
		return st, err
	}
	st.MeanGuesses = mean.Float64

	rows, err := s.db.QueryContext(ctx,
		`SELECT guesses, COUNT(*) FROM solves WHERE solved = 1 GROUP BY guesses ORDER BY guesses`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var guesses, n int
		if err := rows.Scan(&guesses, &n); err != nil {
			return st, err
		}
		st.Distribution[guesses] = n
	}
	return st, rows.Err()
}
