// internal/httpserver/routes_sessions.go
//
// Session routes.
//   - POST   /sessions                        → new session + token
//   - GET    /sessions/{id}                   → session view
//   - PUT    /sessions/{id}/row               → {word}: fill the whole row
//   - PUT    /sessions/{id}/row/{pos}         → {letter}: set one cell
//   - DELETE /sessions/{id}/row/{pos}         → clear one cell
//   - POST   /sessions/{id}/row/{pos}/cycle   → next feedback colour
//   - POST   /sessions/{id}/confirm           → confirm the row as a guess
//   - GET    /sessions/{id}/candidates        → remaining words (?limit=)
//   - GET    /sessions/{id}/suggestions       → ranking (?pool=dictionary|candidates), rate limited
//   - POST   /sessions/{id}/reset             → start over
//   - DELETE /sessions/{id}                   → end the session
//
// Sessions are only touched inside store.With, which serializes requests
// for the same session.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle-helper/internal/grid"
	"github.com/robalobadob/wordle-helper/internal/session"
	"github.com/robalobadob/wordle-helper/internal/solver"
)

// mountSessions registers all /sessions routes.
func (s *Server) mountSessions(r chi.Router) {
	r.Post("/sessions", s.handleCreate)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.handleGet)
		r.Delete("/", s.handleDelete)
		r.Put("/row", s.handleSetWord)
		r.Put("/row/{pos}", s.handleSetLetter)
		r.Delete("/row/{pos}", s.handleClearCell)
		r.Post("/row/{pos}/cycle", s.handleCycle)
		r.Post("/confirm", s.handleConfirm)
		r.Post("/reset", s.handleReset)
		r.Get("/candidates", s.handleCandidates)
		r.With(s.limiter.middleware).Get("/suggestions", s.handleSuggestions)
	})
}

// ------------------------------ views --------------------------------------

type cellView struct {
	Letter   string          `json:"letter"`
	Feedback solver.Feedback `json:"feedback"`
}

type sessionView struct {
	SessionID  string         `json:"sessionId"`
	WordLength int            `json:"wordLength"`
	Row        []cellView     `json:"row"`
	RowState   string         `json:"rowState"`
	Guesses    []solver.Guess `json:"guesses"`
	Candidates int            `json:"candidates"`
	Known      string         `json:"known"`    // fixed letters, '_' where open
	Excluded   string         `json:"excluded"` // letters known to be absent
	Solved     bool           `json:"solved"`
	Answer     string         `json:"answer,omitempty"`
}

func viewOf(sess *session.Session) sessionView {
	row := sess.Row()
	c := sess.Constraints()
	known := lo.Map(c.Fixed(), func(b byte, _ int) byte {
		if b == 0 {
			return '_'
		}
		return b
	})
	guesses := sess.Guesses()
	if guesses == nil {
		guesses = []solver.Guess{}
	}
	answer, _ := sess.Answer()
	return sessionView{
		SessionID:  sess.ID(),
		WordLength: row.Len(),
		Row: lo.Map(row.Cells(), func(c grid.Cell, _ int) cellView {
			if !c.Set() {
				return cellView{Feedback: c.Feedback}
			}
			return cellView{Letter: string(c.Letter), Feedback: c.Feedback}
		}),
		RowState:   row.State().String(),
		Guesses:    guesses,
		Candidates: len(sess.Candidates()),
		Known:      string(known),
		Excluded:   string(c.GloballyExcluded()),
		Solved:     sess.Solved(),
		Answer:     answer,
	}
}

// ----------------------------- handlers ------------------------------------

type createRes struct {
	SessionID  string    `json:"sessionId"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
	WordLength int       `json:"wordLength"`
	Candidates int       `json:"candidates"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	sess := session.New(s.opts.Dict,
		session.WithRanker(s.opts.Ranker),
		session.WithLogger(log.Logger),
	)
	id, err := s.opts.Store.Create(r.Context(), sess)
	if err != nil {
		writeError(w, err)
		return
	}
	tok, exp, err := s.tokens.sign(id)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		_, _ = s.opts.Store.Delete(context.WithoutCancel(r.Context()), id)
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	sessionsActive.Set(float64(s.opts.Store.Len()))
	log.Info().Str("session", id).Msg("session created")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(createRes{
		SessionID:  id,
		Token:      tok,
		ExpiresAt:  exp,
		WordLength: s.opts.Dict.WordLength(),
		Candidates: s.opts.Dict.Len(),
	})
}

// withSession runs fn on the request's session and writes its result.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*session.Session) (any, error)) {
	var out any
	err := s.opts.Store.With(r.Context(), sessionID(r), func(sess *session.Session) error {
		var err error
		out, err = fn(sess)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) (any, error) {
		return viewOf(sess), nil
	})
}

type wordReq struct {
	Word string `json:"word"`
}

func (s *Server) handleSetWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	s.withSession(w, r, func(sess *session.Session) (any, error) {
		if err := sess.Row().SetWord(req.Word); err != nil {
			return nil, err
		}
		return viewOf(sess), nil
	})
}

type letterReq struct {
	Letter string `json:"letter"`
}

// pathPos parses {pos}; a non-number is reported as out of range.
func pathPos(r *http.Request) (int, bool) {
	pos, err := strconv.Atoi(chi.URLParam(r, "pos"))
	return pos, err == nil
}

func (s *Server) handleSetLetter(w http.ResponseWriter, r *http.Request) {
	pos, ok := pathPos(r)
	if !ok {
		http.Error(w, `{"error":"cell_out_of_range"}`, http.StatusBadRequest)
		return
	}
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	letter := strings.TrimSpace(req.Letter)
	if len(letter) != 1 {
		http.Error(w, `{"error":"invalid_letter"}`, http.StatusBadRequest)
		return
	}
	s.withSession(w, r, func(sess *session.Session) (any, error) {
		if err := sess.Row().SetLetter(pos, letter[0]); err != nil {
			return nil, err
		}
		return viewOf(sess), nil
	})
}

func (s *Server) handleClearCell(w http.ResponseWriter, r *http.Request) {
	pos, ok := pathPos(r)
	if !ok {
		http.Error(w, `{"error":"cell_out_of_range"}`, http.StatusBadRequest)
		return
	}
	s.withSession(w, r, func(sess *session.Session) (any, error) {
		if err := sess.Row().Clear(pos); err != nil {
			return nil, err
		}
		return viewOf(sess), nil
	})
}

func (s *Server) handleCycle(w http.ResponseWriter, r *http.Request) {
	pos, ok := pathPos(r)
	if !ok {
		http.Error(w, `{"error":"cell_out_of_range"}`, http.StatusBadRequest)
		return
	}
	s.withSession(w, r, func(sess *session.Session) (any, error) {
		if _, err := sess.Row().Cycle(pos); err != nil {
			return nil, err
		}
		return viewOf(sess), nil
	})
}

type confirmRes struct {
	Guess   solver.Guess `json:"guess"`
	Session sessionView  `json:"session"`
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) (any, error) {
		wasSolved := sess.Solved()
		g, err := sess.ConfirmRow()
		if err != nil {
			return nil, err
		}
		left := len(sess.Candidates())
		candidatesRemaining.Observe(float64(left))
		switch {
		case g.Solved():
			guessesTotal.WithLabelValues("solved").Inc()
			if !wasSolved {
				s.recordHistory(r.Context(), sess) // once per attempt
			}
		case left == 0:
			guessesTotal.WithLabelValues("contradiction").Inc()
		default:
			guessesTotal.WithLabelValues("narrowed").Inc()
		}
		return confirmRes{Guess: g, Session: viewOf(sess)}, nil
	})
}

type candidatesRes struct {
	Count int      `json:"count"`
	Words []string `json:"words"`
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	s.withSession(w, r, func(sess *session.Session) (any, error) {
		c := sess.Candidates()
		return candidatesRes{Count: len(c), Words: lo.Slice(c, 0, limit)}, nil
	})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	pool := r.URL.Query().Get("pool")
	if pool == "" {
		pool = "dictionary"
	}
	if pool != "dictionary" && pool != "candidates" {
		http.Error(w, `{"error":"bad_pool"}`, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.opts.RankTimeout)
	defer cancel()

	s.withSession(w, r, func(sess *session.Session) (any, error) {
		started := time.Now()
		var (
			rk  solver.Ranking
			err error
		)
		if pool == "candidates" {
			rk, err = sess.SuggestionsFrom(ctx, sess.Candidates())
		} else {
			rk, err = sess.Suggestions(ctx)
		}
		if err != nil {
			return nil, err
		}
		observeRank(pool, started, rk.Partial)
		return rk, nil
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) (any, error) {
		if !sess.Solved() {
			s.recordHistory(r.Context(), sess) // abandoned attempt
		}
		sess.Reset()
		return viewOf(sess), nil
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess, err := s.opts.Store.Delete(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if !sess.Solved() {
		s.recordHistory(r.Context(), sess)
	}
	sessionsActive.Set(float64(s.opts.Store.Len()))
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
