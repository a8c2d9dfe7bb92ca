// internal/httpserver/server.go
//
// HTTP server wiring for the solver backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/stats".
//   - Session endpoints: POST /sessions, then token-guarded routes under
//     /sessions/{id} for the input row, confirmation, candidates and
//     suggestions (see routes_sessions.go).
//   - Best-effort history writes when a session finishes.
//
// Notes:
//   - CORS is single-origin (CLIENT_ORIGIN) and credentials-enabled.
//   - Every session route needs the bearer token issued by POST /sessions;
//     its sid claim must match the {id} in the path.
//   - Errors are JSON bodies of the form {"error":"code"}.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-helper/internal/grid"
	"github.com/robalobadob/wordle-helper/internal/history"
	"github.com/robalobadob/wordle-helper/internal/session"
	"github.com/robalobadob/wordle-helper/internal/solver"
	"github.com/robalobadob/wordle-helper/internal/store"
)

// Options carries the server's dependencies and limits.
type Options struct {
	Store   store.Store
	Dict    *solver.Dictionary
	Ranker  *solver.Ranker
	History *history.Store // nil disables history

	JWTSecret    string
	TokenTTL     time.Duration
	ClientOrigin string

	RankTimeout    time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server bundles router, session store and history.
type Server struct {
	r       *chi.Mux
	opts    Options
	tokens  *tokenIssuer
	limiter *ipLimiter
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Ranker == nil {
		opts.Ranker = solver.NewRanker(opts.Dict)
	}
	if opts.RankTimeout <= 0 {
		opts.RankTimeout = 5 * time.Second
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	s := &Server{
		r:       chi.NewRouter(),
		opts:    opts,
		tokens:  newTokenIssuer(opts.JWTSecret, opts.TokenTTL),
		limiter: newIPLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(15 * time.Second)) // bound handler time
	s.r.Use(instrument)                      // request counters by route
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-helper","endpoints":["/health","/metrics","/stats","POST /sessions","/sessions/{id}/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Handle("/metrics", promhttp.Handler())

	s.mountStats(s.r)
	s.mountSessions(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Router exposes the internal router (useful for tests and http.Server).
func (s *Server) Router() chi.Router { return s.r }

// SweepIdle evicts sessions idle for longer than idle, records unsolved
// ones in history (solved ones were recorded on confirm), drops rate-limit
// buckets of clients idle as long, and returns how many sessions were
// evicted.
func (s *Server) SweepIdle(ctx context.Context, idle time.Duration) int {
	evicted := s.opts.Store.Sweep(idle)
	for _, sess := range evicted {
		if !sess.Solved() {
			s.recordHistory(ctx, sess)
		}
	}
	sessionsActive.Set(float64(s.opts.Store.Len()))
	s.limiter.sweep(idle)
	if len(evicted) > 0 {
		log.Info().Int("evicted", len(evicted)).Int("active", s.opts.Store.Len()).Msg("swept idle sessions")
	}
	return len(evicted)
}

// recordHistory writes sess to the history store, logging failures only.
func (s *Server) recordHistory(ctx context.Context, sess *session.Session) {
	if s.opts.History == nil {
		return
	}
	if err := s.opts.History.Record(ctx, history.FromSession(sess, time.Now())); err != nil {
		log.Warn().Err(err).Str("session", sess.ID()).Msg("record history")
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
// Defaults to http://localhost:5173.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- errors ------------------------------------

// writeError maps domain errors to a status and a stable error code.
func writeError(w http.ResponseWriter, err error) {
	code, status := "internal", http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		code, status = "not_found", http.StatusNotFound
	case errors.Is(err, solver.ErrNoCandidatesRemain):
		code, status = "no_candidates", http.StatusConflict
	case errors.Is(err, solver.ErrIncompleteGuess):
		code, status = "incomplete_guess", http.StatusUnprocessableEntity
	case errors.Is(err, solver.ErrMalformedGuess):
		code, status = "malformed_guess", http.StatusBadRequest
	case errors.Is(err, grid.ErrCellOutOfRange):
		code, status = "cell_out_of_range", http.StatusBadRequest
	case errors.Is(err, grid.ErrInvalidLetter):
		code, status = "invalid_letter", http.StatusBadRequest
	case errors.Is(err, grid.ErrEmptyCell):
		code, status = "empty_cell", http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		code, status = "timeout", http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	http.Error(w, `{"error":"`+code+`"}`, status)
}
