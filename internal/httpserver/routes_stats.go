// internal/httpserver/routes_stats.go
//
// GET /stats → totals, guess distribution and the latest finished sessions
// from the history store, plus dictionary and live-session counts.
// Without a history store only the live counts are returned.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle-helper/internal/history"
)

type statsRes struct {
	Dictionary int              `json:"dictionary"`
	WordLength int              `json:"wordLength"`
	Active     int              `json:"activeSessions"`
	History    *history.Stats   `json:"history,omitempty"`
	Recent     []history.Result `json:"recent,omitempty"`
}

// mountStats registers the /stats route.
func (s *Server) mountStats(r chi.Router) {
	r.Get("/stats", s.handleStats)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	res := statsRes{
		Dictionary: s.opts.Dict.Len(),
		WordLength: s.opts.Dict.WordLength(),
		Active:     s.opts.Store.Len(),
	}

	if s.opts.History != nil {
		limit := 20
		if v, err := strconv.Atoi(r.URL.Query().Get("recent")); err == nil && v > 0 && v <= 100 {
			limit = v
		}
		st, err := s.opts.History.Stats(r.Context())
		if err != nil {
			http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
			return
		}
		recent, err := s.opts.History.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
			return
		}
		res.History, res.Recent = &st, recent
	}

	_ = json.NewEncoder(w).Encode(res)
}
