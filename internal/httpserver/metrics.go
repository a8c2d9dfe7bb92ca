package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequests counts requests by route pattern, method and status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_http_requests_total",
		Help: "HTTP requests by route, method and status code",
	}, []string{"route", "method", "code"})

	// sessionsActive tracks live sessions in the store
	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "solver_sessions_active",
		Help: "Live solving sessions",
	})

	// guessesTotal counts confirmed guesses by outcome
	guessesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_guesses_total",
		Help: "Confirmed guesses by outcome",
	}, []string{"outcome"})

	// rankDuration tracks ranking latency by pool
	rankDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solver_rank_duration_seconds",
		Help:    "Suggestion ranking duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	}, []string{"pool"})

	// rankPartial counts rankings cut short by the deadline
	rankPartial = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solver_rank_partial_total",
		Help: "Rankings returned before the whole pool was scored",
	})

	// candidatesRemaining tracks candidate set size after each guess
	candidatesRemaining = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_candidates_remaining",
		Help:    "Candidate set size after a confirmed guess",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 500, 2000},
	})
)

// instrument counts every request under its chi route pattern.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}

func observeRank(pool string, started time.Time, partial bool) {
	rankDuration.WithLabelValues(pool).Observe(time.Since(started).Seconds())
	if partial {
		rankPartial.Inc()
	}
}
