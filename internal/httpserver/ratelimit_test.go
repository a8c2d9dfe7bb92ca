package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPLimiter_SweepDropsIdleClients(t *testing.T) {
	l := newIPLimiter(1, 1)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	old := l.get("10.0.0.1")
	require.True(t, old.Allow())
	now = now.Add(20 * time.Minute)
	l.get("10.0.0.2")

	assert.Equal(t, 1, l.sweep(10*time.Minute))
	assert.NotContains(t, l.visitors, "10.0.0.1")
	assert.Contains(t, l.visitors, "10.0.0.2")

	// an evicted client comes back with a fresh bucket
	assert.NotSame(t, old, l.get("10.0.0.1"))
	assert.Equal(t, 2, l.sweep(10*time.Minute))
}

func TestIPLimiter_SeparateBucketsPerIP(t *testing.T) {
	l := newIPLimiter(0.001, 1)
	h := l.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hit("192.0.2.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, hit("192.0.2.1:2000"))
	assert.Equal(t, http.StatusOK, hit("192.0.2.2:1000"))
}

func TestSweepIdleDropsLimiters(t *testing.T) {
	s := newTestServer(t, nil)
	c := create(t, s)
	rec := call(t, s, http.MethodGet, "/sessions/"+c.SessionID+"/suggestions", c.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, s.limiter.visitors, 1)

	assert.Equal(t, 1, s.SweepIdle(context.Background(), -time.Hour))
	assert.Empty(t, s.limiter.visitors)
}
