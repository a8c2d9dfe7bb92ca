// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Sessions are live objects (constraints, row, cached ranking), so they are
// kept in process rather than serialized.
//
// Characteristics:
//   - Sessions keyed by a random UUID assigned on Create.
//   - The map is guarded by one RWMutex; each entry has its own mutex so
//     that With serializes work on one session without blocking the others.
//   - Last-access times drive Sweep, which evicts idle sessions.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle-helper/internal/session"
)

// ErrNotFound is returned for unknown or evicted session ids.
var ErrNotFound = errors.New("session not found")

// Store defines the interface for live solving sessions.
type Store interface {
	// Create registers s under a new id and returns the id.
	Create(ctx context.Context, s *session.Session) (string, error)

	// With runs fn with exclusive access to the session.
	// Returns ErrNotFound if the id is unknown, otherwise fn's error.
	With(ctx context.Context, id string, fn func(*session.Session) error) error

	// Delete removes a session and returns it once any With running on it
	// has finished; later With calls report ErrNotFound.
	Delete(ctx context.Context, id string) (*session.Session, error)

	// Sweep evicts sessions idle for longer than idle and returns them,
	// with the same hand-over guarantee as Delete.
	Sweep(idle time.Duration) []*session.Session

	// Len reports the number of live sessions.
	Len() int
}

type entry struct {
	mu   sync.Mutex // serializes use of s
	s    *session.Session
	gone bool      // set under mu once the entry has left the map
	last time.Time // guarded by memory.mu
}

// retire waits for any fn running on e and stops later ones from starting.
// Afterwards the session belongs to the caller alone.
func (e *entry) retire() *session.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gone = true
	return e.s
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry), now: time.Now}
}

// Create assigns a UUID to s and stores it.
func (m *memory) Create(ctx context.Context, s *session.Session) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	s.SetID(id)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &entry{s: s, last: m.now()}
	return id, nil
}

func (m *memory) With(ctx context.Context, id string, fn func(*session.Session) error) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok {
		e.last = m.now()
	}
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone {
		return ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(e.s)
}

func (m *memory) Delete(ctx context.Context, id string) (*session.Session, error) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return e.retire(), nil
}

func (m *memory) Sweep(idle time.Duration) []*session.Session {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	var stale []*entry
	for id, e := range m.sessions {
		if e.last.Before(cutoff) {
			stale = append(stale, e)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	out := make([]*session.Session, 0, len(stale))
	for _, e := range stale {
		out = append(out, e.retire())
	}
	return out
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
