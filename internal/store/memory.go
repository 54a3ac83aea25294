// internal/store/memory.go
//
// In-memory registry of live game sessions, keyed by player ID.
//
// Characteristics:
//   - The map is guarded by an RWMutex; each entry has its own mutex so one
//     player's operations run one at a time, as game.Session requires.
//   - Entries idle longer than a TTL are dropped by Sweep.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ishirchatnani/wordle-clone/internal/game"
)

// ErrNotFound is returned for unknown player IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the registry of live sessions.
type Store interface {
	// Create registers s under id, replacing any previous session.
	Create(ctx context.Context, id string, s *game.Session) error

	// Update runs fn with exclusive access to the session for id.
	// Returns ErrNotFound if there is none, otherwise fn's error.
	Update(ctx context.Context, id string, fn func(s *game.Session) error) error

	// Upsert is Update that first registers create() when id has no session.
	// Concurrent first calls for one id end up sharing a single session.
	Upsert(ctx context.Context, id string, create func() *game.Session, fn func(s *game.Session) error) error

	// Delete forgets the session for id.
	Delete(ctx context.Context, id string) error

	// Sweep drops sessions not touched for longer than idle and reports how
	// many were removed.
	Sweep(ctx context.Context, idle time.Duration) int

	// Len reports how many sessions are held.
	Len() int
}

type entry struct {
	mu       sync.Mutex
	session  *game.Session
	lastSeen time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex      // guards entries
	entries map[string]*entry // keyed by player ID
	now     func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{entries: make(map[string]*entry), now: now}
}

func (m *memory) Create(ctx context.Context, id string, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = &entry{session: s, lastSeen: m.now()}
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(s *game.Session) error) error {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = m.now()
	return fn(e.session)
}

func (m *memory) Upsert(ctx context.Context, id string, create func() *game.Session, fn func(s *game.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	e, ok := m.entries[id]
	if !ok {
		e = &entry{session: create(), lastSeen: m.now()}
		m.entries[id] = e
	}
	m.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = m.now()
	return fn(e.session)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		e.mu.Lock()
		stale := e.lastSeen.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
