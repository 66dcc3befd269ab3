// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Holds *game.Game sessions keyed by ID so a client can come back to a board
// (highlight a path, edit the board) without resending it.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Bounded: once max sessions are held, saving a new ID evicts the oldest.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/boggle/internal/game"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("store: game not found")

// Store defines the session interface.
type Store interface {
	// Save persists or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Len reports how many games are held.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	games map[string]*game.Game
	order []string // insertion order, oldest first
	max   int
}

// NewMemoryStore constructs a Store holding at most max games (max <= 0: unbounded).
func NewMemoryStore(max int) Store {
	return &memory{games: make(map[string]*game.Game), max: max}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.ID]; !ok {
		m.order = append(m.order, g.ID)
		for m.max > 0 && len(m.order) > m.max {
			delete(m.games, m.order[0])
			m.order = m.order[1:]
		}
	}
	m.games[g.ID] = g
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
