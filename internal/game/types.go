// internal/game/types.go
//
// Core type definitions for a board session.
// Defines:
//   - Game: one board and every word found on it.

package game

import (
	"time"

	"github.com/robalobadob/boggle/internal/board"
	"github.com/robalobadob/boggle/internal/solver"
)

// Game holds one board and its search results. A Game is not mutated after
// construction; edits produce a new Game with the same ID.
type Game struct {
	ID        string          // Unique game identifier (random hex string).
	Board     board.Board     // The letter grid ("q" stands for "Qu").
	Policy    board.Policy    // How the board was generated; empty for edited boards.
	Words     []solver.Result // Every word on the board, first path per word.
	Edited    bool            // True once the board was replaced by hand.
	CreatedAt time.Time       // When the session started.
}

// Lookup returns the result for word so a caller can highlight its path.
func (g *Game) Lookup(word string) (solver.Result, bool) {
	for _, r := range g.Words {
		if r.Word == word {
			return r, true
		}
	}
	return solver.Result{}, false
}
