// internal/game/engine.go
//
// Engine ties the generator, the lexicon and the search together.
// Responsibilities:
//   - Create new games: generate a board under a policy, then search it.
//   - Re-search a hand-edited board (sanitized and validated first).
//   - Order results for display without touching the search order.
//
// Notes:
//   - The dictionary must be fully loaded before the first search; the engine
//     refuses to search while Ready reports false.
//   - Workers > 1 shards the search across goroutines (solver.SolveParallel).

package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/robalobadob/boggle/internal/board"
	"github.com/robalobadob/boggle/internal/metrics"
	"github.com/robalobadob/boggle/internal/solver"
	"github.com/robalobadob/boggle/internal/words"
)

// Dictionary is the solver contract plus a readiness check.
type Dictionary interface {
	solver.Dictionary
	Ready() bool
}

// Engine creates and re-solves games.
type Engine struct {
	Gen     *board.Generator
	Dict    Dictionary
	Workers int
	Metrics *metrics.Collector
}

// NewEngine returns an Engine with a crypto-seeded generator.
func NewEngine(dict Dictionary, workers int, m *metrics.Collector) *Engine {
	return &Engine{Gen: board.NewGenerator(nil), Dict: dict, Workers: workers, Metrics: m}
}

// New generates a size x size board under p and searches it.
func (e *Engine) New(ctx context.Context, size int, p board.Policy) (*Game, error) {
	b, err := e.Gen.Generate(size, size, p)
	if err != nil {
		return nil, err
	}
	e.Metrics.RecordBoard(string(p))
	return e.build(ctx, randomID(), b, p, false)
}

// FromBoard starts a game on a caller-supplied board.
func (e *Engine) FromBoard(ctx context.Context, b board.Board) (*Game, error) {
	clean, err := prepare(b)
	if err != nil {
		return nil, err
	}
	return e.build(ctx, randomID(), clean, "", true)
}

// Edit returns a copy of g with its board replaced by b and re-searched.
func (e *Engine) Edit(ctx context.Context, g *Game, b board.Board) (*Game, error) {
	clean, err := prepare(b)
	if err != nil {
		return nil, err
	}
	ng, err := e.build(ctx, g.ID, clean, "", true)
	if err != nil {
		return nil, err
	}
	ng.CreatedAt = g.CreatedAt
	return ng, nil
}

// Solve searches b and records metrics.
func (e *Engine) Solve(ctx context.Context, b board.Board) ([]solver.Result, error) {
	if !e.Dict.Ready() {
		return nil, words.ErrNotReady
	}
	start := time.Now()
	rs, err := solver.SolveParallel(ctx, b, e.Dict, e.Workers, solver.Options{})
	if err != nil {
		return nil, err
	}
	e.Metrics.RecordSolve(time.Since(start), len(rs))
	return rs, nil
}

func (e *Engine) build(ctx context.Context, id string, b board.Board, p board.Policy, edited bool) (*Game, error) {
	rs, err := e.Solve(ctx, b)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:        id,
		Board:     b,
		Policy:    p,
		Words:     rs,
		Edited:    edited,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// prepare sanitizes a hand-edited board and checks its shape.
func prepare(b board.Board) (board.Board, error) {
	clean := board.Sanitize(b)
	if err := clean.Validate(); err != nil {
		return nil, fmt.Errorf("edit board: %w", err)
	}
	return clean, nil
}

// SortForDisplay returns a copy of rs ordered longest first, then alphabetically.
func SortForDisplay(rs []solver.Result) []solver.Result {
	out := append([]solver.Result(nil), rs...)
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].Word) != len(out[j].Word) {
			return len(out[i].Word) > len(out[j].Word)
		}
		return strings.Compare(out[i].Word, out[j].Word) < 0
	})
	return out
}

// GroupByLength buckets results by word length.
func GroupByLength(rs []solver.Result) map[int][]solver.Result {
	out := make(map[int][]solver.Result)
	for _, r := range rs {
		out[len(r.Word)] = append(out[len(r.Word)], r)
	}
	return out
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
