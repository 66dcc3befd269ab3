// internal/solver/solver.go
//
// Exhaustive word search over a board.
//
// From every start cell a depth-first walk extends the current word through
// the 8 neighbours, never revisiting a cell within one path. Whenever the word
// is at least MinWordLength letters and the dictionary contains it, the
// (word, path) pair is recorded unless that word was already recorded:
// the first path found wins.
//
// Enumeration order is fixed (start cells row-major, neighbours in the
// order of offsets), so a given board and dictionary always yield the same
// results in the same order.
//
// A "q" cell contributes "qu" to the word (see board.CellText).
//
// SolveContext stops early once its context ends; the walk polls the
// context every checkEvery visited cells.

package solver

import (
	"context"

	"github.com/robalobadob/boggle/internal/board"
)

// MinWordLength is the shortest word the search reports.
const MinWordLength = 3

// Dictionary is the query contract the search needs.
type Dictionary interface {
	Contains(word string) bool
	HasPrefix(prefix string) bool
}

// Result is one found word and the path that spells it; Path[0] is the start cell.
type Result struct {
	Word string        `json:"word"`
	Path []board.Coord `json:"path"`
}

// Options tunes the search. The zero value prunes.
type Options struct {
	// NoPrune disables prefix pruning. Results are identical either way;
	// pruning only skips branches no word can complete.
	NoPrune bool
}

// offsets lists the 8 neighbour directions in a fixed order.
var offsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Solve returns every word on b found in dict, with prefix pruning.
func Solve(b board.Board, dict Dictionary) []Result {
	return SolveWith(b, dict, Options{})
}

// SolveWith is Solve with explicit options.
func SolveWith(b board.Board, dict Dictionary, opt Options) []Result {
	rs, _ := SolveContext(context.Background(), b, dict, opt)
	return rs
}

// SolveContext is SolveWith bounded by ctx. The only error is ctx.Err().
func SolveContext(ctx context.Context, b board.Board, dict Dictionary, opt Options) ([]Result, error) {
	if b.Empty() {
		return []Result{}, nil
	}
	s := newSearch(ctx, b, dict, opt)
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			s.from(board.Coord{Row: r, Col: c})
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

const checkEvery = 1024

// search holds the state of one walk. Not shared between goroutines.
type search struct {
	ctx     context.Context
	b       board.Board
	dict    Dictionary
	prune   bool
	visited [][]bool
	path    []board.Coord
	seen    map[string]struct{}
	results []Result

	steps int
	err   error // set once ctx ends; the walk unwinds without recording
}

func newSearch(ctx context.Context, b board.Board, dict Dictionary, opt Options) *search {
	visited := make([][]bool, b.Rows())
	for i := range visited {
		visited[i] = make([]bool, b.Cols())
	}
	return &search{
		ctx:     ctx,
		b:       b,
		dict:    dict,
		prune:   !opt.NoPrune,
		visited: visited,
		seen:    make(map[string]struct{}),
		results: []Result{},
	}
}

// from runs the walk starting at start.
func (s *search) from(start board.Coord) {
	word := board.CellText(s.b.At(start))
	if s.prune && !s.dict.HasPrefix(word) {
		return
	}
	s.visit(start, word)
}

// visit marks c, records word if valid, recurses into neighbours and unmarks c.
func (s *search) visit(c board.Coord, word string) {
	if s.err != nil {
		return
	}
	s.steps++
	if s.steps%checkEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return
		}
	}
	s.visited[c.Row][c.Col] = true
	s.path = append(s.path, c)

	if len(word) >= MinWordLength && s.dict.Contains(word) {
		if _, dup := s.seen[word]; !dup {
			s.seen[word] = struct{}{}
			s.results = append(s.results, Result{
				Word: word,
				Path: append([]board.Coord(nil), s.path...),
			})
		}
	}

	for _, o := range offsets {
		nr, nc := c.Row+o[0], c.Col+o[1]
		if !s.b.InBounds(nr, nc) || s.visited[nr][nc] {
			continue
		}
		next := word + board.CellText(s.b[nr][nc])
		if s.prune && !s.dict.HasPrefix(next) {
			continue
		}
		s.visit(board.Coord{Row: nr, Col: nc}, next)
	}

	s.path = s.path[:len(s.path)-1]
	s.visited[c.Row][c.Col] = false
}
