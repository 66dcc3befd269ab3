// internal/solver/parallel.go
//
// Sharded variant of Solve. Each start cell is an independent shard with its
// own visited grid and local result list; shards run on an errgroup bounded
// to `workers` goroutines. Results are merged in start-cell order with
// first-seen-wins, which reproduces Solve's output exactly.

package solver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/boggle/internal/board"
)

// SolveParallel is SolveContext spread over up to workers goroutines.
// workers <= 1 runs sequentially. The only error is ctx cancellation.
func SolveParallel(ctx context.Context, b board.Board, dict Dictionary, workers int, opt Options) ([]Result, error) {
	if workers <= 1 || b.Empty() {
		return SolveContext(ctx, b, dict, opt)
	}

	cols := b.Cols()
	shards := make([][]Result, b.Rows()*cols)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range shards {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := newSearch(ctx, b, dict, opt)
			s.from(board.Coord{Row: i / cols, Col: i % cols})
			if s.err != nil {
				return s.err
			}
			shards[i] = s.results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merge(shards), nil
}

// merge concatenates shard results in order, keeping the first path per word.
func merge(shards [][]Result) []Result {
	seen := make(map[string]struct{})
	out := []Result{}
	for _, shard := range shards {
		for _, r := range shard {
			if _, dup := seen[r.Word]; dup {
				continue
			}
			seen[r.Word] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
