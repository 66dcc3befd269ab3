package solver

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/boggle/internal/board"
	"github.com/robalobadob/boggle/internal/trie"
)

var testWords = []string{
	"at", "ate", "art", "arts", "car", "cars", "cart", "cat", "cats", "eat", "east", "eats",
	"era", "ear", "ears", "earn", "near", "neat", "nest", "net", "nets", "note", "notes",
	"one", "ones", "ore", "ores", "rat", "rate", "rates", "rats", "rest", "rose", "seat",
	"set", "sea", "sear", "star", "stare", "tar", "tea", "tear", "tears", "ten", "tens",
	"toe", "toes", "tone", "tones", "tore", "quit", "quite", "quiet", "queen", "equine",
	"aqua", "suit", "lint", "line", "lane", "loan", "lone", "alone", "stone", "store",
}

func dict() *trie.Trie { return trie.FromWords(testWords) }

func find(rs []Result, word string) (Result, bool) {
	for _, r := range rs {
		if r.Word == word {
			return r, true
		}
	}
	return Result{}, false
}

func TestScenarioTwoByTwo(t *testing.T) {
	d := trie.FromWords([]string{"cat", "car", "art", "at"})
	b := board.Board{{"c", "a"}, {"t", "r"}}

	rs := Solve(b, d)

	cat, ok := find(rs, "cat")
	require.True(t, ok)
	assert.Equal(t, []board.Coord{{0, 0}, {0, 1}, {1, 0}}, cat.Path)

	car, ok := find(rs, "car")
	require.True(t, ok)
	assert.Equal(t, []board.Coord{{0, 0}, {0, 1}, {1, 1}}, car.Path)

	art, ok := find(rs, "art")
	require.True(t, ok)
	assert.Equal(t, []board.Coord{{0, 1}, {1, 1}, {1, 0}}, art.Path)

	_, ok = find(rs, "at")
	assert.False(t, ok, "words shorter than three letters are never reported")
	assert.Len(t, rs, 3)
}

func TestEmptyBoard(t *testing.T) {
	rs := Solve(board.Board{}, dict())
	assert.NotNil(t, rs)
	assert.Empty(t, rs)

	rs = Solve(board.Board{{}}, dict())
	assert.Empty(t, rs)
}

func TestQCellExpandsToQu(t *testing.T) {
	b := board.Board{
		{"q", "i", "t"},
		{"e", "x", "e"},
		{"x", "x", "x"},
	}
	rs := Solve(b, dict())

	quit, ok := find(rs, "quit")
	require.True(t, ok)
	assert.Equal(t, []board.Coord{{0, 0}, {0, 1}, {0, 2}}, quit.Path)

	quite, ok := find(rs, "quite")
	require.True(t, ok)
	assert.Len(t, quite.Path, 4)

	_, ok = find(rs, "qit")
	assert.False(t, ok)
}

func TestFirstPathWins(t *testing.T) {
	// "tea" can be traced from either t; the row-major first start wins.
	b := board.Board{
		{"t", "e", "t"},
		{"x", "a", "x"},
	}
	rs := Solve(b, trie.FromWords([]string{"tea"}))
	require.Len(t, rs, 1)
	assert.Equal(t, []board.Coord{{0, 0}, {0, 1}, {1, 1}}, rs[0].Path)
}

func TestResultInvariantsOnRandomBoards(t *testing.T) {
	d := dict()
	for seed := uint64(0); seed < 50; seed++ {
		gen := board.NewGenerator(rand.NewPCG(seed, 7))
		b, err := gen.Generate(4, 4, board.PolicyDice)
		require.NoError(t, err)

		rs := Solve(b, d)
		words := make(map[string]bool)
		for _, r := range rs {
			assert.False(t, words[r.Word], "duplicate word %q", r.Word)
			words[r.Word] = true

			assert.GreaterOrEqual(t, len(r.Word), MinWordLength)
			assert.True(t, d.Contains(r.Word))
			assert.Equal(t, r.Word, b.Word(r.Path), "round trip")
			assertValidPath(t, b, r.Path)
		}
	}
}

func assertValidPath(t *testing.T, b board.Board, path []board.Coord) {
	t.Helper()
	seen := make(map[board.Coord]bool)
	for i, c := range path {
		require.True(t, b.InBounds(c.Row, c.Col))
		require.False(t, seen[c], "repeated coordinate %v", c)
		seen[c] = true
		if i == 0 {
			continue
		}
		p := path[i-1]
		dr, dc := abs(c.Row-p.Row), abs(c.Col-p.Col)
		require.True(t, dr <= 1 && dc <= 1 && (dr+dc) > 0, "%v -> %v not adjacent", p, c)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func TestPruningDoesNotChangeResults(t *testing.T) {
	d := dict()
	for seed := uint64(0); seed < 30; seed++ {
		gen := board.NewGenerator(rand.NewPCG(seed, 99))
		b, err := gen.Generate(4, 4, board.PolicyRandom)
		require.NoError(t, err)

		pruned := SolveWith(b, d, Options{})
		full := SolveWith(b, d, Options{NoPrune: true})
		assert.Equal(t, full, pruned, "seed %d\n%s", seed, b)
	}
}

// countingDict counts Contains calls to show pruning cuts the search.
type countingDict struct {
	*trie.Trie
	contains int
}

func (c *countingDict) Contains(w string) bool {
	c.contains++
	return c.Trie.Contains(w)
}

func TestPruningSkipsDeadBranches(t *testing.T) {
	b := board.Board{{"x", "x", "x"}, {"x", "x", "x"}, {"x", "x", "x"}}

	pruned := &countingDict{Trie: dict()}
	SolveWith(b, pruned, Options{})
	full := &countingDict{Trie: dict()}
	SolveWith(b, full, Options{NoPrune: true})

	assert.Zero(t, pruned.contains)
	assert.Greater(t, full.contains, 1000)
}

func TestSolveParallelMatchesSequential(t *testing.T) {
	d := dict()
	for seed := uint64(0); seed < 20; seed++ {
		gen := board.NewGenerator(rand.NewPCG(seed, 3))
		b, err := gen.Generate(5, 5, board.PolicyRandom)
		require.NoError(t, err)

		want := Solve(b, d)
		got, err := SolveParallel(context.Background(), b, d, 4, Options{})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSolveParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := board.Board{{"c", "a"}, {"t", "r"}}
	_, err := SolveParallel(ctx, b, dict(), 2, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveSequentialCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := board.Board{{"c", "a"}, {"t", "r"}}
	_, err := SolveParallel(ctx, b, dict(), 1, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

// cancellingDict cancels the search context after limit Contains calls.
type cancellingDict struct {
	*trie.Trie
	limit    int
	contains int
	cancel   context.CancelFunc
}

func (c *cancellingDict) Contains(w string) bool {
	c.contains++
	if c.contains == c.limit {
		c.cancel()
	}
	return c.Trie.Contains(w)
}

func TestSolveContextStopsMidWalk(t *testing.T) {
	b := make(board.Board, 5)
	for i := range b {
		b[i] = []string{"x", "x", "x", "x", "x"}
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := &cancellingDict{Trie: dict(), limit: 5000, cancel: cancel}

	rs, err := SolveContext(ctx, b, d, Options{NoPrune: true})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rs)
	assert.Less(t, d.contains, d.limit+2*checkEvery)
}
