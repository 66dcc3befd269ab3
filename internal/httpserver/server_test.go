package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/boggle/internal/board"
	"github.com/robalobadob/boggle/internal/game"
	"github.com/robalobadob/boggle/internal/metrics"
	"github.com/robalobadob/boggle/internal/solver"
	"github.com/robalobadob/boggle/internal/store"
	"github.com/robalobadob/boggle/internal/words"
)

func newTestServer(t *testing.T, lex *words.Lexicon) *Server {
	t.Helper()
	m := metrics.NewCollector("test")
	eng := &game.Engine{Gen: board.NewGenerator(rand.NewPCG(5, 6)), Dict: lex, Metrics: m}
	return New(store.NewMemoryStore(10), eng, lex, Options{DailySalt: "test", Metrics: m})
}

func readyLexicon(t *testing.T) *words.Lexicon {
	t.Helper()
	lex := words.New(words.EmbeddedSource{})
	require.NoError(t, lex.Load(context.Background()))
	return lex
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, readyLexicon(t)), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestNewGameAndFetch(t *testing.T) {
	s := newTestServer(t, readyLexicon(t))

	rec := do(t, s, http.MethodPost, "/game/new", map[string]any{"policy": "dice"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[gameRes](t, rec)

	assert.NotEmpty(t, created.GameID)
	assert.Equal(t, board.PolicyDice, created.Policy)
	assert.Equal(t, 4, created.Board.Rows())
	assert.Equal(t, len(created.Words), created.Count)

	rec = do(t, s, http.MethodGet, "/game/"+created.GameID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[gameRes](t, rec)
	assert.Equal(t, created.Board, fetched.Board)
	assert.Equal(t, created.Words, fetched.Words)
}

func TestNewGameWithoutBody(t *testing.T) {
	s := newTestServer(t, readyLexicon(t))
	req := httptest.NewRequest(http.MethodPost, "/game/new", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestNewGameBadSize(t *testing.T) {
	rec := do(t, newTestServer(t, readyLexicon(t)), http.MethodPost, "/game/new", map[string]any{"size": -2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_dimensions"}`, rec.Body.String())
}

func TestNewGameSizeAboveLimit(t *testing.T) {
	s := newTestServer(t, readyLexicon(t))
	for _, size := range []int{board.MaxSide + 1, 1000} {
		rec := do(t, s, http.MethodPost, "/game/new", map[string]any{"size": size})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "size %d", size)
		assert.JSONEq(t, `{"error":"invalid_dimensions"}`, rec.Body.String())
	}
}

func TestNewGameUnknownPolicy(t *testing.T) {
	rec := do(t, newTestServer(t, readyLexicon(t)), http.MethodPost, "/game/new", map[string]any{"policy": "randon"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_policy"}`, rec.Body.String())

	rec = do(t, newTestServer(t, readyLexicon(t)), http.MethodPost, "/game/new", map[string]any{"policy": "random"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, board.PolicyRandom, decode[gameRes](t, rec).Policy)
}

func TestNewGameBeforeLexiconLoads(t *testing.T) {
	s := newTestServer(t, words.New(words.TextSource("cat\n")))
	rec := do(t, s, http.MethodPost, "/game/new", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestEditBoardAndPath(t *testing.T) {
	s := newTestServer(t, readyLexicon(t))
	created := decode[gameRes](t, do(t, s, http.MethodPost, "/game/new", nil))

	edited := board.Board{
		{"c", "a", "x", "x"},
		{"t", "r", "x", "x"},
		{"x", "x", "x", "x"},
		{"x", "x", "x", ""},
	}
	rec := do(t, s, http.MethodPost, "/game/"+created.GameID+"/board", boardReq{Board: edited})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[gameRes](t, rec)
	assert.True(t, res.Edited)
	assert.Equal(t, "a", res.Board[3][3])

	rec = do(t, s, http.MethodGet, "/game/"+created.GameID+"/path?word=cat", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	path := decode[solver.Result](t, rec)
	assert.Equal(t, "cat", path.Word)
	assert.Equal(t, []board.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}}, path.Path)

	rec = do(t, s, http.MethodGet, "/game/"+created.GameID+"/path?word=zebra", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditBoardRejectsRagged(t *testing.T) {
	s := newTestServer(t, readyLexicon(t))
	created := decode[gameRes](t, do(t, s, http.MethodPost, "/game/new", nil))

	rec := do(t, s, http.MethodPost, "/game/"+created.GameID+"/board", boardReq{Board: board.Board{{"a", "b"}, {"c"}}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_board"}`, rec.Body.String())
}

func TestUnknownGame(t *testing.T) {
	s := newTestServer(t, readyLexicon(t))
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/game/nope", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodPost, "/game/nope/board", boardReq{}).Code)
}

func TestSolve(t *testing.T) {
	s := newTestServer(t, readyLexicon(t))
	rec := do(t, s, http.MethodPost, "/solve", boardReq{Board: board.Board{{"c", "a"}, {"t", "r"}}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[gameRes](t, rec)
	assert.Empty(t, res.GameID)
	got := map[string]bool{}
	for _, w := range res.Words {
		got[w.Word] = true
	}
	assert.True(t, got["cat"])
	assert.True(t, got["car"])
	assert.True(t, got["art"])

	total := 0
	for n, count := range res.ByLength {
		assert.GreaterOrEqual(t, n, solver.MinWordLength)
		total += count
	}
	assert.Equal(t, res.Count, total)
}

func TestSolveOversizedBoard(t *testing.T) {
	big := make(board.Board, board.MaxSide+1)
	for i := range big {
		big[i] = make([]string, board.MaxSide+1)
		for j := range big[i] {
			big[i][j] = "e"
		}
	}
	rec := do(t, newTestServer(t, readyLexicon(t)), http.MethodPost, "/solve", boardReq{Board: big})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_dimensions"}`, rec.Body.String())
}

func TestBodyTooLarge(t *testing.T) {
	body := append(bytes.Repeat([]byte(" "), maxBodyBytes+1), []byte(`{"board":[["a"]]}`)...)
	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	newTestServer(t, readyLexicon(t)).Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"body_too_large"}`, rec.Body.String())
}

func TestSolveEmptyBoard(t *testing.T) {
	rec := do(t, newTestServer(t, readyLexicon(t)), http.MethodPost, "/solve", boardReq{Board: board.Board{}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[gameRes](t, rec).Count)
}

func TestDaily(t *testing.T) {
	s := newTestServer(t, readyLexicon(t))

	a := decode[dailyRes](t, do(t, s, http.MethodGet, "/daily?date=2026-01-02", nil))
	b := decode[dailyRes](t, do(t, s, http.MethodGet, "/daily?date=2026-01-02", nil))
	assert.Equal(t, "2026-01-02", a.Date)
	assert.Equal(t, a.Board, b.Board)

	other := newTestServer(t, readyLexicon(t))
	c := decode[dailyRes](t, do(t, other, http.MethodGet, "/daily?date=2026-01-02", nil))
	assert.Equal(t, a.Board, c.Board, "same salt and date, same board on another instance")

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/daily?date=yesterday", nil).Code)
}

func TestWordStatsAndMetrics(t *testing.T) {
	s := newTestServer(t, readyLexicon(t))
	stats := decode[map[string]any](t, do(t, s, http.MethodGet, "/debug/words", nil))
	assert.Equal(t, "ready", stats["state"])
	assert.EqualValues(t, words.ApproxSize, stats["approx"])

	do(t, s, http.MethodPost, "/game/new", nil)
	rec := do(t, s, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_boards_generated_total")
}

func TestWordStatsReportsLoadFailure(t *testing.T) {
	lex := words.New(words.FileSource(t.TempDir() + "/missing.txt"))
	require.Error(t, lex.Load(context.Background()))

	stats := decode[map[string]any](t, do(t, newTestServer(t, lex), http.MethodGet, "/debug/words", nil))
	assert.Equal(t, "failed", stats["state"])
	assert.Contains(t, stats["error"], "source unavailable")
}

func TestNotFoundIsJSON(t *testing.T) {
	rec := do(t, newTestServer(t, readyLexicon(t)), http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}
