// internal/httpserver/server.go
//
// HTTP server wiring for the word-grid backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words".
//   - Game endpoints: POST /game/new, GET /game/{id}, POST /game/{id}/board,
//     GET /game/{id}/path, POST /solve.
//   - Board of the day: mounted under /daily.
//
// Notes:
//   - Every search needs a ready lexicon; until then game routes answer 503.
//   - Boards larger than board.MaxSide on either side answer 400 and request
//     bodies over maxBodyBytes answer 413.
//   - Responses list words longest first; each word carries the path to
//     highlight, path[0] being the start cell.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/internal/board"
	"github.com/robalobadob/boggle/internal/game"
	"github.com/robalobadob/boggle/internal/metrics"
	"github.com/robalobadob/boggle/internal/solver"
	"github.com/robalobadob/boggle/internal/store"
	"github.com/robalobadob/boggle/internal/words"
)

// maxBodyBytes bounds request bodies; a full 8x8 board is well under 1 KiB.
const maxBodyBytes = 16 << 10

// Options configures a Server.
type Options struct {
	ClientOrigin string
	DailySalt    string
	BoardSize    int
	Metrics      *metrics.Collector
}

// Server bundles router, session store, game engine and lexicon.
type Server struct {
	r       *chi.Mux
	store   store.Store
	engine  *game.Engine
	lex     *words.Lexicon
	metrics *metrics.Collector
	size    int
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, eng *game.Engine, lex *words.Lexicon, opts Options) *Server {
	if opts.BoardSize <= 0 {
		opts.BoardSize = board.DefaultSize
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		engine:  eng,
		lex:     lex,
		metrics: opts.Metrics,
		size:    opts.BoardSize,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(chimw.RequestSize(maxBodyBytes))
	s.r.Use(accessLog)
	s.r.Use(cors(opts.ClientOrigin))

	// Prometheus sets its own content type.
	s.r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())

	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"boggle-go","endpoints":["/health","POST /game/new","GET /game/{id}","POST /game/{id}/board","GET /game/{id}/path","POST /solve","/daily","/metrics"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", s.handleWordStats)

		// --- games ---
		r.Post("/game/new", s.handleNewGame)
		r.Get("/game/{id}", s.handleGetGame)
		r.Post("/game/{id}/board", s.handleEditBoard)
		r.Get("/game/{id}/path", s.handlePath)
		r.Post("/solve", s.handleSolve)

		s.mountDaily(r, opts.DailySalt)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ payloads -----------------------------------

type gameRes struct {
	GameID   string          `json:"gameId"`
	Board    board.Board     `json:"board"`
	Policy   board.Policy    `json:"policy,omitempty"`
	Edited   bool            `json:"edited"`
	Count    int             `json:"count"`
	ByLength map[int]int     `json:"byLength"` // word length -> number of words
	Words    []solver.Result `json:"words"`
}

func toGameRes(g *game.Game) gameRes {
	byLength := make(map[int]int)
	for n, rs := range game.GroupByLength(g.Words) {
		byLength[n] = len(rs)
	}
	return gameRes{
		GameID:   g.ID,
		Board:    g.Board,
		Policy:   g.Policy,
		Edited:   g.Edited,
		Count:    len(g.Words),
		ByLength: byLength,
		Words:    game.SortForDisplay(g.Words),
	}
}

// newGameReq is the payload for POST /game/new. Size defaults to the
// configured board size, policy to "dice".
type newGameReq struct {
	Size   int    `json:"size"`
	Policy string `json:"policy"`
}

type boardReq struct {
	Board board.Board `json:"board"`
}

// ------------------------------ handlers -----------------------------------

func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	res := map[string]any{
		"state":  s.lex.State().String(),
		"size":   s.lex.Size(),
		"approx": s.lex.ApproxSize(),
	}
	if err := s.lex.Err(); err != nil {
		res["error"] = err.Error()
	}
	_ = json.NewEncoder(w).Encode(res)
}

// decodeBody decodes a JSON body into v, writing 400 or 413 on failure.
// An empty body is accepted when allowEmpty is set.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large")
		return false
	}
	writeError(w, http.StatusBadRequest, "bad_json")
	return false
}

// handleNewGame generates a board, searches it and stores the session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if !decodeBody(w, r, &req, true) {
		return
	}
	if req.Size == 0 {
		req.Size = s.size
	}
	p, err := board.ParsePolicy(req.Policy)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_policy")
		return
	}
	g, err := s.engine.New(r.Context(), req.Size, p)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.save(w, r, g)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	_ = json.NewEncoder(w).Encode(toGameRes(g))
}

// handleEditBoard replaces a session's board with a hand-edited one and re-searches it.
func (s *Server) handleEditBoard(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	var req boardReq
	if !decodeBody(w, r, &req, false) {
		return
	}
	ng, err := s.engine.Edit(r.Context(), g, req.Board)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.save(w, r, ng)
}

// handlePath returns the path for one word of a session (for highlighting).
func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	res, ok := g.Lookup(r.URL.Query().Get("word"))
	if !ok {
		writeError(w, http.StatusNotFound, "word_not_on_board")
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleSolve searches a caller-supplied board without creating a session.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req boardReq
	if !decodeBody(w, r, &req, false) {
		return
	}
	g, err := s.engine.FromBoard(r.Context(), req.Board)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	res := toGameRes(g)
	res.GameID = ""
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) save(w http.ResponseWriter, r *http.Request, g *game.Game) {
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.metrics.SetGamesStored(s.store.Len())
	_ = json.NewEncoder(w).Encode(toGameRes(g))
}

// writeEngineError maps engine errors to status codes.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, words.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, "lexicon_not_ready")
	case errors.Is(err, board.ErrInvalidDimensions):
		writeError(w, http.StatusBadRequest, "invalid_dimensions")
	case errors.Is(err, board.ErrInvalidBoard):
		writeError(w, http.StatusBadRequest, "invalid_board")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusGatewayTimeout, "search_timeout")
	default:
		log.Warn().Err(err).Msg("engine")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// writeError writes a JSON error body with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
