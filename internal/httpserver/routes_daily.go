// internal/httpserver/routes_daily.go
//
// HTTP routes for the board of the day.
//   - GET /daily            → today's board and words (UTC)
//   - GET /daily?date=YYYY-MM-DD → the board for another date
//
// Boards are derived from HMAC(salt, date), so every player sees the same
// grid. Solved days are cached in memory; the cache keeps a handful of dates.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/boggle/internal/board"
	"github.com/robalobadob/boggle/internal/daily"
	"github.com/robalobadob/boggle/internal/game"
)

const dailyCacheSize = 8

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv   *Server
	salt  string
	mu    sync.Mutex // guards games
	games map[string]*game.Game
}

// mountDaily registers the /daily routes.
func (s *Server) mountDaily(r chi.Router, salt string) {
	if salt == "" {
		salt = "local_dev_salt"
	}
	dd := &dailyServer{srv: s, salt: salt, games: make(map[string]*game.Game)}
	r.Get("/daily", dd.handleDaily)
}

// dailyRes is returned by /daily.
type dailyRes struct {
	Date string `json:"date"`
	gameRes
}

func (d *dailyServer) handleDaily(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if q := r.URL.Query().Get("date"); q != "" {
		t, err := daily.ParseDateKey(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_date")
			return
		}
		date = t
	}
	key := daily.DateKey(date)

	d.mu.Lock()
	g, ok := d.games[key]
	d.mu.Unlock()

	if !ok {
		b, err := daily.Board(date, d.salt, d.srv.size, board.PolicyDice)
		if err != nil {
			d.srv.writeEngineError(w, err)
			return
		}
		rs, err := d.srv.engine.Solve(r.Context(), b)
		if err != nil {
			d.srv.writeEngineError(w, err)
			return
		}
		g = &game.Game{ID: "daily-" + key, Board: b, Policy: board.PolicyDice, Words: rs, CreatedAt: date}

		d.mu.Lock()
		if len(d.games) >= dailyCacheSize {
			for k := range d.games {
				delete(d.games, k)
			}
		}
		d.games[key] = g
		d.mu.Unlock()
	}

	_ = json.NewEncoder(w).Encode(dailyRes{Date: key, gameRes: toGameRes(g)})
}
