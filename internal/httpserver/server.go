// internal/httpserver/server.go
//
// HTTP server wiring for the game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, logging).
//   - Public endpoints: "/", "/health".
//   - Catalog + learn endpoints: /catalog, /catalog/search, /catalog/{id}, /learn/today.
//   - Session endpoints (optional auth): POST /session/new, GET /session/{id},
//     POST /session/{id}/events.
//   - Player endpoints (optional auth): GET /stats/me, GET /rounds/mine.
//   - Account endpoints: /auth/*.
//
// Notes:
//   - A player is the signed-in account if a valid token is present, otherwise
//     an anonymous cookie id. Guests can play; their stats move to the account
//     on signup/login.
//   - The server never renders; it exposes session snapshots and accepts named events.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/whoeats/internal/game"
	"github.com/robalobadob/whoeats/internal/history"
	"github.com/robalobadob/whoeats/internal/play"
	"github.com/robalobadob/whoeats/internal/stats"
	"github.com/robalobadob/whoeats/internal/store"
)

// Options carries the settings the handlers need.
type Options struct {
	ClientOrigin   string
	Production     bool // Secure + SameSite=None cookies
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	DailySalt      string
}

// Server bundles router, session controller, stats and DB handle.
type Server struct {
	r      *chi.Mux
	opts   Options
	play   *play.Service
	stats  *stats.Store
	rounds *history.Store
	db     *sql.DB
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options, svc *play.Service, st *stats.Store, rounds *history.Store, db *sql.DB) *Server {
	if opts.CookieName == "" {
		opts.CookieName = "whoeats_token"
	}
	if opts.JWTExpiresDays <= 0 {
		opts.JWTExpiresDays = 14
	}
	s := &Server{r: chi.NewRouter(), opts: opts, play: svc, stats: st, rounds: rounds, db: db}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"whoeats","endpoints":["/health","/catalog","/learn/today","POST /session/new","POST /session/{id}/events","/stats/me","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Catalog + learn screen: public
	s.mountLearn(s.r)

	// Sessions and player data: OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/session/new", s.handleNewSession)
		r.Get("/session/{id}", s.handleGetSession)
		r.Post("/session/{id}/events", s.handleEvent)
		r.Get("/stats/me", s.handleStats)
		r.Get("/rounds/mine", s.handleRounds)
	})

	// Accounts
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (useful for tests and http.Server).
func (s *Server) Handler() http.Handler { return s.r }

// ------------------------------ SESSION ------------------------------------

type newSessionRes struct {
	SessionID string        `json:"sessionId"`
	State     game.Snapshot `json:"state"`
}

// handleNewSession creates a menu-screen session for the current player.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	owner := s.playerID(w, r)
	sess, err := s.play.Start(r.Context(), owner)
	if err != nil {
		log.Error().Err(err).Msg("start session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, newSessionRes{SessionID: sess.ID, State: sess.Snapshot()})
}

// handleGetSession returns the current snapshot.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.play.Snapshot(r.Context(), s.playerID(w, r), chi.URLParam(r, "id"))
	if err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": snap})
}

// handleEvent applies one named event and returns the new state.
// Body: {"event":"selectFood","id":"3"} / {"event":"selectDifficulty","difficulty":"hard"}.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var ev game.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	res, err := s.play.Dispatch(r.Context(), s.playerID(w, r), chi.URLParam(r, "id"), ev)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// sessionError maps controller errors to HTTP statuses.
func (s *Server) sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case play.IsBadEvent(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("session event")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

// ------------------------------ PLAYER -------------------------------------

type statsRes struct {
	stats.GameStats
	LevelsCompleted int `json:"levelsCompleted"`
}

// handleStats returns the player's running stats (zeros for a new player).
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st := s.stats.Load(r.Context(), s.playerID(w, r))
	writeJSON(w, http.StatusOK, statsRes{GameStats: st, LevelsCompleted: st.LevelsCompleted()})
}

// handleRounds returns the player's recent completed rounds.
func (s *Server) handleRounds(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > 50 {
		limit = 50
	}
	out := []history.Round{}
	if s.rounds != nil {
		rows, err := s.rounds.Recent(r.Context(), s.playerID(w, r), limit)
		if err != nil {
			log.Error().Err(err).Msg("recent rounds")
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		out = rows
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
