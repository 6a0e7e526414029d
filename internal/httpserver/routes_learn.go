// internal/httpserver/routes_learn.go
//
// Read-only catalog routes for the learn screen:
//   - GET /catalog             → every animal, catalog order
//   - GET /catalog/search?q=   → fuzzy name/food lookup
//   - GET /catalog/{id}        → one animal
//   - GET /learn/today         → deterministic animal of the day (date + salt)

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/whoeats/internal/catalog"
	"github.com/robalobadob/whoeats/internal/daily"
)

// mountLearn registers catalog and learn routes.
func (s *Server) mountLearn(r chi.Router) {
	r.Get("/catalog", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"animals": catalog.All(), "count": catalog.Len()})
	})
	r.Get("/catalog/search", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		hits := catalog.Search(r.URL.Query().Get("q"), limit)
		if hits == nil {
			hits = []catalog.Animal{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"animals": hits})
	})
	r.Get("/catalog/{id}", func(w http.ResponseWriter, r *http.Request) {
		a, ok := catalog.ByID(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeJSON(w, http.StatusOK, a)
	})
	r.Get("/learn/today", s.handleToday)
}

// todayRes is returned by /learn/today.
type todayRes struct {
	Date   string         `json:"date"`
	Index  int            `json:"index"`
	Animal catalog.Animal `json:"animal"`
}

// handleToday returns the featured animal for the current UTC date.
func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	idx := daily.Index(now, s.opts.DailySalt, catalog.Len())
	a, ok := catalog.At(idx)
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "catalog_empty")
		return
	}
	writeJSON(w, http.StatusOK, todayRes{Date: daily.DateKey(now), Index: idx, Animal: a})
}
