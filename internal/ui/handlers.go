package ui

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/tablekit/internal/store"
	"github.com/leapstack-labs/tablekit/pkg/tablestate"
)

// TablePage renders the table for the state encoded in the URL query
// string. A bare URL with a remembered session view redirects to it.
func (s *Server) TablePage(w http.ResponseWriter, r *http.Request) {
	q := tablestate.FromValues(r.URL.Query())
	nav := s.navigator(w, r)

	if len(q) == 0 {
		if saved := nav.Read(); len(saved) > 0 {
			http.Redirect(w, r, "/?"+saved.Encode(), http.StatusSeeOther)
			return
		}
	}

	// Remember this view for the next bare visit.
	if err := nav.Commit(q); err != nil {
		s.logger.Warn("failed to save view to session", "error", err)
	}

	st := s.table.State(q)
	page, err := s.store.List(r.Context(), st, s.pageSize)
	if err != nil {
		s.logger.Error("failed to list rows", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := renderTablePage(w, s.buildPageData(q, st, page)); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}

// Search applies the keyword form against the remembered view and
// redirects to the resulting URL. The redirect is the commit.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	nav := s.navigator(w, r)
	b := tablestate.Bind(s.table, nav)
	if err := b.SetKeyword(strings.TrimSpace(r.PostFormValue("keyword"))); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/?"+nav.Read().Encode(), http.StatusSeeOther)
}

// ApplyFilter validates the filter form for one column, applies it against
// the remembered view, and redirects. An empty form clears the filter.
func (s *Server) ApplyFilter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	col := chi.URLParam(r, "column")
	cond, err := s.filterCondition(col, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	nav := s.navigator(w, r)
	b := tablestate.Bind(s.table, nav)
	if err := b.SetFilter(col, cond); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, tablestate.ErrUnknownColumn) || errors.Is(err, tablestate.ErrNotFilterable) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	http.Redirect(w, r, "/?"+nav.Read().Encode(), http.StatusSeeOther)
}

// filterCondition turns the raw form input for col into the column's typed
// condition, or nil to clear. This is the filter widget's job: raw input is
// validated here, before it crosses into the codec.
func (s *Server) filterCondition(col string, r *http.Request) (any, error) {
	switch col {
	case "age":
		minRaw := strings.TrimSpace(r.PostFormValue("min"))
		maxRaw := strings.TrimSpace(r.PostFormValue("max"))
		if minRaw == "" && maxRaw == "" {
			return nil, nil
		}
		rng := store.AgeRange{Min: 0, Max: 200}
		if minRaw != "" {
			v, err := strconv.Atoi(minRaw)
			if err != nil {
				return nil, errors.New("min must be a number")
			}
			rng.Min = v
		}
		if maxRaw != "" {
			v, err := strconv.Atoi(maxRaw)
			if err != nil {
				return nil, errors.New("max must be a number")
			}
			rng.Max = v
		}
		if err := store.CheckAgeRange(rng); err != nil {
			return nil, err
		}
		return rng, nil
	default:
		v := strings.TrimSpace(r.PostFormValue("value"))
		if v == "" {
			return nil, nil
		}
		return v, nil
	}
}
