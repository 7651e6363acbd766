package tablestate

import (
	"strconv"
	"strings"
)

// SortOrder is the direction of an active sort. The zero value means no
// direction is set.
type SortOrder string

// Sort directions as they appear on the wire.
const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// State is the typed interaction state of one table instance. It is a
// value derived from a QueryMap on every read — never stored, never mutated
// in place. Two States derived from equal maps are equal.
type State struct {
	// Keyword is the search term. Empty means no search is active.
	Keyword string

	// SortBy is the sort column key, or empty when unsorted. It only ever
	// names a registered sortable column; anything else decodes to empty.
	SortBy string

	// SortOrder is the sort direction. Validated independently of SortBy:
	// an invalid persisted direction does not clear the column and vice
	// versa.
	SortOrder SortOrder

	// Columns is the visible column list. Never empty: when the persisted
	// list is absent or names no registered column, the registry's defaults
	// substitute. A valid persisted list keeps its caller-given order.
	Columns []string

	// Page is the 1-based page number. Non-numeric or missing input
	// resolves to 1.
	Page int

	// Filters maps each filterable column key to its decoded condition.
	// Columns with no active filter (including ones whose persisted value
	// failed to decode) are simply absent; the map never holds nils.
	Filters map[string]any
}

// DecodeState derives the typed state from a raw map. It is a pure
// projection: malformed or tampered values never fail, they fall back to
// the field's documented default so that hand-edited links stay safe to
// open.
func DecodeState(q QueryMap, reg *Registry, ns Namespace) State {
	st := State{
		Keyword: q[ns.Keyword()],
		Page:    decodePage(q[ns.Page()]),
		Columns: decodeColumns(q[ns.Columns()], reg),
		Filters: decodeFilters(q, reg, ns),
	}

	// sortBy and sortOrder are validated independently: a stale column name
	// must not erase a still-valid direction, and the other way around.
	if col, ok := reg.Lookup(q[ns.SortBy()]); ok && col.Sortable {
		st.SortBy = col.Key
	}
	switch SortOrder(q[ns.SortOrder()]) {
	case SortAsc:
		st.SortOrder = SortAsc
	case SortDesc:
		st.SortOrder = SortDesc
	}

	return st
}

func decodePage(raw string) int {
	if raw == "" || !isDigits(raw) {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func decodeColumns(raw string, reg *Registry) []string {
	var out []string
	if raw != "" {
		for _, key := range strings.Split(raw, ",") {
			if reg.Has(key) {
				out = append(out, key)
			}
		}
	}
	if len(out) == 0 {
		return reg.DefaultVisible()
	}
	return out
}

func decodeFilters(q QueryMap, reg *Registry, ns Namespace) map[string]any {
	filters := make(map[string]any)
	for _, col := range reg.Filterable() {
		raw, ok := q[ns.FilterKey(col.Key)]
		if !ok {
			continue
		}
		// One column's malformed value must not erase the others': decode
		// failures drop this entry and move on.
		if cond, ok := col.Filter.Decode(raw); ok && cond != nil {
			filters[col.Key] = cond
		}
	}
	return filters
}
