package tablestate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Structural errors: these indicate a misconfigured table definition or a
// call the table was not configured for, never a runtime/user-input
// condition.
var (
	// ErrUnknownColumn is returned when an action names a column that is
	// not in the registry.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrNotFilterable is returned when SetFilter targets a column without
	// a filter definition.
	ErrNotFilterable = errors.New("column has no filter definition")
)

// Table binds a column registry to a key namespace and exposes the state
// decoder plus the actions that compute state transitions. A Table is an
// immutable value: every action takes the current map and returns a new
// one, leaving the input untouched.
type Table struct {
	reg *Registry
	ns  Namespace
}

// Option configures a Table.
type Option func(*Table)

// WithPrefix namespaces all of the table's keys under prefix, so several
// tables can share one query map.
func WithPrefix(prefix string) Option {
	return func(t *Table) {
		t.ns = Namespace{Prefix: prefix}
	}
}

// New creates a Table over reg. Without options the canonical unprefixed
// keys are used.
func New(reg *Registry, opts ...Option) *Table {
	t := &Table{reg: reg}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Registry returns the table's column registry.
func (t *Table) Registry() *Registry { return t.reg }

// Namespace returns the table's key namespace.
func (t *Table) Namespace() Namespace { return t.ns }

// State derives the typed state from q.
func (t *Table) State(q QueryMap) State {
	return DecodeState(q, t.reg, t.ns)
}

// SetKeyword sets the search term. An empty term clears it. Searching
// always resets pagination.
func (t *Table) SetKeyword(q QueryMap, keyword string) QueryMap {
	next := q.Clone()
	if keyword == "" {
		delete(next, t.ns.Keyword())
	} else {
		next[t.ns.Keyword()] = keyword
	}
	delete(next, t.ns.Page())
	return next
}

// SetSort sets or clears the sort. Partial sort state is never written:
// when either argument is empty, both keys are deleted.
func (t *Table) SetSort(q QueryMap, sortBy string, order SortOrder) QueryMap {
	next := q.Clone()
	if sortBy == "" || order == SortNone {
		delete(next, t.ns.SortBy())
		delete(next, t.ns.SortOrder())
		return next
	}
	next[t.ns.SortBy()] = sortBy
	next[t.ns.SortOrder()] = string(order)
	return next
}

// ToggleSort advances the three-state sort cycle for col:
// unsorted -> ascending -> descending -> unsorted. Toggling a column that is
// not the current sort target starts it at ascending.
func (t *Table) ToggleSort(q QueryMap, col string) QueryMap {
	st := t.State(q)
	if st.SortBy != col {
		return t.SetSort(q, col, SortAsc)
	}
	switch st.SortOrder {
	case SortAsc:
		return t.SetSort(q, col, SortDesc)
	case SortDesc:
		return t.SetSort(q, "", SortNone)
	default:
		return t.SetSort(q, col, SortAsc)
	}
}

// SetColumnVisible adds or removes col from the visible set. Removing the
// last visible column is silently ignored: at least one column must always
// remain visible. The new set is serialized in registry order regardless of
// how the current map ordered it.
func (t *Table) SetColumnVisible(q QueryMap, col string, visible bool) (QueryMap, error) {
	if !t.reg.Has(col) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}

	current := t.State(q).Columns
	set := make(map[string]bool, len(current)+1)
	for _, k := range current {
		set[k] = true
	}
	if visible {
		set[col] = true
	} else {
		delete(set, col)
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	normalized := t.reg.Normalize(keys)
	if len(normalized) == 0 {
		// Visibility floor: refuse to hide the last column.
		return q, nil
	}

	next := q.Clone()
	next[t.ns.Columns()] = strings.Join(normalized, ",")
	return next, nil
}

// SetFilter sets col's filter condition, or clears it when cond is nil.
// Changing a filter always resets pagination. Encoding failures propagate:
// the caller is expected to hand over only already-validated conditions.
func (t *Table) SetFilter(q QueryMap, col string, cond any) (QueryMap, error) {
	c, ok := t.reg.Lookup(col)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	if c.Filter == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFilterable, col)
	}

	next := q.Clone()
	if cond == nil {
		delete(next, t.ns.FilterKey(col))
	} else {
		raw, err := c.Filter.Encode(cond)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", col, err)
		}
		next[t.ns.FilterKey(col)] = raw
	}
	delete(next, t.ns.Page())
	return next, nil
}

// SetPage sets the page key. No clamping happens here: previous/next
// helpers are expected to check bounds and simply not call in when already
// at a boundary.
func (t *Table) SetPage(q QueryMap, page int) QueryMap {
	next := q.Clone()
	next[t.ns.Page()] = strconv.Itoa(page)
	return next
}
