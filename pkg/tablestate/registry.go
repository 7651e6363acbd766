package tablestate

import (
	"errors"
	"fmt"
)

// ErrDuplicateColumn is returned by NewRegistry when two descriptors share a
// key. A registry with ambiguous keys is a misconfigured table definition,
// so construction fails instead of picking a winner.
var ErrDuplicateColumn = errors.New("duplicate column key")

// Column is the static descriptor for one table column. Descriptors are
// created once at table-definition time and never mutated.
type Column struct {
	// Key identifies the column. Unique within a registry.
	Key string

	// Sortable marks the column as a valid sort target. The decoder rejects
	// a persisted sortBy naming a non-sortable column.
	Sortable bool

	// Visible marks the column as shown by default, before the user has
	// customized visibility.
	Visible bool

	// Filter enables filtering on this column. Nil means not filterable.
	Filter *Filter
}

// Registry is the ordered, immutable set of column descriptors for one
// table instance. Build it once at startup and share it freely; it has no
// mutable state.
type Registry struct {
	cols  []Column
	index map[string]int
}

// NewRegistry builds a registry from descriptors in display order.
// It fails if two descriptors share a key.
func NewRegistry(cols ...Column) (*Registry, error) {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, ok := index[c.Key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Key)
		}
		index[c.Key] = i
	}
	r := &Registry{
		cols:  make([]Column, len(cols)),
		index: index,
	}
	copy(r.cols, cols)
	return r, nil
}

// MustRegistry is NewRegistry that panics on error. For static table
// definitions known correct at compile time.
func MustRegistry(cols ...Column) *Registry {
	r, err := NewRegistry(cols...)
	if err != nil {
		panic(err)
	}
	return r
}

// Columns returns the descriptors in registry order.
func (r *Registry) Columns() []Column {
	out := make([]Column, len(r.cols))
	copy(out, r.cols)
	return out
}

// Lookup returns the descriptor for key, reporting whether it exists.
func (r *Registry) Lookup(key string) (Column, bool) {
	i, ok := r.index[key]
	if !ok {
		return Column{}, false
	}
	return r.cols[i], true
}

// Has reports whether key names a registered column.
func (r *Registry) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// Filterable returns the columns that carry a filter definition, in
// registry order.
func (r *Registry) Filterable() []Column {
	var out []Column
	for _, c := range r.cols {
		if c.Filter != nil {
			out = append(out, c)
		}
	}
	return out
}

// Sortable returns the sortable columns in registry order.
func (r *Registry) Sortable() []Column {
	var out []Column
	for _, c := range r.cols {
		if c.Sortable {
			out = append(out, c)
		}
	}
	return out
}

// Normalize returns the registered members of keys in registry order,
// dropping unknown keys and duplicates. Used to canonicalize a visible-column
// set before serializing it.
func (r *Registry) Normalize(keys []string) []string {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var out []string
	for _, c := range r.cols {
		if want[c.Key] {
			out = append(out, c.Key)
		}
	}
	return out
}

// DefaultVisible returns the keys of the default-visible columns in
// registry order. A table must never show zero columns, so if no descriptor
// is marked visible every column is treated as visible.
func (r *Registry) DefaultVisible() []string {
	var out []string
	for _, c := range r.cols {
		if c.Visible {
			out = append(out, c.Key)
		}
	}
	if len(out) == 0 {
		for _, c := range r.cols {
			out = append(out, c.Key)
		}
	}
	return out
}
