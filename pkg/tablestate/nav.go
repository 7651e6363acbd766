package tablestate

import "sync"

// Navigator is the contract of the navigation adapter that owns the
// persisted query map — browser history, a server redirect, an in-process
// store. The codec never talks to it directly; Bound does.
type Navigator interface {
	// Read returns the current query map.
	Read() QueryMap

	// Commit replaces the persisted map wholesale with q.
	Commit(q QueryMap) error
}

// Bound attaches a Table to a Navigator so each action reads the current
// map, applies its delta, and commits the result in one call.
//
// The read/commit cycle is not transactional. Every action carries forward
// the entire base map it read, so two actions dispatched before either
// commit is observed will race: the later commit silently clobbers the
// earlier one's change, even to a field it did not intend to touch. A
// single in-flight action is the expected usage; concurrent dispatch is
// last-commit-wins on the whole map.
type Bound struct {
	table *Table
	nav   Navigator
}

// Bind attaches t to nav.
func Bind(t *Table, nav Navigator) *Bound {
	return &Bound{table: t, nav: nav}
}

// Table returns the underlying table.
func (b *Bound) Table() *Table { return b.table }

// State decodes the navigator's current map.
func (b *Bound) State() State {
	return b.table.State(b.nav.Read())
}

// SetKeyword applies Table.SetKeyword against the current map and commits.
func (b *Bound) SetKeyword(keyword string) error {
	return b.nav.Commit(b.table.SetKeyword(b.nav.Read(), keyword))
}

// SetSort applies Table.SetSort against the current map and commits.
func (b *Bound) SetSort(sortBy string, order SortOrder) error {
	return b.nav.Commit(b.table.SetSort(b.nav.Read(), sortBy, order))
}

// ToggleSort applies Table.ToggleSort against the current map and commits.
func (b *Bound) ToggleSort(col string) error {
	return b.nav.Commit(b.table.ToggleSort(b.nav.Read(), col))
}

// SetColumnVisible applies Table.SetColumnVisible against the current map
// and commits.
func (b *Bound) SetColumnVisible(col string, visible bool) error {
	next, err := b.table.SetColumnVisible(b.nav.Read(), col, visible)
	if err != nil {
		return err
	}
	return b.nav.Commit(next)
}

// SetFilter applies Table.SetFilter against the current map and commits.
func (b *Bound) SetFilter(col string, cond any) error {
	next, err := b.table.SetFilter(b.nav.Read(), col, cond)
	if err != nil {
		return err
	}
	return b.nav.Commit(next)
}

// SetPage applies Table.SetPage against the current map and commits.
func (b *Bound) SetPage(page int) error {
	return b.nav.Commit(b.table.SetPage(b.nav.Read(), page))
}

// MemoryNavigator is an in-process Navigator. It is safe for concurrent
// use, though the non-transactional hazard documented on Bound applies all
// the same.
type MemoryNavigator struct {
	mu      sync.Mutex
	current QueryMap
}

// NewMemoryNavigator creates a navigator holding a copy of initial.
// A nil initial starts empty.
func NewMemoryNavigator(initial QueryMap) *MemoryNavigator {
	return &MemoryNavigator{current: initial.Clone()}
}

// Read returns a copy of the current map.
func (n *MemoryNavigator) Read() QueryMap {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current.Clone()
}

// Commit replaces the current map with a copy of q.
func (n *MemoryNavigator) Commit(q QueryMap) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = q.Clone()
	return nil
}
