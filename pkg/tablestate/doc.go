// Package tablestate keeps the full interaction state of a data table —
// keyword search, sort column and direction, per-column filters, visible
// columns, current page — encoded in a flat string key/value map, so the
// state survives reloads and is shareable as a link.
//
// This package contains:
//   - Column descriptors and the Registry built from them
//   - The key Namespace that maps semantic fields to flat map keys
//   - Filter codecs (free-form JSON and schema-validated)
//   - The state decoder (QueryMap -> State)
//   - Actions that compute state transitions as pure map deltas
//
// The Golden Rule: pkg/tablestate imports ONLY stdlib and the mapstructure
// decoder. Rendering and navigation live elsewhere and depend on this
// package, not the reverse.
package tablestate
