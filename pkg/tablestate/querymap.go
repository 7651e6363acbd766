package tablestate

import "net/url"

// QueryMap is the flat string-to-string representation of a table's
// interaction state. It is the only persisted form; everything else is
// derived from it on demand. A missing key and a key that was never set are
// indistinguishable, which is intentional: actions delete keys to reset
// fields to their defaults.
type QueryMap map[string]string

// Clone returns an independent copy of the map. Actions never mutate their
// input; they clone, apply the delta, and return the copy.
func (m QueryMap) Clone() QueryMap {
	out := make(QueryMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// FromValues converts url.Values into a QueryMap. When a key carries
// multiple values the first one wins, matching how single-valued query
// parameters are conventionally read.
func FromValues(v url.Values) QueryMap {
	out := make(QueryMap, len(v))
	for k, vals := range v {
		if len(vals) > 0 {
			out[k] = vals[0]
		}
	}
	return out
}

// Values converts the map back into url.Values for URL construction.
func (m QueryMap) Values() url.Values {
	out := make(url.Values, len(m))
	for k, v := range m {
		out.Set(k, v)
	}
	return out
}

// Encode renders the map as a URL query string with keys in sorted order.
func (m QueryMap) Encode() string {
	return m.Values().Encode()
}
