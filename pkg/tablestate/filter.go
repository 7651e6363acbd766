package tablestate

import (
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Filter is the codec for one filterable column's condition. Encode and
// Decode have deliberately asymmetric failure policies:
//
//   - Encode is an internal contract. It is only ever called with values the
//     application already validated, so an unencodable value is a programmer
//     error and surfaces as a returned error.
//   - Decode is a boundary contract. Its input crossed a public string
//     boundary (a shared link, a hand-edited URL) and may be stale or
//     tampered with, so any failure degrades to "no filter" instead of
//     propagating.
//
// For every condition x the codec accepts, Decode(Encode(x)) must yield x.
type Filter struct {
	// Encode serializes a typed condition to its wire string.
	Encode func(cond any) (string, error)

	// Decode parses a wire string back into a typed condition. The second
	// return is false when the input is malformed or fails validation.
	Decode func(raw string) (any, bool)

	// Initial is the condition pre-filled in the filter UI when the column
	// has no active filter. May be nil. Carried opaquely by the codec.
	Initial any
}

// JSONFilter returns the default free-form codec for condition type T:
// conditions travel as JSON text, and unparseable input decodes to no
// filter.
func JSONFilter[T any]() *Filter {
	return &Filter{
		Encode: encodeJSON,
		Decode: func(raw string) (any, bool) {
			var v T
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return nil, false
			}
			return v, true
		},
	}
}

// SchemaFilter returns a schema-validated codec for condition type T.
// Decoding parses JSON generically and then maps it strictly into T —
// unknown fields are rejected — before running check. Encoding runs check
// first and refuses to serialize a condition that fails it.
//
// check may be nil, leaving only the structural validation.
func SchemaFilter[T any](check func(T) error) *Filter {
	return &Filter{
		Encode: func(cond any) (string, error) {
			v, ok := cond.(T)
			if !ok {
				return "", fmt.Errorf("filter condition has type %T, want %T", cond, v)
			}
			if check != nil {
				if err := check(v); err != nil {
					return "", fmt.Errorf("invalid filter condition: %w", err)
				}
			}
			return encodeJSON(v)
		},
		Decode: func(raw string) (any, bool) {
			var generic any
			if err := json.Unmarshal([]byte(raw), &generic); err != nil {
				return nil, false
			}
			var v T
			dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				Result:      &v,
				TagName:     "json",
				ErrorUnused: true,
			})
			if err != nil {
				return nil, false
			}
			if err := dec.Decode(generic); err != nil {
				return nil, false
			}
			if check != nil {
				if err := check(v); err != nil {
					return nil, false
				}
			}
			return v, true
		},
	}
}

func encodeJSON(cond any) (string, error) {
	b, err := json.Marshal(cond)
	if err != nil {
		return "", fmt.Errorf("encode filter condition: %w", err)
	}
	return string(b), nil
}
