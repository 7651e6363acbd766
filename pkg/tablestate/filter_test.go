package tablestate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ageRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func checkAgeRange(r ageRange) error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("bad range [%d, %d]", r.Min, r.Max)
	}
	return nil
}

func TestJSONFilter_RoundTrip(t *testing.T) {
	t.Run("string condition", func(t *testing.T) {
		f := JSONFilter[string]()

		raw, err := f.Encode("田中")
		require.NoError(t, err)
		assert.Equal(t, `"田中"`, raw)

		got, ok := f.Decode(raw)
		require.True(t, ok)
		assert.Equal(t, "田中", got)
	})

	t.Run("struct condition", func(t *testing.T) {
		f := JSONFilter[ageRange]()
		want := ageRange{Min: 18, Max: 65}

		raw, err := f.Encode(want)
		require.NoError(t, err)

		got, ok := f.Decode(raw)
		require.True(t, ok)
		assert.Equal(t, want, got)
	})
}

func TestJSONFilter_DecodeSoftFails(t *testing.T) {
	f := JSONFilter[ageRange]()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{{{"},
		{name: "wrong shape", raw: `"a string"`},
		{name: "empty", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := f.Decode(tt.raw)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestSchemaFilter_RoundTrip(t *testing.T) {
	f := SchemaFilter(checkAgeRange)

	want := ageRange{Min: 20, Max: 30}
	raw, err := f.Encode(want)
	require.NoError(t, err)

	got, ok := f.Decode(raw)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestSchemaFilter_EncodeFailsFast(t *testing.T) {
	f := SchemaFilter(checkAgeRange)

	t.Run("value fails check", func(t *testing.T) {
		_, err := f.Encode(ageRange{Min: 10, Max: 5})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid filter condition")
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := f.Encode("not a range")
		require.Error(t, err)
	})
}

func TestSchemaFilter_DecodeSoftFails(t *testing.T) {
	f := SchemaFilter(checkAgeRange)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{{{"},
		{name: "unknown field rejected", raw: `{"min":1,"max":2,"extra":true}`},
		{name: "value fails check", raw: `{"min":10,"max":5}`},
		{name: "wrong shape", raw: `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := f.Decode(tt.raw)
			assert.False(t, ok, "decode of %q should fail", tt.raw)
			assert.Nil(t, got)
		})
	}
}
