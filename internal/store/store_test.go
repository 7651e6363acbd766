package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tablekit/pkg/tablestate"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate())
	require.NoError(t, s.Seed(context.Background()))
	return s
}

func decodeQuery(t *testing.T, q tablestate.QueryMap) tablestate.State {
	t.Helper()
	return NewTable("").State(q)
}

func TestSeed_Idempotent(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Seed(context.Background()))

	page, err := s.List(context.Background(), decodeQuery(t, nil), 100)
	require.NoError(t, err)
	assert.Equal(t, len(samplePeople), page.Total)
}

func TestList_Pagination(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	first, err := s.List(ctx, decodeQuery(t, nil), 10)
	require.NoError(t, err)
	assert.Len(t, first.People, 10)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 3, first.PageCount)

	last, err := s.List(ctx, decodeQuery(t, tablestate.QueryMap{"page": "3"}), 10)
	require.NoError(t, err)
	assert.Len(t, last.People, len(samplePeople)-20)
}

func TestList_Sort(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	st := decodeQuery(t, tablestate.QueryMap{"sortBy": "age", "sortOrder": "desc"})
	page, err := s.List(ctx, st, 5)
	require.NoError(t, err)
	require.NotEmpty(t, page.People)

	for i := 1; i < len(page.People); i++ {
		assert.GreaterOrEqual(t, page.People[i-1].Age, page.People[i].Age)
	}
}

func TestList_Keyword(t *testing.T) {
	s := setupStore(t)

	st := decodeQuery(t, tablestate.QueryMap{"keyword": "Lisbon"})
	page, err := s.List(context.Background(), st, 50)
	require.NoError(t, err)
	require.NotEmpty(t, page.People)
	for _, p := range page.People {
		assert.Equal(t, "Lisbon", p.City)
	}
}

func TestList_Filters(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	t.Run("name substring", func(t *testing.T) {
		st := decodeQuery(t, tablestate.QueryMap{"filter_name": `"Tanaka"`})
		page, err := s.List(ctx, st, 50)
		require.NoError(t, err)
		require.Len(t, page.People, 1)
		assert.Equal(t, "Emi Tanaka", page.People[0].Name)
	})

	t.Run("age range", func(t *testing.T) {
		st := decodeQuery(t, tablestate.QueryMap{"filter_age": `{"min":20,"max":29}`})
		page, err := s.List(ctx, st, 50)
		require.NoError(t, err)
		require.NotEmpty(t, page.People)
		for _, p := range page.People {
			assert.GreaterOrEqual(t, p.Age, 20)
			assert.LessOrEqual(t, p.Age, 29)
		}
	})

	t.Run("malformed filter is ignored", func(t *testing.T) {
		st := decodeQuery(t, tablestate.QueryMap{"filter_age": "not json"})
		page, err := s.List(ctx, st, 50)
		require.NoError(t, err)
		assert.Equal(t, len(samplePeople), page.Total)
	})
}

func TestCheckAgeRange(t *testing.T) {
	assert.NoError(t, CheckAgeRange(AgeRange{Min: 0, Max: 100}))
	assert.Error(t, CheckAgeRange(AgeRange{Min: -1, Max: 5}))
	assert.Error(t, CheckAgeRange(AgeRange{Min: 10, Max: 5}))
}
