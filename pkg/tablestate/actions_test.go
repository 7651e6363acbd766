package tablestate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	return New(testRegistry(t))
}

func TestSetKeyword(t *testing.T) {
	tbl := testTable(t)

	t.Run("sets keyword and resets page", func(t *testing.T) {
		q := QueryMap{"page": "4"}
		next := tbl.SetKeyword(q, "smith")
		assert.Equal(t, "smith", next["keyword"])
		_, ok := next["page"]
		assert.False(t, ok, "searching must reset pagination")
	})

	t.Run("empty keyword deletes the key", func(t *testing.T) {
		q := QueryMap{"keyword": "smith"}
		next := tbl.SetKeyword(q, "")
		_, ok := next["keyword"]
		assert.False(t, ok)
	})

	t.Run("input map is not mutated", func(t *testing.T) {
		q := QueryMap{"page": "4"}
		_ = tbl.SetKeyword(q, "smith")
		assert.Equal(t, QueryMap{"page": "4"}, q)
	})
}

func TestSetSort(t *testing.T) {
	tbl := testTable(t)

	t.Run("sets both keys", func(t *testing.T) {
		next := tbl.SetSort(QueryMap{}, "id", SortDesc)
		assert.Equal(t, "id", next["sortBy"])
		assert.Equal(t, "desc", next["sortOrder"])
	})

	t.Run("never writes partial state", func(t *testing.T) {
		q := QueryMap{"sortBy": "id", "sortOrder": "asc"}

		next := tbl.SetSort(q, "id", SortNone)
		assert.NotContains(t, next, "sortBy")
		assert.NotContains(t, next, "sortOrder")

		next = tbl.SetSort(q, "", SortAsc)
		assert.NotContains(t, next, "sortBy")
		assert.NotContains(t, next, "sortOrder")
	})
}

func TestToggleSort_Cycle(t *testing.T) {
	tbl := testTable(t)

	// unsorted -> asc -> desc -> unsorted -> asc again.
	q := QueryMap{}

	q = tbl.ToggleSort(q, "id")
	st := tbl.State(q)
	assert.Equal(t, "id", st.SortBy)
	assert.Equal(t, SortAsc, st.SortOrder)

	q = tbl.ToggleSort(q, "id")
	st = tbl.State(q)
	assert.Equal(t, "id", st.SortBy)
	assert.Equal(t, SortDesc, st.SortOrder)

	q = tbl.ToggleSort(q, "id")
	st = tbl.State(q)
	assert.Empty(t, st.SortBy)
	assert.Equal(t, SortNone, st.SortOrder)

	q = tbl.ToggleSort(q, "id")
	st = tbl.State(q)
	assert.Equal(t, "id", st.SortBy)
	assert.Equal(t, SortAsc, st.SortOrder)
}

func TestToggleSort_SwitchingColumnsStartsAscending(t *testing.T) {
	tbl := testTable(t)

	q := tbl.ToggleSort(QueryMap{}, "id")
	q = tbl.ToggleSort(q, "id") // id desc

	q = tbl.ToggleSort(q, "name")
	st := tbl.State(q)
	assert.Equal(t, "name", st.SortBy)
	assert.Equal(t, SortAsc, st.SortOrder)
}

func TestSetColumnVisible(t *testing.T) {
	tbl := testTable(t)

	t.Run("hides a column", func(t *testing.T) {
		next, err := tbl.SetColumnVisible(QueryMap{}, "name", false)
		require.NoError(t, err)
		assert.Equal(t, "id,age", next["columns"])
	})

	t.Run("serializes in registry order", func(t *testing.T) {
		q := QueryMap{"columns": "age,id"}
		next, err := tbl.SetColumnVisible(q, "name", true)
		require.NoError(t, err)
		assert.Equal(t, "id,name,age", next["columns"])
	})

	t.Run("visibility floor leaves the map unchanged", func(t *testing.T) {
		q := QueryMap{"columns": "name"}
		next, err := tbl.SetColumnVisible(q, "name", false)
		require.NoError(t, err)
		assert.Equal(t, q, next)
	})

	t.Run("unknown column fails fast", func(t *testing.T) {
		_, err := tbl.SetColumnVisible(QueryMap{}, "bogus", true)
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})
}

func TestSetFilter(t *testing.T) {
	tbl := testTable(t)

	t.Run("encodes and resets page", func(t *testing.T) {
		q := QueryMap{"page": "7"}
		next, err := tbl.SetFilter(q, "name", "田中")
		require.NoError(t, err)
		assert.Equal(t, `"田中"`, next["filter_name"])
		assert.NotContains(t, next, "page")
	})

	t.Run("nil clears the key and resets page", func(t *testing.T) {
		q := QueryMap{"filter_name": `"x"`, "page": "7"}
		next, err := tbl.SetFilter(q, "name", nil)
		require.NoError(t, err)
		assert.NotContains(t, next, "filter_name")
		assert.NotContains(t, next, "page")
	})

	t.Run("column without filter fails fast", func(t *testing.T) {
		_, err := tbl.SetFilter(QueryMap{}, "id", "x")
		assert.ErrorIs(t, err, ErrNotFilterable)
	})

	t.Run("unknown column fails fast", func(t *testing.T) {
		_, err := tbl.SetFilter(QueryMap{}, "bogus", "x")
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})

	t.Run("encode failure propagates", func(t *testing.T) {
		reg := MustRegistry(Column{Key: "range", Filter: SchemaFilter(checkAgeRange)})
		strict := New(reg)
		_, err := strict.SetFilter(QueryMap{}, "range", ageRange{Min: 9, Max: 1})
		require.Error(t, err)
	})
}

func TestSetPage(t *testing.T) {
	tbl := testTable(t)

	next := tbl.SetPage(QueryMap{}, 5)
	assert.Equal(t, "5", next["page"])

	// No clamping: bounds are the caller's job.
	next = tbl.SetPage(QueryMap{}, 0)
	assert.Equal(t, "0", next["page"])
}

func TestActions_PreserveUnrelatedKeys(t *testing.T) {
	tbl := New(testRegistry(t), WithPrefix("users"))

	q := QueryMap{
		"other_table_keyword": "untouched",
		"users_keyword":       "old",
	}
	next := tbl.SetKeyword(q, "new")

	assert.Equal(t, "untouched", next["other_table_keyword"])
	assert.Equal(t, "new", next["users_keyword"])
}
