package ui

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/leapstack-labs/tablekit/internal/store"
	"github.com/leapstack-labs/tablekit/pkg/tablestate"
)

//go:embed templates/table.html
var tableHTML string

var tableTmpl = template.Must(template.New("table").Parse(tableHTML))

type headerCell struct {
	Key       string
	Title     string
	SortHref  string // empty when the column is not sortable
	Indicator string
}

type columnToggle struct {
	Key     string
	Title   string
	Visible bool
	Href    string // empty when toggling would hide the last column
}

type filterChip struct {
	Title     string
	Display   string
	ClearHref string
}

type pageData struct {
	Keyword    string
	ShareQuery string
	Headers    []headerCell
	Toggles    []columnToggle
	Chips      []filterChip
	Rows       [][]string
	NameFilter string
	CityFilter string
	AgeMin     string
	AgeMax     string
	Page       int
	PageCount  int
	Total      int
	PrevHref   string
	NextHref   string
}

func renderTablePage(w io.Writer, data pageData) error {
	return tableTmpl.Execute(w, data)
}

// buildPageData computes every link on the page by dispatching the
// corresponding action against the current map. Committing is the
// browser's job: following a link replaces the query string wholesale.
func (s *Server) buildPageData(q tablestate.QueryMap, st tablestate.State, page store.Page) pageData {
	data := pageData{
		Keyword:    st.Keyword,
		ShareQuery: q.Encode(),
		Page:       page.Page,
		PageCount:  page.PageCount,
		Total:      page.Total,
	}

	for _, key := range st.Columns {
		col, ok := s.table.Registry().Lookup(key)
		if !ok {
			continue
		}
		cell := headerCell{Key: key, Title: store.ColumnTitles[key]}
		if col.Sortable {
			cell.SortHref = "?" + s.table.ToggleSort(q, key).Encode()
			if st.SortBy == key {
				switch st.SortOrder {
				case tablestate.SortAsc:
					cell.Indicator = "^"
				case tablestate.SortDesc:
					cell.Indicator = "v"
				}
			}
		}
		data.Headers = append(data.Headers, cell)
	}

	visible := make(map[string]bool, len(st.Columns))
	for _, key := range st.Columns {
		visible[key] = true
	}
	for _, col := range s.table.Registry().Columns() {
		toggle := columnToggle{
			Key:     col.Key,
			Title:   store.ColumnTitles[col.Key],
			Visible: visible[col.Key],
		}
		if next, err := s.table.SetColumnVisible(q, col.Key, !toggle.Visible); err == nil {
			// The visibility floor returns the map unchanged; render the
			// toggle disabled instead of offering a dead link.
			if next.Encode() != q.Encode() {
				toggle.Href = "?" + next.Encode()
			}
		}
		data.Toggles = append(data.Toggles, toggle)
	}

	for _, col := range s.table.Registry().Filterable() {
		cond, active := st.Filters[col.Key]
		if !active {
			continue
		}
		chip := filterChip{Title: store.ColumnTitles[col.Key]}
		switch v := cond.(type) {
		case store.AgeRange:
			chip.Display = fmt.Sprintf("%d to %d", v.Min, v.Max)
		default:
			chip.Display = fmt.Sprintf("%v", v)
		}
		if next, err := s.table.SetFilter(q, col.Key, nil); err == nil {
			chip.ClearHref = "?" + next.Encode()
		}
		data.Chips = append(data.Chips, chip)
	}

	if v, ok := st.Filters["name"].(string); ok {
		data.NameFilter = v
	}
	if v, ok := st.Filters["city"].(string); ok {
		data.CityFilter = v
	}
	if rng, ok := st.Filters["age"].(store.AgeRange); ok {
		data.AgeMin = fmt.Sprintf("%d", rng.Min)
		data.AgeMax = fmt.Sprintf("%d", rng.Max)
	}

	for _, p := range page.People {
		row := make([]string, len(st.Columns))
		for i, key := range st.Columns {
			row[i] = p.Field(key)
		}
		data.Rows = append(data.Rows, row)
	}

	if page.Page > 1 {
		data.PrevHref = "?" + s.table.SetPage(q, page.Page-1).Encode()
	}
	if page.Page < page.PageCount {
		data.NextHref = "?" + s.table.SetPage(q, page.Page+1).Encode()
	}

	return data
}
