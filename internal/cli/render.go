package cli

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablekit/internal/store"
	"github.com/leapstack-labs/tablekit/pkg/tablestate"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one view of the table to stdout",
		Long: `Render the table view described by a query string, exactly as the web
UI would decode it. Malformed values degrade to defaults instead of
failing, the same guarantee shared links get.`,
		Example: `  # Default view
  tablekit render --database :memory:

  # Sorted, filtered, page 2
  tablekit render --database :memory: --query 'sortBy=age&sortOrder=desc&filter_city="Lisbon"&page=2'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd)

			vals, err := url.ParseQuery(query)
			if err != nil {
				return fmt.Errorf("invalid query string: %w", err)
			}

			s, err := openStore(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			tbl := store.NewTable(cfg.Prefix)
			st := tbl.State(tablestate.FromValues(vals))

			page, err := s.List(cmd.Context(), st, cfg.PageSize)
			if err != nil {
				return err
			}

			renderView(cmd.OutOrStdout(), st, page)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "query string encoding the view")
	return cmd
}

func renderView(w io.Writer, st tablestate.State, page store.Page) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(st.Columns))
	for i, key := range st.Columns {
		title := store.ColumnTitles[key]
		if key == st.SortBy {
			switch st.SortOrder {
			case tablestate.SortAsc:
				title += " (asc)"
			case tablestate.SortDesc:
				title += " (desc)"
			}
		}
		header[i] = title
	}
	t.AppendHeader(header)

	for _, p := range page.People {
		row := make(table.Row, len(st.Columns))
		for i, key := range st.Columns {
			row[i] = p.Field(key)
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "page %d of %d (%d rows)\n", page.Page, page.PageCount, page.Total)

	var facets []string
	if st.Keyword != "" {
		facets = append(facets, fmt.Sprintf("search %q", st.Keyword))
	}
	for key, cond := range st.Filters {
		facets = append(facets, fmt.Sprintf("%s=%v", key, cond))
	}
	if len(facets) > 0 {
		_, _ = fmt.Fprintf(w, "active: %s\n", strings.Join(facets, ", "))
	}
}
