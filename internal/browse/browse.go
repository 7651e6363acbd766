// Package browse is a terminal frontend for the demo table. It drives the
// same state codec as the web UI, with an in-memory navigator standing in
// for the URL bar: every key binding dispatches an action, and the view is
// re-derived from the committed map.
package browse

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/tablekit/internal/store"
	"github.com/leapstack-labs/tablekit/pkg/tablestate"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

const helpLine = "←/→ column · s sort · v hide · V show all · / search · f filter · c clear filter · n/p page · q quit"

// inputMode says what the text input is currently collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputFilter
)

type pageMsg struct {
	state tablestate.State
	rows  store.Page
	err   error
}

// Model is the bubbletea model for the browser.
type Model struct {
	ctx      context.Context
	store    *store.Store
	bound    *tablestate.Bound
	pageSize int

	view  table.Model
	input textinput.Model
	mode  inputMode

	state  tablestate.State
	page   store.Page
	cursor int // index into state.Columns
	errMsg string
}

// New builds the browser over s, driven by tbl through an in-memory
// navigator.
func New(ctx context.Context, s *store.Store, tbl *tablestate.Table, pageSize int) Model {
	input := textinput.New()
	input.CharLimit = 64

	view := table.New(table.WithFocused(true), table.WithHeight(12))
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	view.SetStyles(styles)

	return Model{
		ctx:      ctx,
		store:    s,
		bound:    tablestate.Bind(tbl, tablestate.NewMemoryNavigator(nil)),
		pageSize: pageSize,
		view:     view,
		input:    input,
	}
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, s *store.Store, tbl *tablestate.Table, pageSize int) error {
	_, err := tea.NewProgram(New(ctx, s, tbl, pageSize), tea.WithContext(ctx)).Run()
	return err
}

// Init loads the first page.
func (m Model) Init() tea.Cmd {
	return m.reload()
}

// reload re-derives the state from the committed map and fetches the
// matching rows.
func (m Model) reload() tea.Cmd {
	return func() tea.Msg {
		st := m.bound.State()
		rows, err := m.store.List(m.ctx, st, m.pageSize)
		return pageMsg{state: st, rows: rows, err: err}
	}
}

// Update handles key presses and refreshed pages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.state = msg.state
		m.page = msg.rows
		if m.cursor >= len(m.state.Columns) {
			m.cursor = len(m.state.Columns) - 1
		}
		m.syncTable()
		return m, nil

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "right", "l":
		if m.cursor < len(m.state.Columns)-1 {
			m.cursor++
		}
		return m, nil

	case "s":
		return m.dispatch(func() error {
			return m.bound.ToggleSort(m.selectedColumn())
		})

	case "v":
		return m.dispatch(func() error {
			return m.bound.SetColumnVisible(m.selectedColumn(), false)
		})

	case "V":
		return m.dispatch(func() error {
			for _, col := range m.bound.Table().Registry().Columns() {
				if err := m.bound.SetColumnVisible(col.Key, true); err != nil {
					return err
				}
			}
			return nil
		})

	case "n":
		if m.state.Page < m.page.PageCount {
			return m.dispatch(func() error {
				return m.bound.SetPage(m.state.Page + 1)
			})
		}
		return m, nil

	case "p":
		if m.state.Page > 1 {
			return m.dispatch(func() error {
				return m.bound.SetPage(m.state.Page - 1)
			})
		}
		return m, nil

	case "/":
		m.mode = inputSearch
		m.input.Placeholder = "search"
		m.input.SetValue(m.state.Keyword)
		m.input.Focus()
		return m, textinput.Blink

	case "f":
		col, ok := m.bound.Table().Registry().Lookup(m.selectedColumn())
		if !ok || col.Filter == nil {
			m.errMsg = fmt.Sprintf("column %q has no filter", m.selectedColumn())
			return m, nil
		}
		m.mode = inputFilter
		if col.Key == "age" {
			m.input.Placeholder = "age range, e.g. 20-29"
		} else {
			m.input.Placeholder = col.Key + " filter"
		}
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case "c":
		return m.dispatch(func() error {
			col, ok := m.bound.Table().Registry().Lookup(m.selectedColumn())
			if !ok || col.Filter == nil {
				return nil
			}
			return m.bound.SetFilter(col.Key, nil)
		})
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = inputNone
		m.input.Blur()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = inputNone
		m.input.Blur()

		if mode == inputSearch {
			return m.dispatch(func() error {
				return m.bound.SetKeyword(value)
			})
		}
		return m.dispatch(func() error {
			cond, err := m.filterCondition(m.selectedColumn(), value)
			if err != nil {
				return err
			}
			return m.bound.SetFilter(m.selectedColumn(), cond)
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// filterCondition parses the raw input into the selected column's typed
// condition. Empty input clears the filter.
func (m Model) filterCondition(col, raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	if col != "age" {
		return raw, nil
	}

	low, high, ok := strings.Cut(raw, "-")
	if !ok {
		return nil, fmt.Errorf("age filter wants min-max, got %q", raw)
	}
	rng := store.AgeRange{}
	var err error
	if rng.Min, err = strconv.Atoi(strings.TrimSpace(low)); err != nil {
		return nil, fmt.Errorf("bad min %q", low)
	}
	if rng.Max, err = strconv.Atoi(strings.TrimSpace(high)); err != nil {
		return nil, fmt.Errorf("bad max %q", high)
	}
	if err := store.CheckAgeRange(rng); err != nil {
		return nil, err
	}
	return rng, nil
}

// dispatch runs an action and reloads the view. Structural errors show in
// the status line instead of quitting.
func (m Model) dispatch(action func() error) (tea.Model, tea.Cmd) {
	if err := action(); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	return m, m.reload()
}

func (m Model) selectedColumn() string {
	if m.cursor < 0 || m.cursor >= len(m.state.Columns) {
		return ""
	}
	return m.state.Columns[m.cursor]
}

// syncTable rebuilds the bubbles table from the current state and page.
func (m *Model) syncTable() {
	cols := make([]table.Column, len(m.state.Columns))
	for i, key := range m.state.Columns {
		title := store.ColumnTitles[key]
		if key == m.state.SortBy {
			switch m.state.SortOrder {
			case tablestate.SortAsc:
				title += " ^"
			case tablestate.SortDesc:
				title += " v"
			}
		}
		if i == m.cursor {
			title = cursorStyle.Render(title)
		}
		width := 14
		if key == "id" || key == "email" {
			width = 26
		}
		cols[i] = table.Column{Title: title, Width: width}
	}

	rows := make([]table.Row, len(m.page.People))
	for i, p := range m.page.People {
		row := make(table.Row, len(m.state.Columns))
		for j, key := range m.state.Columns {
			row[j] = p.Field(key)
		}
		rows[i] = row
	}

	m.view.SetRows(nil)
	m.view.SetColumns(cols)
	m.view.SetRows(rows)
}

// View renders the table, the status line, and any active input.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tablekit browse"))
	b.WriteString("\n\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")

	status := fmt.Sprintf("page %d/%d · %d rows", m.state.Page, m.page.PageCount, m.page.Total)
	if m.state.Keyword != "" {
		status += fmt.Sprintf(" · search %q", m.state.Keyword)
	}
	if len(m.state.Filters) > 0 {
		status += fmt.Sprintf(" · %d filter(s)", len(m.state.Filters))
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	if m.mode != inputNone {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString(statusStyle.Render(helpLine))
	b.WriteString("\n")
	return b.String()
}
