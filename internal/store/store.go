package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/leapstack-labs/tablekit/pkg/tablestate"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// Store wraps the SQLite database holding the demo dataset.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at path. Use ":memory:" for an in-memory
// database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying connection.
func (s *Store) DB() *sql.DB { return s.db }

// Person is one row of the demo dataset.
type Person struct {
	ID    string
	Name  string
	Age   int
	City  string
	Email string
}

// Field returns the person's value for a column key, formatted for display.
func (p Person) Field(key string) string {
	switch key {
	case "id":
		return p.ID
	case "name":
		return p.Name
	case "age":
		return fmt.Sprintf("%d", p.Age)
	case "city":
		return p.City
	case "email":
		return p.Email
	default:
		return ""
	}
}

// Page is one page of query results plus the totals needed for pagination
// controls.
type Page struct {
	People    []Person
	Total     int
	Page      int
	PageCount int
}

// columnSQL allowlists the SQL column for each registry key. Decoded state
// only ever names registered columns, but SQL fragments are still built
// from this map, never from raw input.
var columnSQL = map[string]string{
	"id":    "id",
	"name":  "name",
	"age":   "age",
	"city":  "city",
	"email": "email",
}

// List returns the page of people described by st: keyword search, active
// filters, sort, and 1-based pagination with the given page size.
func (s *Store) List(ctx context.Context, st tablestate.State, pageSize int) (Page, error) {
	if pageSize < 1 {
		pageSize = 10
	}

	where, args := buildWhere(st)

	var total int
	countQuery := "SELECT COUNT(*) FROM people" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("count people: %w", err)
	}

	query := "SELECT id, name, age, city, email FROM people" + where
	if col, ok := columnSQL[st.SortBy]; ok {
		dir := "ASC"
		if st.SortOrder == tablestate.SortDesc {
			dir = "DESC"
		}
		query += " ORDER BY " + col + " " + dir
	} else {
		query += " ORDER BY name ASC"
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, pageSize, (st.Page-1)*pageSize)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Page{}, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.City, &p.Email); err != nil {
			return Page{}, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	pageCount := (total + pageSize - 1) / pageSize
	if pageCount < 1 {
		pageCount = 1
	}

	return Page{
		People:    people,
		Total:     total,
		Page:      st.Page,
		PageCount: pageCount,
	}, nil
}

func buildWhere(st tablestate.State) (string, []any) {
	var clauses []string
	var args []any

	if st.Keyword != "" {
		clauses = append(clauses, "(name LIKE ? OR city LIKE ? OR email LIKE ?)")
		like := "%" + st.Keyword + "%"
		args = append(args, like, like, like)
	}

	if v, ok := st.Filters["name"].(string); ok && v != "" {
		clauses = append(clauses, "name LIKE ?")
		args = append(args, "%"+v+"%")
	}
	if v, ok := st.Filters["city"].(string); ok && v != "" {
		clauses = append(clauses, "city = ?")
		args = append(args, v)
	}
	if r, ok := st.Filters["age"].(AgeRange); ok {
		clauses = append(clauses, "age BETWEEN ? AND ?")
		args = append(args, r.Min, r.Max)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
