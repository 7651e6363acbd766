// Package store holds the demo "people" dataset behind the table UI and
// the table definition shared by every frontend (web, CLI, TUI). The codec
// in pkg/tablestate only describes what the user asked for; translating
// that description into SQL happens here, on the rendering side of the
// boundary.
package store

import (
	"fmt"

	"github.com/leapstack-labs/tablekit/pkg/tablestate"
)

// AgeRange is the typed filter condition for the age column.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CheckAgeRange rejects ranges that could never match a row.
func CheckAgeRange(r AgeRange) error {
	if r.Min < 0 {
		return fmt.Errorf("min %d is negative", r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("max %d is below min %d", r.Max, r.Min)
	}
	return nil
}

// Columns returns the column registry for the people table.
func Columns() *tablestate.Registry {
	return tablestate.MustRegistry(
		tablestate.Column{Key: "id", Sortable: true, Visible: true},
		tablestate.Column{Key: "name", Sortable: true, Visible: true, Filter: tablestate.JSONFilter[string]()},
		tablestate.Column{Key: "age", Sortable: true, Visible: true, Filter: tablestate.SchemaFilter(CheckAgeRange)},
		tablestate.Column{Key: "city", Sortable: true, Visible: true, Filter: tablestate.JSONFilter[string]()},
		tablestate.Column{Key: "email"},
	)
}

// NewTable builds the people table over Columns. An empty prefix uses the
// canonical unprefixed keys.
func NewTable(prefix string) *tablestate.Table {
	if prefix == "" {
		return tablestate.New(Columns())
	}
	return tablestate.New(Columns(), tablestate.WithPrefix(prefix))
}

// ColumnTitles maps column keys to display titles.
var ColumnTitles = map[string]string{
	"id":    "ID",
	"name":  "Name",
	"age":   "Age",
	"city":  "City",
	"email": "Email",
}
