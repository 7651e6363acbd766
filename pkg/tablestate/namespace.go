package tablestate

// DefaultPrefix is the conventional namespace prefix for a page's primary
// table. It is a plain constant, not a process-wide default: callers that
// want it pass it explicitly via WithPrefix.
const DefaultPrefix = "table"

// Namespace derives the flat map keys used for each semantic field of one
// table instance. The zero value produces the canonical unprefixed keys;
// a non-empty Prefix yields "<prefix>_<suffix>" keys so that two
// independently configured tables can share one map without collision.
// Namespace is pure and deterministic.
type Namespace struct {
	Prefix string
}

func (n Namespace) key(suffix string) string {
	if n.Prefix == "" {
		return suffix
	}
	return n.Prefix + "_" + suffix
}

// Keyword returns the key holding the keyword search term.
func (n Namespace) Keyword() string { return n.key("keyword") }

// SortBy returns the key holding the sort column.
func (n Namespace) SortBy() string { return n.key("sortBy") }

// SortOrder returns the key holding the sort direction.
func (n Namespace) SortOrder() string { return n.key("sortOrder") }

// Columns returns the key holding the comma-joined visible column list.
func (n Namespace) Columns() string { return n.key("columns") }

// Page returns the key holding the 1-based page number.
func (n Namespace) Page() string { return n.key("page") }

// FilterKey returns the key holding the encoded filter condition for one
// column. Each filterable column gets its own key.
func (n Namespace) FilterKey(col string) string { return n.key("filter_" + col) }
