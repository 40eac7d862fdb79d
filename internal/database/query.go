package database

import (
	"fmt"
	"regexp"
	"strings"
)

// Direction is the sort direction of an ORDER BY clause.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type orderClause struct {
	field string
	dir   Direction
}

// SelectQuery builds a SurrealQL SELECT statement from trusted identifiers.
// Values never go through the builder; pass them as query params instead.
//
// Example:
//
//	query, err := Select("email", "display_name").From("profiles").OrderBy("id", Ascending).Build()
type SelectQuery struct {
	columns []string
	table   string
	order   []orderClause
	limit   int
}

// Select starts a query projecting the given columns. No columns means "*".
func Select(columns ...string) *SelectQuery {
	return &SelectQuery{columns: columns}
}

// From sets the table to read from.
func (q *SelectQuery) From(table string) *SelectQuery {
	q.table = table
	return q
}

// OrderBy appends an ordering term.
func (q *SelectQuery) OrderBy(field string, dir Direction) *SelectQuery {
	q.order = append(q.order, orderClause{field: field, dir: dir})
	return q
}

// Limit caps the number of returned rows. Zero means no limit.
func (q *SelectQuery) Limit(n int) *SelectQuery {
	q.limit = n
	return q
}

// Build renders the statement. SurrealDB refuses to order by a field that is
// not part of the projection, so missing order fields are appended to it.
func (q *SelectQuery) Build() (string, error) {
	if !identPattern.MatchString(q.table) {
		return "", NewDBError(ErrInvalidInput, fmt.Sprintf("invalid table name %q", q.table))
	}

	columns := q.columns
	if len(columns) == 0 {
		columns = []string{"*"}
	}
	wildcard := false
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if col == "*" {
			wildcard = true
		} else if !identPattern.MatchString(col) {
			return "", NewDBError(ErrInvalidInput, fmt.Sprintf("invalid column name %q", col))
		}
		seen[col] = true
	}

	projection := append([]string(nil), columns...)
	orderTerms := make([]string, 0, len(q.order))
	for _, o := range q.order {
		if !identPattern.MatchString(o.field) {
			return "", NewDBError(ErrInvalidInput, fmt.Sprintf("invalid order field %q", o.field))
		}
		if o.dir != Ascending && o.dir != Descending {
			return "", NewDBError(ErrInvalidInput, fmt.Sprintf("invalid order direction %q", o.dir))
		}
		if !wildcard && !seen[o.field] {
			projection = append(projection, o.field)
			seen[o.field] = true
		}
		orderTerms = append(orderTerms, o.field+" "+string(o.dir))
	}
	if q.limit < 0 {
		return "", NewDBError(ErrInvalidInput, "limit cannot be negative")
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(projection, ", "))
	b.WriteString(" FROM ")
	b.WriteString(q.table)
	if len(orderTerms) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(orderTerms, ", "))
	}
	if q.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.limit)
	}
	return b.String(), nil
}

// hasLimitClause checks if the query already has a LIMIT clause
func hasLimitClause(query string) bool {
	// Simple check for LIMIT keyword (case insensitive)
	query = " " + strings.ToUpper(query) + " "
	return strings.Contains(query, " LIMIT ")
}
