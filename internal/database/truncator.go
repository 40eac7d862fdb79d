package database

import (
	"context"
	"fmt"
)

// Truncator deletes every row of a table. It backs the seed command's reset.
type Truncator struct {
	client Client[map[string]any]
}

// NewTruncator creates a new Truncator.
func NewTruncator(client Client[map[string]any]) *Truncator {
	return &Truncator{client: client}
}

// Truncate removes all records from table.
func (t *Truncator) Truncate(ctx context.Context, table string) error {
	if !identPattern.MatchString(table) {
		return NewDBError(ErrInvalidInput, "table must be a plain identifier")
	}
	if err := t.client.Execute(ctx, "DELETE type::table($table)", map[string]any{"table": table}); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", table, err)
	}
	return nil
}
