package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// QueryExecutor handles the execution of database queries.
// This interface is used internally by the Client implementation and is the
// seam tests replace.
type QueryExecutor[T any] interface {
	// Query executes a query and returns the rows of its first statement.
	Query(ctx context.Context, query string, params map[string]any) ([]T, error)

	// QueryOne executes a query and returns a single result.
	// Returns (nil, nil) if no results are found.
	QueryOne(ctx context.Context, query string, params map[string]any) (*T, error)

	// Execute runs a query that doesn't return any rows.
	Execute(ctx context.Context, query string, params map[string]any) error
}

// surrealExecutor runs queries over a managed connection.
type surrealExecutor[T any] struct {
	conn DBConnection
}

// NewSurrealExecutor creates an executor bound to the managed connection.
func NewSurrealExecutor[T any](conn DBConnection) QueryExecutor[T] {
	return &surrealExecutor[T]{conn: conn}
}

func (e *surrealExecutor[T]) Query(ctx context.Context, query string, params map[string]any) ([]T, error) {
	var rows []T
	err := e.conn.WithConnection(ctx, func(db *surrealdb.DB) error {
		var qErr error
		rows, qErr = queryDB[T](ctx, db, query, params)
		return qErr
	})
	if err != nil {
		return nil, NewDBError(err, "query failed").WithQuery(query)
	}
	return rows, nil
}

func (e *surrealExecutor[T]) QueryOne(ctx context.Context, query string, params map[string]any) (*T, error) {
	// CREATE/UPDATE/DELETE statements don't support LIMIT.
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") && !hasLimitClause(query) {
		query += " LIMIT 1"
	}

	rows, err := e.Query(ctx, query, params)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &rows[0], nil
	default:
		return nil, NewDBError(ErrMultipleResults, "expected a single row").WithQuery(query)
	}
}

func (e *surrealExecutor[T]) Execute(ctx context.Context, query string, params map[string]any) error {
	err := e.conn.WithConnection(ctx, func(db *surrealdb.DB) error {
		_, qErr := surrealdb.Query[any](ctx, db, query, params)
		return qErr
	})
	if err != nil {
		return NewDBError(err, "execute failed").WithQuery(query)
	}
	return nil
}

// queryDB executes a raw SurrealQL query and returns the rows produced by
// its first statement.
func queryDB[T any](ctx context.Context, db *surrealdb.DB, query string, params map[string]any) ([]T, error) {
	queryResults, err := surrealdb.Query[[]T](ctx, db, query, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	if queryResults == nil || len(*queryResults) == 0 {
		return nil, nil
	}
	return (*queryResults)[0].Result, nil
}
