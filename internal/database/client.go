package database

import (
	"context"
	"time"

	"github.com/nfrund/fieldnotes/internal/config"
)

// Client defines the main database client interface with type-safe methods.
// It provides a generic interface for database operations on a specific type T.
type Client[T any] interface {
	// Create inserts a new record into the specified table with the given data.
	// Returns the created record with all fields populated, including any server-generated fields.
	Create(ctx context.Context, table string, data any) (*T, error)

	// Select retrieves a record by table and key.
	// Returns ErrNotFound if no record exists with the given key.
	Select(ctx context.Context, table, key string) (*T, error)

	// Update merges data into the record with the given table and key.
	// Returns ErrNotFound if no record exists with the given key.
	Update(ctx context.Context, table, key string, data any) (*T, error)

	// Query executes a raw query and returns multiple results.
	// The query can include parameters using the $param syntax.
	Query(ctx context.Context, query string, params map[string]any) ([]T, error)

	// QueryOne executes a raw query and returns a single result.
	// Returns (nil, nil) if no results are found.
	QueryOne(ctx context.Context, query string, params map[string]any) (*T, error)

	// Execute runs a query that doesn't return any rows (e.g. DELETE).
	Execute(ctx context.Context, query string, params map[string]any) error
}

// ClientOption defines a function that configures a Client.
type ClientOption[T any] func(*client[T])

// WithExecutor configures the client to use a custom QueryExecutor.
// This is useful for testing or for adding middleware to the executor.
func WithExecutor[T any](executor QueryExecutor[T]) ClientOption[T] {
	return func(c *client[T]) {
		c.executor = executor
	}
}

type client[T any] struct {
	executor       QueryExecutor[T]
	queryTimeout   time.Duration
	executeTimeout time.Duration
}

// NewClient creates a new type-safe database client.
func NewClient[T any](conn DBConnection, cfg config.Provider, opts ...ClientOption[T]) (Client[T], error) {
	if cfg == nil {
		return nil, NewDBError(ErrInvalidInput, "config provider cannot be nil")
	}

	queryTimeout := cfg.GetDBQueryTimeout()
	if queryTimeout <= 0 {
		return nil, NewDBError(ErrInvalidInput, "DB_QUERY_TIMEOUT must be a positive duration")
	}
	executeTimeout := cfg.GetDBExecuteTimeout()
	if executeTimeout <= 0 {
		return nil, NewDBError(ErrInvalidInput, "DB_EXECUTE_TIMEOUT must be a positive duration")
	}

	c := &client[T]{
		queryTimeout:   queryTimeout,
		executeTimeout: executeTimeout,
	}
	if conn != nil {
		c.executor = NewSurrealExecutor[T](conn)
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.executor == nil {
		return nil, NewDBError(ErrInvalidInput, "a connection or executor is required")
	}
	return c, nil
}

// Query implements the Client interface
func (c *client[T]) Query(ctx context.Context, query string, params map[string]any) ([]T, error) {
	ctx, cancel := timeoutFromContext(ctx, c.queryTimeout, ContextKeyQueryTimeout)
	defer cancel()
	return c.executor.Query(ctx, query, params)
}

// QueryOne implements the Client interface
func (c *client[T]) QueryOne(ctx context.Context, query string, params map[string]any) (*T, error) {
	ctx, cancel := timeoutFromContext(ctx, c.queryTimeout, ContextKeyQueryTimeout)
	defer cancel()
	return c.executor.QueryOne(ctx, query, params)
}

// Execute implements the Client interface
func (c *client[T]) Execute(ctx context.Context, query string, params map[string]any) error {
	ctx, cancel := timeoutFromContext(ctx, c.executeTimeout, ContextKeyExecuteTimeout)
	defer cancel()
	return c.executor.Execute(ctx, query, params)
}

// Create implements the Client interface
func (c *client[T]) Create(ctx context.Context, table string, data any) (*T, error) {
	if !identPattern.MatchString(table) {
		return nil, NewDBError(ErrInvalidInput, "table must be a plain identifier")
	}
	if data == nil {
		return nil, NewDBError(ErrInvalidInput, "data cannot be nil")
	}

	ctx, cancel := timeoutFromContext(ctx, c.executeTimeout, ContextKeyExecuteTimeout)
	defer cancel()

	query := "CREATE type::table($table) CONTENT $data"
	result, err := c.executor.QueryOne(ctx, query, map[string]any{"table": table, "data": data})
	if err != nil {
		return nil, WrapError(err, "create operation failed")
	}
	return result, nil
}

// Select implements the Client interface
func (c *client[T]) Select(ctx context.Context, table, key string) (*T, error) {
	if !identPattern.MatchString(table) || key == "" {
		return nil, NewDBError(ErrInvalidInput, "table and key are required")
	}

	ctx, cancel := timeoutFromContext(ctx, c.queryTimeout, ContextKeyQueryTimeout)
	defer cancel()

	query := "SELECT * FROM type::thing($table, $key)"
	result, err := c.executor.QueryOne(ctx, query, map[string]any{"table": table, "key": key})
	if err != nil {
		return nil, WrapError(err, "select operation failed")
	}
	if result == nil {
		return nil, NewDBError(ErrNotFound, "record not found")
	}
	return result, nil
}

// Update implements the Client interface
func (c *client[T]) Update(ctx context.Context, table, key string, data any) (*T, error) {
	if !identPattern.MatchString(table) || key == "" {
		return nil, NewDBError(ErrInvalidInput, "table and key are required")
	}
	if data == nil {
		return nil, NewDBError(ErrInvalidInput, "data cannot be nil")
	}

	ctx, cancel := timeoutFromContext(ctx, c.executeTimeout, ContextKeyExecuteTimeout)
	defer cancel()

	// UPDATE only touches existing records, so a missing key yields no rows.
	query := "UPDATE type::thing($table, $key) MERGE $data RETURN AFTER"
	result, err := c.executor.QueryOne(ctx, query, map[string]any{"table": table, "key": key, "data": data})
	if err != nil {
		return nil, WrapError(err, "update operation failed")
	}
	if result == nil {
		return nil, NewDBError(ErrNotFound, "record not found")
	}
	return result, nil
}
