package sqlframe

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tordrt/tablevet/schema"
)

// TypedQuery runs queries whose materialized results are guaranteed to
// match a schema
type TypedQuery struct {
	schema *schema.Schema
}

// Typed binds a schema to query execution. A nil schema accepts any
// result.
func Typed(s *schema.Schema) TypedQuery {
	return TypedQuery{schema: s}
}

// Schema returns the bound schema
func (tq TypedQuery) Schema() *schema.Schema { return tq.schema }

// FromRows materializes a result set and validates it against the bound
// schema. The rows are consumed but not closed.
func (tq TypedQuery) FromRows(rows *sql.Rows) (*Frame, error) {
	f, err := FromRows(rows)
	if err != nil {
		return nil, err
	}
	if tq.schema != nil {
		if err := Validate(f, tq.schema); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Query executes a query against db and validates the materialized result
func (tq TypedQuery) Query(ctx context.Context, db *sql.DB, query string, args ...any) (*Frame, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()
	return tq.FromRows(rows)
}

// Query executes a query and materializes the result without validating it
func Query(ctx context.Context, db *sql.DB, query string, args ...any) (*Frame, error) {
	return TypedQuery{}.Query(ctx, db, query, args...)
}
