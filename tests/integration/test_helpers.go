//go:build integration
// +build integration

package integration

import (
	"context"
	"database/sql"
	"testing"

	"github.com/tordrt/tablevet/schema"
	"github.com/tordrt/tablevet/sqlframe"
)

// seed executes setup statements in order, failing the test on the first
// error
func seed(t *testing.T, ctx context.Context, db *sql.DB, stmts ...string) {
	t.Helper()

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("Failed to execute %q: %v", stmt, err)
		}
	}
}

// queryFrame materializes a query result, failing the test on error
func queryFrame(t *testing.T, ctx context.Context, db *sql.DB, query string) *sqlframe.Frame {
	t.Helper()

	frame, err := sqlframe.Query(ctx, db, query)
	if err != nil {
		t.Fatalf("Failed to execute query: %v", err)
	}
	return frame
}

// verifyPasses checks that a frame satisfies a schema
func verifyPasses(t *testing.T, f *sqlframe.Frame, s *schema.Schema) {
	t.Helper()

	if err := sqlframe.Validate(f, s); err != nil {
		t.Errorf("Expected validation to pass, got: %v", err)
	}
}

// verifyFailsWith checks that validation fails with the exact message
func verifyFailsWith(t *testing.T, f *sqlframe.Frame, s *schema.Schema, want string) {
	t.Helper()

	err := sqlframe.Validate(f, s)
	if err == nil {
		t.Errorf("Expected validation error %q but got none", want)
		return
	}
	if err.Error() != want {
		t.Errorf("Expected error %q, got %q", want, err.Error())
	}
}
