// Package sqlframe validates SQL query results against tablevet schemas.
//
// A Frame is an eager, column-oriented copy of a database/sql result set.
// Column physical types are the driver-reported database type names (for
// example INTEGER, VARCHAR, TIMESTAMPTZ), and the registry recognizes the
// names reported by the PostgreSQL (pgx), MySQL, and SQLite drivers. Type
// names are matched after normalization, so "varchar(64)" and "UNSIGNED
// INT" land in the string and integer families.
//
//	db, err := sqlframe.Open(ctx, "sqlite://data.db")
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	frame, err := sqlframe.Typed(userSchema).Query(ctx, db,
//		"SELECT name, age FROM users")
//
// A few caveats worth knowing. schema.Duration has no counterpart among
// these drivers and is unsupported here. MySQL booleans are TINYINT(1) on
// the wire, so they validate as schema.Integer, not schema.Boolean. And
// SQLite reports no declared type for computed expression columns, so
// validate concrete table columns there.
package sqlframe

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/tordrt/tablevet"
	"github.com/tordrt/tablevet/schema"
)

// ColType is the physical type of a result column as reported by the
// driver
type ColType struct {
	// DatabaseType is the driver-reported type name, e.g. "INTEGER" or
	// "varchar(64)"
	DatabaseType string
}

func (t ColType) String() string { return t.DatabaseType }

// Frame is a materialized result set: column names, driver-reported types,
// and values in column-major order. It implements tablevet.Table, so it can
// be validated directly.
type Frame struct {
	names []string
	types []ColType
	cols  [][]any
	index map[string]int
	rows  int
}

// FromRows drains a result set into a Frame. The rows are consumed but not
// closed. []byte values (MySQL reports most text columns that way) are
// stored as strings.
func FromRows(rows *sql.Rows) (*Frame, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read column names: %w", err)
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}

	f := &Frame{
		names: names,
		types: make([]ColType, len(colTypes)),
		cols:  make([][]any, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, ct := range colTypes {
		f.types[i] = ColType{DatabaseType: ct.DatabaseTypeName()}
	}
	for i, n := range names {
		// The first occurrence wins if a query yields duplicate names
		if _, exists := f.index[n]; !exists {
			f.index[n] = i
		}
	}

	values := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			f.cols[i] = append(f.cols[i], v)
		}
		f.rows++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return f, nil
}

// ColumnNames returns the result's column names in query order
func (f *Frame) ColumnNames() []string { return f.names }

// HasColumn reports whether the result has the named column
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// ColumnType returns the driver-reported type of the named column
func (f *Frame) ColumnType(name string) tablevet.PhysicalType {
	i, ok := f.index[name]
	if !ok {
		return ColType{}
	}
	return f.types[i]
}

// Len returns the number of materialized rows
func (f *Frame) Len() int { return f.rows }

// Column returns the values of the named column, or nil if it does not
// exist. The returned slice is the frame's own storage and must not be
// modified.
func (f *Frame) Column(name string) []any {
	i, ok := f.index[name]
	if !ok {
		return nil
	}
	return f.cols[i]
}

// backend maps logical types onto normalized driver type names and
// registers the constraint checks that read frame columns. schema.Duration
// is deliberately absent: none of the supported drivers report a duration
// type.
var backend = tablevet.Backend{
	Types: tablevet.Registry{
		schema.Integer: typeIn(
			"INTEGER", "INT", "BIGINT", "SMALLINT", "TINYINT", "MEDIUMINT",
			"INT2", "INT4", "INT8",
		),
		schema.Float: typeIn(
			"REAL", "FLOAT", "DOUBLE", "DOUBLE PRECISION", "NUMERIC",
			"DECIMAL", "FLOAT4", "FLOAT8",
		),
		schema.String: typeIn(
			"TEXT", "VARCHAR", "CHAR", "CHARACTER", "CHARACTER VARYING",
			"NVARCHAR", "NCHAR", "TINYTEXT", "MEDIUMTEXT", "LONGTEXT",
			"CLOB", "BPCHAR",
		),
		schema.Boolean:  typeIn("BOOLEAN", "BOOL", "BIT"),
		schema.DateTime: typeIn("TIMESTAMP", "TIMESTAMPTZ", "DATETIME"),
		schema.Date:     typeIn("DATE"),
	},
	Constraints: tablevet.ConstraintTable{
		schema.KindRange:   checkRange,
		schema.KindNonNull: checkNonNull,
	},
}

func typeIn(names ...string) tablevet.TypePredicate {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(pt tablevet.PhysicalType) bool {
		ct, ok := pt.(ColType)
		return ok && set[normalizeType(ct.DatabaseType)]
	}
}

// normalizeType uppercases a driver-reported type name and strips length
// arguments and the unsigned marker, e.g. "varchar(64)" becomes "VARCHAR"
// and "UNSIGNED INT" becomes "INT"
func normalizeType(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	if i := strings.IndexByte(n, '('); i >= 0 {
		n = strings.TrimSpace(n[:i])
	}
	return strings.TrimPrefix(n, "UNSIGNED ")
}

// Validate checks a frame against a schema, stopping at the first failure
func Validate(f *Frame, s *schema.Schema) error {
	return tablevet.Validate(f, s, backend)
}

// ValidateAll checks a frame against a schema and collects every failure
// instead of stopping at the first
func ValidateAll(f *Frame, s *schema.Schema) error {
	return tablevet.ValidateAll(f, s, backend)
}

// asFrame recovers the concrete frame inside a constraint check
func asFrame(t tablevet.Table) (*Frame, error) {
	f, ok := t.(*Frame)
	if !ok {
		return nil, fmt.Errorf("constraint check requires a sqlframe.Frame, got %T", t)
	}
	return f, nil
}
