// Package tablevet validates tabular data against declarative column schemas.
//
// A schema declares, per column, a logical type (integer, float, string,
// boolean, datetime, date, duration) and optional value constraints such as
// numeric ranges. The validation engine checks a concrete table against that
// declaration one column at a time: first that the column exists, then that
// its physical type satisfies the declared logical type, then each constraint
// in declaration order. Columns present in the table but absent from the
// schema are ignored.
//
// # Quick Start
//
// Declare a schema with the schema package and validate data through one of
// the backend packages (gota, arrow, sqlframe):
//
//	users := schema.MustNew(
//		schema.Col("name", schema.String),
//		schema.Col("age", schema.Integer, schema.InRange(0, 150)),
//	)
//
//	df := dataframe.ReadCSV(file)
//	if err := gota.Validate(df, users); err != nil {
//		log.Fatal(err)
//	}
//
// Validate stops at the first failure. ValidateAll visits every declared
// column and returns all failures at once as a ValidationErrors.
//
// # Backends
//
// Three backends ship with this module:
//   - gota: dataframe.DataFrame from github.com/go-gota/gota
//   - arrow: arrow.Record from github.com/apache/arrow/go/v17
//   - sqlframe: SQL result sets from PostgreSQL, MySQL, or SQLite
//
// Each backend declares its own mapping from logical types to the physical
// types it can encounter. For example, schema.Integer is satisfied by any of
// the eight Arrow integer widths in the arrow backend, but only by series.Int
// in the gota backend. A logical type a backend has no mapping for (such as
// schema.Duration on SQL result sets) is reported as unsupported.
//
// Validation never modifies or copies the table under inspection, and the
// schema-bound constructors (gota.Typed, arrow.Typed, sqlframe.Typed) return
// the input value unchanged on success. A validated table is the same table
// that came in, with its schema proven rather than transformed.
//
// # Custom Backends
//
// The engine itself is representation-agnostic. To validate a table type this
// module does not know about, adapt it to the Table interface, fill in a
// Backend with a type registry and a constraint table, and call Validate or
// ValidateAll directly.
package tablevet

import "github.com/tordrt/tablevet/schema"

// PhysicalType identifies a column's concrete, backend-native type. Its
// String form is what type mismatch errors show to the user.
type PhysicalType interface {
	String() string
}

// Table is the minimal view of tabular data the validation engine needs.
// Backend packages adapt their native representations to it; constraint
// checks assert back to the concrete adapter for value access.
type Table interface {
	// ColumnNames returns the column names in table order
	ColumnNames() []string

	// HasColumn reports whether a column with the given name exists
	HasColumn(name string) bool

	// ColumnType returns the physical type of a column. It is only called
	// for columns HasColumn reported present.
	ColumnType(name string) PhysicalType
}

// TypePredicate reports whether a physical type satisfies a logical type
type TypePredicate func(PhysicalType) bool

// Registry maps logical types to the predicate deciding which physical types
// satisfy them. A logical type absent from the registry is unsupported by
// the backend.
type Registry map[schema.Type]TypePredicate

// CheckFunc checks a single constraint against a single column. By the time
// a CheckFunc runs, the column is known to exist and to satisfy its declared
// logical type.
type CheckFunc func(t Table, column string, c schema.Constraint) error

// ConstraintTable maps constraint kinds to their check routines. A kind
// absent from the table cannot be dispatched and is reported as unknown.
type ConstraintTable map[schema.Kind]CheckFunc

// Backend bundles what the engine needs to validate one table
// representation. Backends are built once at package init and never mutated
// afterwards, so they are safe for concurrent use.
type Backend struct {
	Types       Registry
	Constraints ConstraintTable
}
