// Package arrow validates Apache Arrow records against tablevet schemas.
//
// All seven logical types are supported here. schema.Integer is satisfied
// by every Arrow integer width, signed or unsigned; schema.Float by
// float16, float32, and float64; schema.String by utf8 and large_utf8;
// and the temporal logical types by timestamp, date32/date64, and
// duration columns.
//
// Validation only reads the record. It does not retain or release it, so
// callers keep ownership as usual.
package arrow

import (
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"

	"github.com/tordrt/tablevet"
	"github.com/tordrt/tablevet/schema"
)

// Table adapts an arrow.Record to the tablevet.Table interface
type Table struct {
	rec arrow.Record
}

// From wraps a record for validation
func From(rec arrow.Record) Table {
	return Table{rec: rec}
}

// Record returns the wrapped record
func (t Table) Record() arrow.Record { return t.rec }

// ColumnNames returns the record's field names in schema order
func (t Table) ColumnNames() []string {
	sc := t.rec.Schema()
	names := make([]string, sc.NumFields())
	for i := range names {
		names[i] = sc.Field(i).Name
	}
	return names
}

// HasColumn reports whether the record has a field with the given name
func (t Table) HasColumn(name string) bool {
	return t.rec.Schema().HasField(name)
}

// ColumnType returns the Arrow data type of the named field. Arrow data
// types print themselves, so they serve directly as physical types.
func (t Table) ColumnType(name string) tablevet.PhysicalType {
	return t.rec.Schema().Field(t.fieldIndex(name)).Type
}

// fieldIndex returns the index of the first field with the given name.
// Records with duplicate field names are validated against the first
// occurrence.
func (t Table) fieldIndex(name string) int {
	idx := t.rec.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return -1
	}
	return idx[0]
}

func (t Table) column(name string) arrow.Array {
	return t.rec.Column(t.fieldIndex(name))
}

// backend maps logical types onto Arrow type IDs and registers the
// constraint checks that read Arrow arrays
var backend = tablevet.Backend{
	Types: tablevet.Registry{
		schema.Integer: hasID(
			arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
			arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		),
		schema.Float:    hasID(arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64),
		schema.String:   hasID(arrow.STRING, arrow.LARGE_STRING),
		schema.Boolean:  hasID(arrow.BOOL),
		schema.DateTime: hasID(arrow.TIMESTAMP),
		schema.Date:     hasID(arrow.DATE32, arrow.DATE64),
		schema.Duration: hasID(arrow.DURATION),
	},
	Constraints: tablevet.ConstraintTable{
		schema.KindRange:   checkRange,
		schema.KindNonNull: checkNonNull,
	},
}

func hasID(ids ...arrow.Type) tablevet.TypePredicate {
	set := make(map[arrow.Type]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(pt tablevet.PhysicalType) bool {
		dt, ok := pt.(arrow.DataType)
		return ok && set[dt.ID()]
	}
}

// Validate checks a record against a schema, stopping at the first failure
func Validate(rec arrow.Record, s *schema.Schema) error {
	return tablevet.Validate(From(rec), s, backend)
}

// ValidateAll checks a record against a schema and collects every failure
// instead of stopping at the first
func ValidateAll(rec arrow.Record, s *schema.Schema) error {
	return tablevet.ValidateAll(From(rec), s, backend)
}

// TypedRecord accepts records that are guaranteed to match a schema. New
// validates and hands the record back unchanged without touching its
// reference count.
type TypedRecord struct {
	schema *schema.Schema
}

// Typed binds a schema to record acceptance. A nil schema accepts any
// record.
func Typed(s *schema.Schema) TypedRecord {
	return TypedRecord{schema: s}
}

// Schema returns the bound schema
func (tr TypedRecord) Schema() *schema.Schema { return tr.schema }

// New validates a record against the bound schema and returns it unchanged
func (tr TypedRecord) New(rec arrow.Record) (arrow.Record, error) {
	if tr.schema != nil {
		if err := Validate(rec, tr.schema); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// asTable recovers the concrete adapter inside a constraint check
func asTable(t tablevet.Table) (Table, error) {
	at, ok := t.(Table)
	if !ok {
		return Table{}, fmt.Errorf("constraint check requires an arrow.Table, got %T", t)
	}
	return at, nil
}
