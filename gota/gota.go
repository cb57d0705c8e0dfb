// Package gota validates go-gota dataframes against tablevet schemas.
//
// gota has four series types, so the backend supports the four logical
// types integer, float, string, and boolean. Schemas declaring datetime,
// date, or duration columns report those columns as unsupported here; use
// the arrow backend for temporal data.
//
//	df := dataframe.ReadCSV(file)
//	err := gota.Validate(df, userSchema)
package gota

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/tordrt/tablevet"
	"github.com/tordrt/tablevet/schema"
)

// DType is the physical type of a gota column, mirroring series.Type
type DType string

func (t DType) String() string { return string(t) }

// Table adapts a dataframe.DataFrame to the tablevet.Table interface
type Table struct {
	df dataframe.DataFrame
}

// From wraps a dataframe for validation
func From(df dataframe.DataFrame) Table {
	return Table{df: df}
}

// Frame returns the wrapped dataframe
func (t Table) Frame() dataframe.DataFrame { return t.df }

// ColumnNames returns the dataframe's column names in order
func (t Table) ColumnNames() []string { return t.df.Names() }

// HasColumn reports whether the dataframe has the named column
func (t Table) HasColumn(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// ColumnType returns the series type of the named column
func (t Table) ColumnType(name string) tablevet.PhysicalType {
	types := t.df.Types()
	for i, n := range t.df.Names() {
		if n == name {
			return DType(types[i])
		}
	}
	return DType("")
}

// backend maps logical types onto gota's series types and registers the
// constraint checks that read gota series
var backend = tablevet.Backend{
	Types: tablevet.Registry{
		schema.Integer: isType(series.Int),
		schema.Float:   isType(series.Float),
		schema.String:  isType(series.String),
		schema.Boolean: isType(series.Bool),
	},
	Constraints: tablevet.ConstraintTable{
		schema.KindRange:   checkRange,
		schema.KindNonNull: checkNonNull,
	},
}

func isType(want series.Type) tablevet.TypePredicate {
	return func(pt tablevet.PhysicalType) bool {
		dt, ok := pt.(DType)
		return ok && series.Type(dt) == want
	}
}

// Validate checks a dataframe against a schema, stopping at the first
// failure. A dataframe carrying a load error reports that error instead.
func Validate(df dataframe.DataFrame, s *schema.Schema) error {
	if err := df.Error(); err != nil {
		return fmt.Errorf("invalid dataframe: %w", err)
	}
	return tablevet.Validate(From(df), s, backend)
}

// ValidateAll checks a dataframe against a schema and collects every
// failure instead of stopping at the first
func ValidateAll(df dataframe.DataFrame, s *schema.Schema) error {
	if err := df.Error(); err != nil {
		return fmt.Errorf("invalid dataframe: %w", err)
	}
	return tablevet.ValidateAll(From(df), s, backend)
}

// asTable recovers the concrete adapter inside a constraint check
func asTable(t tablevet.Table) (Table, error) {
	gt, ok := t.(Table)
	if !ok {
		return Table{}, fmt.Errorf("constraint check requires a gota.Table, got %T", t)
	}
	return gt, nil
}
