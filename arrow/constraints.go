package arrow

import (
	"fmt"
	"math"

	"github.com/apache/arrow/go/v17/arrow/array"

	"github.com/tordrt/tablevet"
	"github.com/tordrt/tablevet/schema"
)

// checkRange verifies that every valid value of a numeric column lies
// within the constraint's closed interval. Null slots are skipped, and so
// are NaN values in float columns; declare NotNull to reject nulls.
func checkRange(t tablevet.Table, column string, c schema.Constraint) error {
	r, ok := c.(schema.Range)
	if !ok {
		return &tablevet.UnknownConstraintError{Column: column, Kind: c.Kind()}
	}
	at, err := asTable(t)
	if err != nil {
		return err
	}

	col := at.column(column)
	violation := &tablevet.ConstraintError{
		Column:     column,
		Constraint: c,
		Detail:     fmt.Sprintf("values must be in %s", r),
	}

	switch a := col.(type) {
	case *array.Int8:
		for i := 0; i < a.Len(); i++ {
			if !a.IsNull(i) && !r.Contains(float64(a.Value(i))) {
				return violation
			}
		}
	case *array.Int16:
		for i := 0; i < a.Len(); i++ {
			if !a.IsNull(i) && !r.Contains(float64(a.Value(i))) {
				return violation
			}
		}
	case *array.Int32:
		for i := 0; i < a.Len(); i++ {
			if !a.IsNull(i) && !r.Contains(float64(a.Value(i))) {
				return violation
			}
		}
	case *array.Int64:
		for i := 0; i < a.Len(); i++ {
			if !a.IsNull(i) && !r.Contains(float64(a.Value(i))) {
				return violation
			}
		}
	case *array.Uint8:
		for i := 0; i < a.Len(); i++ {
			if !a.IsNull(i) && !r.Contains(float64(a.Value(i))) {
				return violation
			}
		}
	case *array.Uint16:
		for i := 0; i < a.Len(); i++ {
			if !a.IsNull(i) && !r.Contains(float64(a.Value(i))) {
				return violation
			}
		}
	case *array.Uint32:
		for i := 0; i < a.Len(); i++ {
			if !a.IsNull(i) && !r.Contains(float64(a.Value(i))) {
				return violation
			}
		}
	case *array.Uint64:
		for i := 0; i < a.Len(); i++ {
			if !a.IsNull(i) && !r.Contains(float64(a.Value(i))) {
				return violation
			}
		}
	case *array.Float16:
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				continue
			}
			v := float64(a.Value(i).Float32())
			if math.IsNaN(v) {
				continue
			}
			if !r.Contains(v) {
				return violation
			}
		}
	case *array.Float32:
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				continue
			}
			v := float64(a.Value(i))
			if math.IsNaN(v) {
				continue
			}
			if !r.Contains(v) {
				return violation
			}
		}
	case *array.Float64:
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				continue
			}
			v := a.Value(i)
			if math.IsNaN(v) {
				continue
			}
			if !r.Contains(v) {
				return violation
			}
		}
	default:
		return &tablevet.ConstraintError{
			Column:     column,
			Constraint: c,
			Detail:     fmt.Sprintf("range constraint requires a numeric column, got %s", col.DataType()),
		}
	}
	return nil
}

// checkNonNull rejects columns with null slots. NaN in a float column is a
// value, not a null, and passes this check.
func checkNonNull(t tablevet.Table, column string, c schema.Constraint) error {
	at, err := asTable(t)
	if err != nil {
		return err
	}
	if at.column(column).NullN() > 0 {
		return &tablevet.ConstraintError{
			Column:     column,
			Constraint: c,
			Detail:     "null values are not allowed",
		}
	}
	return nil
}
