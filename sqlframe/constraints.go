package sqlframe

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tordrt/tablevet"
	"github.com/tordrt/tablevet/schema"
)

// checkRange verifies that every non-NULL value of a numeric column lies
// within the constraint's closed interval. NULL (and NaN from float
// columns) is never a range violation; declare NotNull to reject NULLs.
//
// DECIMAL and NUMERIC columns scan as text on some drivers, so string
// values in a numeric column are parsed before comparison.
func checkRange(t tablevet.Table, column string, c schema.Constraint) error {
	r, ok := c.(schema.Range)
	if !ok {
		return &tablevet.UnknownConstraintError{Column: column, Kind: c.Kind()}
	}
	f, err := asFrame(t)
	if err != nil {
		return err
	}

	ct := f.ColumnType(column)
	if !backend.Types[schema.Integer](ct) && !backend.Types[schema.Float](ct) {
		return &tablevet.ConstraintError{
			Column:     column,
			Constraint: c,
			Detail:     fmt.Sprintf("range constraint requires a numeric column, got %s", ct),
		}
	}

	for _, v := range f.Column(column) {
		var fv float64
		switch x := v.(type) {
		case nil:
			continue
		case int64:
			fv = float64(x)
		case float64:
			if math.IsNaN(x) {
				continue
			}
			fv = x
		case string:
			fv, err = strconv.ParseFloat(x, 64)
			if err != nil {
				return &tablevet.ConstraintError{
					Column:     column,
					Constraint: c,
					Detail:     fmt.Sprintf("cannot interpret %q as a number", x),
				}
			}
		default:
			return &tablevet.ConstraintError{
				Column:     column,
				Constraint: c,
				Detail:     fmt.Sprintf("cannot interpret %T as a number", v),
			}
		}
		if !r.Contains(fv) {
			return &tablevet.ConstraintError{
				Column:     column,
				Constraint: c,
				Detail:     fmt.Sprintf("values must be in %s", r),
			}
		}
	}
	return nil
}

// checkNonNull rejects columns containing SQL NULL
func checkNonNull(t tablevet.Table, column string, c schema.Constraint) error {
	f, err := asFrame(t)
	if err != nil {
		return err
	}
	for _, v := range f.Column(column) {
		if v == nil {
			return &tablevet.ConstraintError{
				Column:     column,
				Constraint: c,
				Detail:     "null values are not allowed",
			}
		}
	}
	return nil
}
