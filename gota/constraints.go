package gota

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/series"

	"github.com/tordrt/tablevet"
	"github.com/tordrt/tablevet/schema"
)

// checkRange verifies that every non-null value of a numeric column lies
// within the constraint's closed interval. gota reports NA elements as NaN,
// and NA is never a range violation; declare NotNull to reject nulls.
func checkRange(t tablevet.Table, column string, c schema.Constraint) error {
	r, ok := c.(schema.Range)
	if !ok {
		return &tablevet.UnknownConstraintError{Column: column, Kind: c.Kind()}
	}
	gt, err := asTable(t)
	if err != nil {
		return err
	}

	col := gt.df.Col(column)
	switch col.Type() {
	case series.Int, series.Float:
	default:
		return &tablevet.ConstraintError{
			Column:     column,
			Constraint: c,
			Detail:     fmt.Sprintf("range constraint requires a numeric column, got %s", col.Type()),
		}
	}

	for _, v := range col.Float() {
		if math.IsNaN(v) {
			continue
		}
		if !r.Contains(v) {
			return &tablevet.ConstraintError{
				Column:     column,
				Constraint: c,
				Detail:     fmt.Sprintf("values must be in %s", r),
			}
		}
	}
	return nil
}

// checkNonNull rejects columns containing NA elements
func checkNonNull(t tablevet.Table, column string, c schema.Constraint) error {
	gt, err := asTable(t)
	if err != nil {
		return err
	}
	if gt.df.Col(column).HasNaN() {
		return &tablevet.ConstraintError{
			Column:     column,
			Constraint: c,
			Detail:     "null values are not allowed",
		}
	}
	return nil
}
