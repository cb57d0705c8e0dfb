package tablevet

import "github.com/tordrt/tablevet/schema"

// Validate checks a table against a schema using the given backend.
//
// Columns are checked in declaration order, each through the same sequence:
// existence, then logical type, then constraints in their declared order.
// The first failure stops validation and is returned as-is; see the error
// types in this package for the possible failures. Returns nil when every
// declared column passes.
func Validate(t Table, s *schema.Schema, b Backend) error {
	for _, f := range s.Fields() {
		if errs := checkColumn(t, f, b, false); len(errs) > 0 {
			return errs[0]
		}
	}
	return nil
}

// ValidateAll is like Validate but does not stop at the first failure: every
// declared column and every constraint is visited, and all failures come
// back together as a ValidationErrors. A column that fails its existence or
// type check is skipped for constraint checking, since its values cannot be
// interpreted under the declared type.
func ValidateAll(t Table, s *schema.Schema, b Backend) error {
	var errs ValidationErrors
	for _, f := range s.Fields() {
		errs = append(errs, checkColumn(t, f, b, true)...)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// checkColumn runs the per-column check sequence. In collect mode it keeps
// going through the constraint list after a failure instead of returning.
func checkColumn(t Table, f schema.Field, b Backend, collect bool) []error {
	if !t.HasColumn(f.Name) {
		return []error{&MissingColumnError{Column: f.Name}}
	}

	pred, ok := b.Types[f.Type]
	if !ok {
		return []error{&UnsupportedTypeError{Column: f.Name, Type: f.Type}}
	}
	if pt := t.ColumnType(f.Name); !pred(pt) {
		return []error{&TypeMismatchError{Column: f.Name, Expected: f.Type, Actual: pt}}
	}

	var errs []error
	for _, c := range f.Constraints {
		check, ok := b.Constraints[c.Kind()]
		if !ok {
			errs = append(errs, &UnknownConstraintError{Column: f.Name, Kind: c.Kind()})
			if !collect {
				return errs
			}
			continue
		}
		if err := check(t, f.Name, c); err != nil {
			errs = append(errs, err)
			if !collect {
				return errs
			}
		}
	}
	return errs
}
