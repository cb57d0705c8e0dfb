package tablevet

import (
	"fmt"
	"strings"

	"github.com/tordrt/tablevet/schema"
)

// MissingColumnError reports a declared column that the table does not have
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column: %s", e.Column)
}

// UnsupportedTypeError reports a logical type the backend has no physical
// mapping for
type UnsupportedTypeError struct {
	Column string
	Type   schema.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("column %q: unsupported type %s", e.Column, e.Type)
}

// TypeMismatchError reports a column whose physical type does not satisfy
// its declared logical type
type TypeMismatchError struct {
	Column   string
	Expected schema.Type
	Actual   PhysicalType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column %q: expected %s, got %s", e.Column, e.Expected, e.Actual)
}

// ConstraintError reports a constraint violated by the column's values
type ConstraintError struct {
	Column     string
	Constraint schema.Constraint
	Detail     string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("column %q: %s", e.Column, e.Detail)
}

// UnknownConstraintError reports a constraint kind the backend has no check
// routine for. This is a schema configuration problem, not a data problem.
type UnknownConstraintError struct {
	Column string
	Kind   schema.Kind
}

func (e *UnknownConstraintError) Error() string {
	return fmt.Sprintf("column %q: unknown constraint kind %q", e.Column, e.Kind)
}

// ValidationErrors aggregates the failures found by a ValidateAll run.
// errors.As can extract the individual typed errors through Unwrap.
type ValidationErrors []error

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:", len(e))
	for _, err := range e {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap exposes the aggregated errors to errors.Is and errors.As
func (e ValidationErrors) Unwrap() []error { return e }
