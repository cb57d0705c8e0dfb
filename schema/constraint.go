package schema

import "fmt"

// Kind identifies a constraint variant for dispatch
type Kind string

const (
	KindRange   Kind = "range"
	KindNonNull Kind = "nonnull"
)

// Constraint is a value-level rule attached to a column. Backends dispatch
// on Kind to the check routine for the variant; String is used in reports
// and error messages.
type Constraint interface {
	Kind() Kind
	String() string
}

// Range restricts numeric column values to the closed interval [Min, Max].
// Null values are not range violations; combine with NonNull to reject them.
type Range struct {
	Min float64
	Max float64
}

// Kind returns KindRange
func (Range) Kind() Kind { return KindRange }

func (r Range) String() string {
	return fmt.Sprintf("range [%v, %v]", r.Min, r.Max)
}

// Contains reports whether v lies within the closed interval
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// InRange builds a range constraint over [min, max]
func InRange(min, max float64) Range {
	return Range{Min: min, Max: max}
}

// NonNull rejects null values in a column
type NonNull struct{}

// Kind returns KindNonNull
func (NonNull) Kind() Kind { return KindNonNull }

func (NonNull) String() string { return "nonnull" }

// NotNull builds a non-null constraint
func NotNull() NonNull { return NonNull{} }
