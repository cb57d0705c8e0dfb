// Package schema defines the backend-independent vocabulary for describing
// tabular data: logical column types, per-column constraints, and ordered
// schema declarations. A Schema built here is handed to one of the backend
// packages (gota, arrow, sqlframe) for validation against concrete data.
package schema

import "fmt"

// Type is a logical column type, independent of any backend encoding
type Type string

const (
	Integer  Type = "integer"
	Float    Type = "float"
	String   Type = "string"
	Boolean  Type = "boolean"
	DateTime Type = "datetime"
	Date     Type = "date"
	Duration Type = "duration"
)

// Field declares a single column: its name, logical type, and constraints.
// Constraints are checked in declaration order.
type Field struct {
	Name        string
	Type        Type
	Constraints []Constraint
}

// Col builds a field declaration
func Col(name string, t Type, constraints ...Constraint) Field {
	return Field{Name: name, Type: t, Constraints: constraints}
}

// Schema is an ordered list of field declarations with unique column names
type Schema struct {
	fields []Field
	index  map[string]int
}

// New builds a schema from field declarations. It returns an error if two
// fields share a name.
func New(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	copy(s.fields, fields)
	for i, f := range s.fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field %d has an empty name", i)
		}
		if _, exists := s.index[f.Name]; exists {
			return nil, fmt.Errorf("duplicate field name %q", f.Name)
		}
		s.index[f.Name] = i
	}
	return s, nil
}

// MustNew is like New but panics on error. It is intended for schemas
// declared as package-level variables.
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic("schema: " + err.Error())
	}
	return s
}

// Len returns the number of declared fields
func (s *Schema) Len() int {
	return len(s.fields)
}

// Fields returns the field declarations in declaration order. The returned
// slice is a copy and may be modified by the caller.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a declaration by column name
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Columns returns the declared column names in declaration order
func (s *Schema) Columns() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}
