package schemafile

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tordrt/tablevet/schema"
)

// document mirrors the YAML layout of a schema file:
//
//	columns:
//	  - name: age
//	    type: integer
//	    constraints:
//	      - range: {min: 0, max: 150}
//	      - nonnull: true
type document struct {
	Columns []columnSpec `yaml:"columns"`
}

type columnSpec struct {
	Name        string           `yaml:"name"`
	Type        string           `yaml:"type"`
	Constraints []constraintSpec `yaml:"constraints"`
}

// constraintSpec is one entry of a constraints list. Exactly one of its
// fields may be set per entry.
type constraintSpec struct {
	Range   *rangeSpec `yaml:"range"`
	NonNull bool       `yaml:"nonnull"`
}

type rangeSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// typeNames maps the spellings accepted in schema files onto logical types
var typeNames = map[string]schema.Type{
	"int":       schema.Integer,
	"integer":   schema.Integer,
	"float":     schema.Float,
	"double":    schema.Float,
	"string":    schema.String,
	"bool":      schema.Boolean,
	"boolean":   schema.Boolean,
	"datetime":  schema.DateTime,
	"timestamp": schema.DateTime,
	"date":      schema.Date,
	"duration":  schema.Duration,
}

// Load reads and parses a YAML schema file
func Load(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a schema from the bytes of a YAML schema document. Unknown
// keys, type names, and constraint names are rejected rather than ignored:
// a typo in a validation schema must not silently weaken it.
func Parse(data []byte) (*schema.Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema document: %w", err)
	}
	if len(doc.Columns) == 0 {
		return nil, fmt.Errorf("schema document declares no columns")
	}

	fields := make([]schema.Field, 0, len(doc.Columns))
	for _, col := range doc.Columns {
		lt, ok := typeNames[col.Type]
		if !ok {
			return nil, fmt.Errorf("column %q: unknown type %q", col.Name, col.Type)
		}
		constraints, err := buildConstraints(col)
		if err != nil {
			return nil, err
		}
		fields = append(fields, schema.Col(col.Name, lt, constraints...))
	}
	return schema.New(fields...)
}

func buildConstraints(col columnSpec) ([]schema.Constraint, error) {
	var out []schema.Constraint
	for _, cs := range col.Constraints {
		switch {
		case cs.Range != nil && cs.NonNull:
			return nil, fmt.Errorf("column %q: constraint entry sets more than one kind", col.Name)
		case cs.Range != nil:
			if cs.Range.Min > cs.Range.Max {
				return nil, fmt.Errorf("column %q: range min %v exceeds max %v", col.Name, cs.Range.Min, cs.Range.Max)
			}
			out = append(out, schema.InRange(cs.Range.Min, cs.Range.Max))
		case cs.NonNull:
			out = append(out, schema.NotNull())
		default:
			return nil, fmt.Errorf("column %q: empty constraint entry", col.Name)
		}
	}
	return out, nil
}
