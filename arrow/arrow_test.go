package arrow

import (
	"errors"
	"math"
	"testing"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/tordrt/tablevet"
	"github.com/tordrt/tablevet/schema"
)

var userSchema = schema.MustNew(
	schema.Col("name", schema.String),
	schema.Col("age", schema.Integer, schema.InRange(0, 150)),
)

// buildRecord assembles a record from fields and a builder fill function
func buildRecord(t *testing.T, fields []arrow.Field, fill func(b *array.RecordBuilder)) arrow.Record {
	t.Helper()
	sc := arrow.NewSchema(fields, nil)
	b := array.NewRecordBuilder(memory.NewGoAllocator(), sc)
	defer b.Release()
	fill(b)
	return b.NewRecord()
}

func newUsersRecord(t *testing.T) arrow.Record {
	t.Helper()
	return buildRecord(t, []arrow.Field{
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "age", Type: arrow.PrimitiveTypes.Int64},
	}, func(b *array.RecordBuilder) {
		b.Field(0).(*array.StringBuilder).AppendValues([]string{"Alice", "Bob"}, nil)
		b.Field(1).(*array.Int64Builder).AppendValues([]int64{30, 25}, nil)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		build   func(t *testing.T) arrow.Record
		schema  *schema.Schema
		wantErr string
	}{
		{
			name:   "Valid record",
			build:  newUsersRecord,
			schema: userSchema,
		},
		{
			name: "Unsigned integers satisfy integer",
			build: func(t *testing.T) arrow.Record {
				return buildRecord(t, []arrow.Field{
					{Name: "age", Type: arrow.PrimitiveTypes.Uint32},
				}, func(b *array.RecordBuilder) {
					b.Field(0).(*array.Uint32Builder).AppendValues([]uint32{30, 25}, nil)
				})
			},
			schema: schema.MustNew(
				schema.Col("age", schema.Integer, schema.InRange(0, 150)),
			),
		},
		{
			name: "Boolean column",
			build: func(t *testing.T) arrow.Record {
				return buildRecord(t, []arrow.Field{
					{Name: "active", Type: arrow.FixedWidthTypes.Boolean},
				}, func(b *array.RecordBuilder) {
					b.Field(0).(*array.BooleanBuilder).AppendValues([]bool{true, false}, nil)
				})
			},
			schema: schema.MustNew(schema.Col("active", schema.Boolean)),
		},
		{
			name: "Timestamp satisfies datetime",
			build: func(t *testing.T) arrow.Record {
				return buildRecord(t, []arrow.Field{
					{Name: "created", Type: arrow.FixedWidthTypes.Timestamp_ns},
				}, func(b *array.RecordBuilder) {
					b.Field(0).(*array.TimestampBuilder).AppendValues([]arrow.Timestamp{1700000000000000000}, nil)
				})
			},
			schema: schema.MustNew(schema.Col("created", schema.DateTime)),
		},
		{
			name: "Date32 satisfies date",
			build: func(t *testing.T) arrow.Record {
				return buildRecord(t, []arrow.Field{
					{Name: "day", Type: arrow.FixedWidthTypes.Date32},
				}, func(b *array.RecordBuilder) {
					b.Field(0).(*array.Date32Builder).AppendValues([]arrow.Date32{19000, 19001}, nil)
				})
			},
			schema: schema.MustNew(schema.Col("day", schema.Date)),
		},
		{
			name: "Duration satisfies duration",
			build: func(t *testing.T) arrow.Record {
				return buildRecord(t, []arrow.Field{
					{Name: "elapsed", Type: arrow.FixedWidthTypes.Duration_ns},
				}, func(b *array.RecordBuilder) {
					b.Field(0).(*array.DurationBuilder).AppendValues([]arrow.Duration{1000, 2000}, nil)
				})
			},
			schema: schema.MustNew(schema.Col("elapsed", schema.Duration)),
		},
		{
			name: "Extra columns are ignored",
			build: func(t *testing.T) arrow.Record {
				return buildRecord(t, []arrow.Field{
					{Name: "age", Type: arrow.PrimitiveTypes.Int64},
					{Name: "score", Type: arrow.PrimitiveTypes.Float64},
				}, func(b *array.RecordBuilder) {
					b.Field(0).(*array.Int64Builder).AppendValues([]int64{30}, nil)
					b.Field(1).(*array.Float64Builder).AppendValues([]float64{0.5}, nil)
				})
			},
			schema: schema.MustNew(schema.Col("age", schema.Integer)),
		},
		{
			name: "Missing column",
			build: func(t *testing.T) arrow.Record {
				return buildRecord(t, []arrow.Field{
					{Name: "name", Type: arrow.BinaryTypes.String},
				}, func(b *array.RecordBuilder) {
					b.Field(0).(*array.StringBuilder).AppendValues([]string{"Alice"}, nil)
				})
			},
			schema:  userSchema,
			wantErr: "missing column: age",
		},
		{
			name: "Type mismatch",
			build: func(t *testing.T) arrow.Record {
				return buildRecord(t, []arrow.Field{
					{Name: "name", Type: arrow.BinaryTypes.String},
					{Name: "age", Type: arrow.BinaryTypes.String},
				}, func(b *array.RecordBuilder) {
					b.Field(0).(*array.StringBuilder).AppendValues([]string{"Alice"}, nil)
					b.Field(1).(*array.StringBuilder).AppendValues([]string{"thirty"}, nil)
				})
			},
			schema:  userSchema,
			wantErr: `column "age": expected integer, got utf8`,
		},
		{
			name: "Timestamp expected, integer found",
			build: func(t *testing.T) arrow.Record {
				return buildRecord(t, []arrow.Field{
					{Name: "created", Type: arrow.PrimitiveTypes.Int64},
				}, func(b *array.RecordBuilder) {
					b.Field(0).(*array.Int64Builder).AppendValues([]int64{1700000000}, nil)
				})
			},
			schema:  schema.MustNew(schema.Col("created", schema.DateTime)),
			wantErr: `column "created": expected datetime, got int64`,
		},
		{
			name: "Range violation",
			build: func(t *testing.T) arrow.Record {
				return buildRecord(t, []arrow.Field{
					{Name: "name", Type: arrow.BinaryTypes.String},
					{Name: "age", Type: arrow.PrimitiveTypes.Int64},
				}, func(b *array.RecordBuilder) {
					b.Field(0).(*array.StringBuilder).AppendValues([]string{"Alice"}, nil)
					b.Field(1).(*array.Int64Builder).AppendValues([]int64{200}, nil)
				})
			},
			schema:  userSchema,
			wantErr: `column "age": values must be in range [0, 150]`,
		},
		{
			name: "Range on a string column",
			build: func(t *testing.T) arrow.Record {
				return buildRecord(t, []arrow.Field{
					{Name: "name", Type: arrow.BinaryTypes.String},
				}, func(b *array.RecordBuilder) {
					b.Field(0).(*array.StringBuilder).AppendValues([]string{"Alice"}, nil)
				})
			},
			schema: schema.MustNew(
				schema.Col("name", schema.String, schema.InRange(0, 1)),
			),
			wantErr: `column "name": range constraint requires a numeric column, got utf8`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.build(t)
			defer rec.Release()

			err := Validate(rec, tt.schema)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Expected error %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateNullHandling(t *testing.T) {
	rec := buildRecord(t, []arrow.Field{
		{Name: "score", Type: arrow.PrimitiveTypes.Float64},
	}, func(b *array.RecordBuilder) {
		b.Field(0).(*array.Float64Builder).AppendValues(
			[]float64{0.5, 0, 0.9}, []bool{true, false, true})
	})
	defer rec.Release()

	// Null slots never violate a range on their own
	s := schema.MustNew(schema.Col("score", schema.Float, schema.InRange(0.1, 1)))
	if err := Validate(rec, s); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// NotNull is the opt-in rejection of null slots
	s = schema.MustNew(schema.Col("score", schema.Float, schema.NotNull()))
	err := Validate(rec, s)
	if err == nil {
		t.Fatal("Expected error but got none")
	}
	want := `column "score": null values are not allowed`
	if err.Error() != want {
		t.Errorf("Expected error %q, got %q", want, err.Error())
	}
}

func TestValidateNaN(t *testing.T) {
	rec := buildRecord(t, []arrow.Field{
		{Name: "score", Type: arrow.PrimitiveTypes.Float64},
	}, func(b *array.RecordBuilder) {
		b.Field(0).(*array.Float64Builder).AppendValues(
			[]float64{0.5, math.NaN()}, nil)
	})
	defer rec.Release()

	// NaN is skipped by range checks
	s := schema.MustNew(schema.Col("score", schema.Float, schema.InRange(0, 1)))
	if err := Validate(rec, s); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// NaN is a value, not a null, so it passes NotNull
	s = schema.MustNew(schema.Col("score", schema.Float, schema.NotNull()))
	if err := Validate(rec, s); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestValidateAll(t *testing.T) {
	rec := newUsersRecord(t)
	defer rec.Release()

	s := schema.MustNew(
		schema.Col("name", schema.String),
		schema.Col("age", schema.Float),
		schema.Col("email", schema.String),
	)

	err := ValidateAll(rec, s)
	if err == nil {
		t.Fatal("Expected error but got none")
	}

	var verrs tablevet.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 2 {
		t.Fatalf("Expected 2 errors, got %d: %v", len(verrs), verrs)
	}

	var mismatch *tablevet.TypeMismatchError
	if !errors.As(err, &mismatch) || mismatch.Column != "age" {
		t.Errorf("Expected a TypeMismatchError for age, got %v", verrs)
	}
	var missing *tablevet.MissingColumnError
	if !errors.As(err, &missing) || missing.Column != "email" {
		t.Errorf("Expected a MissingColumnError for email, got %v", verrs)
	}
}

func TestTypedNew(t *testing.T) {
	rec := newUsersRecord(t)
	defer rec.Release()

	got, err := Typed(userSchema).New(rec)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != rec {
		t.Error("Expected the validated record to be returned unchanged")
	}

	bad := schema.MustNew(schema.Col("email", schema.String))
	if _, err := Typed(bad).New(rec); err == nil {
		t.Fatal("Expected error but got none")
	}

	// A nil schema accepts anything
	if _, err := Typed(nil).New(rec); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestDuplicateFieldNames(t *testing.T) {
	// Arrow permits duplicate field names; validation binds to the first
	rec := buildRecord(t, []arrow.Field{
		{Name: "a", Type: arrow.BinaryTypes.String},
		{Name: "a", Type: arrow.PrimitiveTypes.Int64},
	}, func(b *array.RecordBuilder) {
		b.Field(0).(*array.StringBuilder).AppendValues([]string{"x"}, nil)
		b.Field(1).(*array.Int64Builder).AppendValues([]int64{1}, nil)
	})
	defer rec.Release()

	if err := Validate(rec, schema.MustNew(schema.Col("a", schema.String))); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err := Validate(rec, schema.MustNew(schema.Col("a", schema.Integer)))
	var mismatch *tablevet.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Expected TypeMismatchError against the first field, got %v", err)
	}
}
