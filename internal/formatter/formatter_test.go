package formatter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tordrt/tablevet/schema"
)

var userSchema = schema.MustNew(
	schema.Col("name", schema.String, schema.NotNull()),
	schema.Col("age", schema.Integer, schema.InRange(0, 150)),
)

func TestTextFormatterPass(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(&buf)

	err := f.Format(&Report{
		Source: "users.csv",
		Schema: userSchema,
		Rows:   120,
	})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "PASS users.csv\n") {
		t.Errorf("Expected PASS header, got %q", out)
	}
	if !strings.Contains(out, "2 columns checked, 120 rows") {
		t.Errorf("Expected count line in output, got %q", out)
	}
	if !strings.Contains(out, "age: integer range [0, 150]") {
		t.Errorf("Expected schema listing in output, got %q", out)
	}
	if strings.Contains(out, "VIOLATIONS") {
		t.Error("Expected no violations section for a passing report")
	}
}

func TestTextFormatterFail(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(&buf)

	err := f.Format(&Report{
		Source: "users.csv",
		Schema: userSchema,
		Rows:   120,
		Violations: []error{
			errors.New(`column "age": values must be in range [0, 150]`),
			errors.New("missing column: name"),
		},
	})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "FAIL users.csv\n") {
		t.Errorf("Expected FAIL header, got %q", out)
	}
	if !strings.Contains(out, "VIOLATIONS:") {
		t.Errorf("Expected violations section, got %q", out)
	}
	if !strings.Contains(out, `column "age": values must be in range [0, 150]`) {
		t.Errorf("Expected violation detail, got %q", out)
	}
	if !strings.Contains(out, "missing column: name") {
		t.Errorf("Expected second violation, got %q", out)
	}
}

func TestTextFormatterUnknownRows(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(&buf)

	err := f.Format(&Report{Source: "query", Schema: userSchema, Rows: -1})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if strings.Contains(buf.String(), "rows") {
		t.Errorf("Expected no row count for unknown rows, got %q", buf.String())
	}
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewMarkdownFormatter(&buf)

	err := f.Format(&Report{
		Source: "users.csv",
		Schema: userSchema,
		Rows:   2,
		Violations: []error{
			errors.New("missing column: name"),
		},
	})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "# Validation Report\n") {
		t.Errorf("Expected report title, got %q", out)
	}
	if !strings.Contains(out, "## users.csv") {
		t.Errorf("Expected source heading, got %q", out)
	}
	if !strings.Contains(out, "- **status:** FAIL") {
		t.Errorf("Expected status line, got %q", out)
	}
	if !strings.Contains(out, "### Schema") {
		t.Errorf("Expected schema section, got %q", out)
	}
	if !strings.Contains(out, "- **name: string nonnull**") {
		t.Errorf("Expected field listing, got %q", out)
	}
	if !strings.Contains(out, "### Violations") {
		t.Errorf("Expected violations section, got %q", out)
	}
	if !strings.Contains(out, "- missing column: name") {
		t.Errorf("Expected violation bullet, got %q", out)
	}
}
