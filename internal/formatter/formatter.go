package formatter

import (
	"fmt"
	"strings"

	"github.com/tordrt/tablevet/schema"
)

// Report describes the outcome of validating one data source
type Report struct {
	// Source labels the validated data: a file path, a query, or a table name
	Source string

	// Schema is the declaration the data was checked against
	Schema *schema.Schema

	// Rows is the number of rows in the table, or -1 when unknown
	Rows int

	// Violations holds the validation failures; empty means the data passed
	Violations []error
}

// Passed reports whether validation found no violations
func (r *Report) Passed() bool {
	return len(r.Violations) == 0
}

func (r *Report) status() string {
	if r.Passed() {
		return "PASS"
	}
	return "FAIL"
}

func (r *Report) columnCount() int {
	if r.Schema == nil {
		return 0
	}
	return r.Schema.Len()
}

// formatField renders one declaration as "name: type" plus its constraints
func formatField(f schema.Field) string {
	parts := []string{f.Name + ":", string(f.Type)}
	for _, c := range f.Constraints {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}

// countLine renders the "N columns checked, M rows" summary, omitting the
// row count when it is unknown
func (r *Report) countLine() string {
	line := fmt.Sprintf("%d columns checked", r.columnCount())
	if r.Rows >= 0 {
		line += fmt.Sprintf(", %d rows", r.Rows)
	}
	return line
}
