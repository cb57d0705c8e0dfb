package formatter

import (
	"fmt"
	"io"
)

// TextFormatter renders validation reports as compact text
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes the report in compact text format
func (f *TextFormatter) Format(r *Report) error {
	_, _ = fmt.Fprintf(f.writer, "%s %s\n", r.status(), r.Source)
	_, _ = fmt.Fprintf(f.writer, "  %s\n", r.countLine())

	if r.Schema != nil {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "  SCHEMA:")
		for _, field := range r.Schema.Fields() {
			_, _ = fmt.Fprintf(f.writer, "    %s\n", formatField(field))
		}
	}

	if !r.Passed() {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "  VIOLATIONS:")
		for _, v := range r.Violations {
			_, _ = fmt.Fprintf(f.writer, "    %s\n", v)
		}
	}

	return nil
}
