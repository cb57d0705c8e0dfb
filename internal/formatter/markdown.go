package formatter

import (
	"fmt"
	"io"
)

// MarkdownFormatter renders validation reports as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes the report in markdown format
func (f *MarkdownFormatter) Format(r *Report) error {
	_, _ = fmt.Fprintln(f.writer, "# Validation Report")
	_, _ = fmt.Fprintln(f.writer)

	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", r.Source)
	_, _ = fmt.Fprintf(f.writer, "- **status:** %s\n", r.status())
	_, _ = fmt.Fprintf(f.writer, "- **checked:** %s\n", r.countLine())
	_, _ = fmt.Fprintln(f.writer)

	if r.Schema != nil {
		_, _ = fmt.Fprintln(f.writer, "### Schema")
		_, _ = fmt.Fprintln(f.writer)
		for _, field := range r.Schema.Fields() {
			_, _ = fmt.Fprintf(f.writer, "- **%s**\n", formatField(field))
		}
		_, _ = fmt.Fprintln(f.writer)
	}

	if !r.Passed() {
		_, _ = fmt.Fprintln(f.writer, "### Violations")
		_, _ = fmt.Fprintln(f.writer)
		for _, v := range r.Violations {
			_, _ = fmt.Fprintf(f.writer, "- %s\n", v)
		}
		_, _ = fmt.Fprintln(f.writer)
	}

	return nil
}
