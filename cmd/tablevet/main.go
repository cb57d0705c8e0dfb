package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/spf13/cobra"

	"github.com/tordrt/tablevet"
	"github.com/tordrt/tablevet/gota"
	"github.com/tordrt/tablevet/internal/formatter"
	"github.com/tordrt/tablevet/internal/schemafile"
	"github.com/tordrt/tablevet/schema"
	"github.com/tordrt/tablevet/sqlframe"
)

var (
	csvPath    string
	jsonPath   string
	dbURL      string
	mysqlURL   string
	sqlitePath string
	query      string
	schemaPath string
	outputFile string
	format     string
	reportAll  bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "tablevet",
	Short: "Validate tabular data against a column schema",
	Long: `tablevet checks CSV or JSON files and SQL query results against a declarative
column schema: every declared column must exist, carry the declared logical
type, and satisfy its constraints. Schemas are YAML documents listing
columns with their types and optional range/nonnull constraints.`,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&csvPath, "csv", "", "CSV file to validate")
	rootCmd.Flags().StringVar(&jsonPath, "json", "", "JSON file to validate (array of records)")
	rootCmd.Flags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection string")
	rootCmd.Flags().StringVar(&mysqlURL, "mysql-url", "", "MySQL connection string")
	rootCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database file path")
	rootCmd.Flags().StringVarP(&query, "query", "q", "", "SQL query producing the rows to validate (required with a database source)")
	rootCmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "YAML schema file (required)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "text", "Report format: text or markdown")
	rootCmd.Flags().BoolVar(&reportAll, "all", false, "Report every violation instead of stopping at the first")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// validateFlags checks source and schema flag combinations
func validateFlags() error {
	srcCount := 0
	for _, v := range []string{csvPath, jsonPath, dbURL, mysqlURL, sqlitePath} {
		if v != "" {
			srcCount++
		}
	}
	if srcCount == 0 {
		return fmt.Errorf("one of --csv, --json, --db-url, --mysql-url, or --sqlite must be specified")
	}
	if srcCount > 1 {
		return fmt.Errorf("only one of --csv, --json, --db-url, --mysql-url, or --sqlite can be specified")
	}

	usesDB := dbURL != "" || mysqlURL != "" || sqlitePath != ""
	if usesDB && query == "" {
		return fmt.Errorf("--query is required with a database source")
	}
	if !usesDB && query != "" {
		return fmt.Errorf("--query only applies to database sources")
	}

	if schemaPath == "" {
		return fmt.Errorf("--schema must be specified")
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	logger := newLogger(verbose)

	if err := validateFlags(); err != nil {
		return err
	}

	s, err := schemafile.Load(schemaPath)
	if err != nil {
		return err
	}
	logger.Debug("schema loaded", "path", schemaPath, "columns", s.Len())

	var report *formatter.Report
	if dbURL != "" || mysqlURL != "" || sqlitePath != "" {
		report, err = validateQuery(ctx, logger, s)
	} else {
		report, err = validateFile(logger, s)
	}
	if err != nil {
		return err
	}
	logger.Debug("validation finished", "violations", len(report.Violations))

	if err := writeReport(report); err != nil {
		return err
	}
	if !report.Passed() {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// validateFile loads a CSV or JSON file into a gota dataframe and
// validates it
func validateFile(logger *slog.Logger, s *schema.Schema) (*formatter.Report, error) {
	path := csvPath
	if jsonPath != "" {
		path = jsonPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close input file: %v\n", err)
		}
	}()

	var df dataframe.DataFrame
	if jsonPath != "" {
		df = dataframe.ReadJSON(f)
	} else {
		df = dataframe.ReadCSV(f)
	}
	if err := df.Error(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	logger.Debug("table loaded", "source", path, "rows", df.Nrow(), "columns", df.Ncol())

	var verr error
	if reportAll {
		verr = gota.ValidateAll(df, s)
	} else {
		verr = gota.Validate(df, s)
	}
	return newReport(path, s, df.Nrow(), verr), nil
}

// validateQuery materializes a SQL query through sqlframe and validates
// the result
func validateQuery(ctx context.Context, logger *slog.Logger, s *schema.Schema) (*formatter.Report, error) {
	url := dbURL
	switch {
	case mysqlURL != "":
		url = "mysql://" + mysqlURL
	case sqlitePath != "":
		url = "sqlite://" + sqlitePath
	}

	db, err := sqlframe.Open(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close database connection: %v\n", err)
		}
	}()

	frame, err := sqlframe.Query(ctx, db, query)
	if err != nil {
		return nil, err
	}
	logger.Debug("query materialized", "rows", frame.Len())

	var verr error
	if reportAll {
		verr = sqlframe.ValidateAll(frame, s)
	} else {
		verr = sqlframe.Validate(frame, s)
	}
	return newReport(query, s, frame.Len(), verr), nil
}

func newReport(source string, s *schema.Schema, rows int, err error) *formatter.Report {
	return &formatter.Report{
		Source:     source,
		Schema:     s,
		Rows:       rows,
		Violations: violations(err),
	}
}

// violations flattens a validation result into the report's violation list
func violations(err error) []error {
	if err == nil {
		return nil
	}
	var verrs tablevet.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return []error{err}
}

func writeReport(r *formatter.Report) error {
	var writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to close output file: %v\n", err)
			}
		}()
		writer = f
	}

	var ferr error
	switch format {
	case "text":
		ferr = formatter.NewTextFormatter(writer).Format(r)
	case "markdown":
		ferr = formatter.NewMarkdownFormatter(writer).Format(r)
	default:
		return fmt.Errorf("invalid format: %s (must be 'text' or 'markdown')", format)
	}
	if ferr != nil {
		return fmt.Errorf("failed to format output: %w", ferr)
	}
	return nil
}

// newLogger returns a debug logger on stderr when verbose is set and a
// discard logger otherwise
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
