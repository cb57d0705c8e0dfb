package gota

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"

	"github.com/tordrt/tablevet/schema"
)

// TypedFrame constructs dataframes that are guaranteed to match a schema.
// It validates on construction and hands back the dataframe unchanged, so
// holding a TypedFrame result means holding proven data.
type TypedFrame struct {
	schema *schema.Schema
}

// Typed binds a schema to dataframe construction. A nil schema accepts any
// dataframe.
func Typed(s *schema.Schema) TypedFrame {
	return TypedFrame{schema: s}
}

// Schema returns the bound schema
func (tf TypedFrame) Schema() *schema.Schema { return tf.schema }

// New validates a dataframe against the bound schema and returns it
// unchanged. On failure the zero dataframe is returned with the validation
// error.
func (tf TypedFrame) New(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := df.Error(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("invalid dataframe: %w", err)
	}
	if tf.schema != nil {
		if err := Validate(df, tf.schema); err != nil {
			return dataframe.DataFrame{}, err
		}
	}
	return df, nil
}

// ReadCSV loads CSV data and validates the result against the bound schema
func (tf TypedFrame) ReadCSV(r io.Reader, options ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	return tf.New(dataframe.ReadCSV(r, options...))
}

// ReadJSON loads an array of JSON records and validates the result. gota
// re-detects column types from the decoded values the same way ReadCSV
// does from text, so a JSON column holding only integral numbers loads as
// an integer series.
func (tf TypedFrame) ReadJSON(r io.Reader, options ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	return tf.New(dataframe.ReadJSON(r, options...))
}
