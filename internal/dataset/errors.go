package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates the input source does not exist.
var ErrNotFound = errors.New("input file not found")

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported input format")

// SchemaError reports a record whose columns differ from the first record's.
type SchemaError struct {
	// Row is the 1-based data row index (header excluded).
	Row     int
	Missing []string
	Extra   []string
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, "unexpected "+strings.Join(e.Extra, ", "))
	}
	return fmt.Sprintf("row %d does not match header: %s", e.Row, strings.Join(parts, "; "))
}

// Validate checks that every record carries exactly the first record's column set.
// It returns the first mismatch as a *SchemaError.
func Validate(ds Dataset) error {
	if len(ds.Records) < 2 {
		return nil
	}
	want := map[string]struct{}{}
	header := ds.Records[0].Columns()
	for _, c := range header {
		want[c] = struct{}{}
	}
	for i, rec := range ds.Records[1:] {
		se := &SchemaError{Row: i + 2}
		got := map[string]struct{}{}
		for _, c := range rec.Columns() {
			got[c] = struct{}{}
			if _, ok := want[c]; !ok {
				se.Extra = append(se.Extra, c)
			}
		}
		for _, c := range header {
			if _, ok := got[c]; !ok {
				se.Missing = append(se.Missing, c)
			}
		}
		if len(se.Missing) > 0 || len(se.Extra) > 0 {
			return se
		}
	}
	return nil
}
