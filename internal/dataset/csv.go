package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type csvReader struct{}

func (csvReader) CanRead(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvReader) Read(path string, opt ReadOptions) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	return ReadCSV(f, filepath.Base(path), delim, opt.MaxRows)
}

// ReadCSV parses delimited text whose first row is the header. Ragged rows are
// normalized to the header width.
func ReadCSV(src io.Reader, name string, delim rune, maxRows int) (Dataset, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	if delim != 0 {
		r.Comma = delim
	}
	ds := Dataset{Name: name}
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ds, nil
		}
		return ds, fmt.Errorf("read header: %w", err)
	}
	header = cleanHeader(header)
	if len(header) == 0 {
		return ds, nil
	}
	for {
		if maxRows > 0 && len(ds.Records) >= maxRows {
			break
		}
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return ds, fmt.Errorf("read row %d: %w", len(ds.Records)+1, err)
		}
		ds.Records = append(ds.Records, NewRecord(header, rec))
	}
	return ds, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// cleanHeader strips a UTF-8 BOM and surrounding whitespace. A header consisting
// of a single empty cell is treated as no header.
func cleanHeader(h []string) []string {
	out := make([]string, len(h))
	for i, c := range h {
		if i == 0 {
			c = strings.TrimPrefix(c, "\ufeff")
		}
		out[i] = strings.TrimSpace(c)
	}
	if len(out) == 1 && out[0] == "" {
		return nil
	}
	return out
}
