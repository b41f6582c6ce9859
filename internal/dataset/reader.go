package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ReadOptions controls how a source file is turned into a Dataset.
type ReadOptions struct {
	// Delimiter for CSV. If 0, picked from the extension (tab for .tsv, comma otherwise).
	Delimiter rune
	// SheetName selects an XLSX sheet; empty falls back to SheetIndex.
	SheetName string
	// SheetIndex is the 1-based XLSX sheet position used when SheetName is empty.
	SheetIndex int
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
}

// Reader loads a tabular file into a Dataset.
type Reader interface {
	CanRead(path string) bool
	Read(path string, opt ReadOptions) (Dataset, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ReadFile selects a reader based on the file extension and loads the dataset.
// Unknown extensions are read as CSV. A missing file yields an error wrapping ErrNotFound.
func ReadFile(path string, opt ReadOptions) (Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Dataset{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Dataset{}, fmt.Errorf("stat input: %w", err)
	}
	for _, r := range registry {
		if r.CanRead(path) {
			return r.Read(path, opt)
		}
	}
	return csvReader{}.Read(path, opt)
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}
