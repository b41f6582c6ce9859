package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/reportgen/internal/analysis"
	"github.com/KaramelBytes/reportgen/internal/dataset"
	"github.com/KaramelBytes/reportgen/internal/utils"
)

// Renderer writes a report document for an analyzed dataset.
type Renderer interface {
	CanRender(path string) bool
	Render(w io.Writer, ds dataset.Dataset, res *analysis.Result, opt Options) error
}

// ErrUnsupported indicates no renderer handles the requested output format.
var ErrUnsupported = errors.New("unsupported report format")

// ErrNoResult is returned when rendering is attempted without an analysis result.
var ErrNoResult = errors.New("no analysis result to report")

var registry []Renderer

// Register adds a renderer implementation to the registry.
func Register(r Renderer) {
	registry = append(registry, r)
}

// ForPath selects a renderer based on the output file extension.
func ForPath(path string) (Renderer, error) {
	for _, r := range registry {
		if r.CanRender(path) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// WriteFile renders the report in the format implied by path and writes it atomically.
func WriteFile(path string, ds dataset.Dataset, res *analysis.Result, opt Options) error {
	if res == nil {
		return ErrNoResult
	}
	r, err := ForPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, ds, res, opt); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func hasExt(path string, exts ...string) bool {
	lower := strings.ToLower(path)
	for _, e := range exts {
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}

func init() {
	Register(pdfRenderer{})
	Register(xlsxRenderer{})
	Register(markdownRenderer{})
}
