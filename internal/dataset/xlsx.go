package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

// Read loads the selected sheet. The first row is the header; trailing empty cells
// that excelize drops are restored as empty values.
func (xlsxReader) Read(path string, opt ReadOptions) (Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := pickSheet(f.GetSheetList(), opt.SheetName, opt.SheetIndex)
	if err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Dataset{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	name := filepath.Base(path)
	if len(rows) == 0 {
		return Dataset{Name: name}, nil
	}
	header := cleanHeader(rows[0])
	if len(header) == 0 {
		return Dataset{Name: name}, nil
	}
	body := rows[1:]
	if opt.MaxRows > 0 && len(body) > opt.MaxRows {
		body = body[:opt.MaxRows]
	}
	return FromRows(name, header, body), nil
}

func pickSheet(sheets []string, name string, index int) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if name != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, name) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet '%s' not found; available sheets: %s", name, strings.Join(sheets, ", "))
	}
	if index <= 0 {
		index = 1
	}
	if index > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", index, len(sheets))
	}
	return sheets[index-1], nil
}
