package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/reportgen/internal/analysis"
	"github.com/KaramelBytes/reportgen/internal/dataset"
)

type xlsxRenderer struct{}

func (xlsxRenderer) CanRender(path string) bool { return hasExt(path, ".xlsx") }

const (
	summarySheet = "Summary"
	dataSheet    = "Data"
)

// Render writes a workbook with a Summary sheet (metadata and statistics) and a
// Data sheet (the sampled records).
func (xlsxRenderer) Render(w io.Writer, ds dataset.Dataset, res *analysis.Result, opt Options) error {
	if res == nil {
		return ErrNoResult
	}
	c := buildContent(ds, res, opt)
	st := opt.Style

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(dataSheet); err != nil {
		return fmt.Errorf("add data sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: c.Title, Creator: "reportgen", Identifier: c.ReportID}); err != nil {
		return fmt.Errorf("set doc props: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: st.TitleSize, Color: excelColor(st.TitleColor)}})
	if err != nil {
		return fmt.Errorf("title style: %w", err)
	}
	headStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: excelColor(st.HeaderTextColor)},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{excelColor(st.HeaderFill)}},
		Border: gridBorder(st.GridColor),
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	dec := st.Decimals
	if dec < 0 {
		dec = 2
	}
	numFmt := "0"
	if dec > 0 {
		numFmt += "." + strings.Repeat("0", dec)
	}
	statStyle, err := f.NewStyle(&excelize.Style{
		Fill:         excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{excelColor(st.StatsFill)}},
		Border:       gridBorder(st.GridColor),
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return fmt.Errorf("stats style: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{excelColor(st.DataFill)}},
		Border: gridBorder(st.GridColor),
	})
	if err != nil {
		return fmt.Errorf("data style: %w", err)
	}

	sw := &sheetWriter{f: f, sheet: summarySheet}
	sw.row(c.Title)
	sw.style(titleStyle, 1)
	sw.row("Generated", c.Generated)
	sw.row("Total Records", res.TotalRecords)
	if c.ReportID != "" {
		sw.row("Report ID", c.ReportID)
	}
	sw.row()
	sw.row("Metric", "Value")
	sw.style(headStyle, 2)
	for _, col := range res.NumericColumns() {
		s := res.Stats[col]
		for _, m := range []struct {
			label string
			v     float64
		}{{"Avg", s.Average}, {"Max", s.Max}, {"Min", s.Min}} {
			sw.row(fmt.Sprintf("%s (%s)", col, m.label), m.v)
			sw.style(statStyle, 2)
		}
	}
	if c.Note != "" {
		sw.row()
		sw.row(c.Note)
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 32); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	dw := &sheetWriter{f: f, sheet: dataSheet}
	dw.row(toAny(c.Header)...)
	dw.style(headStyle, len(c.Header))
	for _, r := range c.Rows {
		dw.row(toAny(r)...)
		dw.style(dataStyle, len(c.Header))
	}
	if sw.err != nil {
		return sw.err
	}
	if dw.err != nil {
		return dw.err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// sheetWriter appends rows to a sheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	n     int
	err   error
}

func (s *sheetWriter) row(vals ...any) {
	s.n++
	if s.err != nil || len(vals) == 0 {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, s.n)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetSheetRow(s.sheet, cell, &vals); err != nil {
		s.err = fmt.Errorf("write %s row %d: %w", s.sheet, s.n, err)
	}
}

// style applies styleID to the first width cells of the last written row.
func (s *sheetWriter) style(styleID, width int) {
	if s.err != nil || width <= 0 {
		return
	}
	from, _ := excelize.CoordinatesToCellName(1, s.n)
	to, _ := excelize.CoordinatesToCellName(width, s.n)
	if err := s.f.SetCellStyle(s.sheet, from, to, styleID); err != nil {
		s.err = fmt.Errorf("style %s row %d: %w", s.sheet, s.n, err)
	}
}

func gridBorder(color string) []excelize.Border {
	c := excelColor(color)
	return []excelize.Border{
		{Type: "left", Color: c, Style: 1},
		{Type: "top", Color: c, Style: 1},
		{Type: "right", Color: c, Style: 1},
		{Type: "bottom", Color: c, Style: 1},
	}
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
