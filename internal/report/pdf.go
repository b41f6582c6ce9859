package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/KaramelBytes/reportgen/internal/analysis"
	"github.com/KaramelBytes/reportgen/internal/dataset"
)

type pdfRenderer struct{}

func (pdfRenderer) CanRender(path string) bool { return hasExt(path, ".pdf") }

const (
	pdfMargin    = 1.0 // inches
	spacerHeight = 0.3
	statsWidthA  = 3.0
	statsWidthB  = 2.0
	dataWidth    = 5.5
	ptPerInch    = 72.0
)

// Render lays out a single-column document: title, metadata, statistics table,
// data table and an optional truncation note. Tables break across pages and
// repeat their header row.
func (pdfRenderer) Render(w io.Writer, ds dataset.Dataset, res *analysis.Result, opt Options) error {
	if res == nil {
		return ErrNoResult
	}
	c := buildContent(ds, res, opt)
	st := opt.Style
	if st.PageSize == "" {
		st.PageSize = DefaultStyle().PageSize
	}

	pdf := fpdf.New("P", "in", st.PageSize, "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(c.Title, true)
	pdf.SetCreator("reportgen", true)
	if c.ReportID != "" {
		pdf.SetKeywords("report-id "+c.ReportID, true)
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-0.6)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 0.2, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	l := &pdfLayout{pdf: pdf, tr: tr, st: st}

	// Title block
	pdf.SetFont("Helvetica", "B", st.TitleSize)
	pdf.SetTextColor(hexRGB(st.TitleColor))
	pdf.CellFormat(0, l.lineHeight(st.TitleSize), tr(c.Title), "", 1, "C", false, 0, "")
	pdf.Ln(spacerHeight)

	// Metadata
	l.labelled("Generated: ", c.Generated)
	l.labelled("Total Records: ", c.TotalRecords)
	pdf.Ln(spacerHeight)

	l.heading("Summary Statistics")
	if len(c.StatRows) > 0 {
		rows := make([][]string, len(c.StatRows))
		for i, r := range c.StatRows {
			rows[i] = []string{r[0], r[1]}
		}
		l.table([]string{"Metric", "Value"}, rows, []float64{statsWidthA, statsWidthB}, "L", st.StatsFill, 12)
	}
	pdf.Ln(spacerHeight)

	l.heading("Data Records")
	if n := len(c.Header); n > 0 {
		widths := make([]float64, n)
		for i := range widths {
			widths[i] = dataWidth / float64(n)
		}
		l.table(c.Header, c.Rows, widths, "C", st.DataFill, st.TableHeaderSize)
	}

	if c.Note != "" {
		pdf.Ln(spacerHeight)
		pdf.SetFont("Helvetica", "I", st.BodySize)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, l.lineHeight(st.BodySize), tr(c.Note), "", 1, "L", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("layout pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type pdfLayout struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	st  Style
}

// lineHeight converts a font size in points to a line height in inches.
func (l *pdfLayout) lineHeight(size float64) float64 {
	return size * 1.3 / ptPerInch
}

func (l *pdfLayout) labelled(label, value string) {
	h := l.lineHeight(l.st.BodySize)
	l.pdf.SetTextColor(0, 0, 0)
	l.pdf.SetFont("Helvetica", "B", l.st.BodySize)
	l.pdf.CellFormat(l.pdf.GetStringWidth(label), h, l.tr(label), "", 0, "L", false, 0, "")
	l.pdf.SetFont("Helvetica", "", l.st.BodySize)
	l.pdf.CellFormat(0, h, l.tr(value), "", 1, "L", false, 0, "")
}

func (l *pdfLayout) heading(text string) {
	l.pdf.Ln(12 / ptPerInch)
	l.pdf.SetFont("Helvetica", "B", l.st.HeadingSize)
	l.pdf.SetTextColor(hexRGB(l.st.HeadingColor))
	l.pdf.CellFormat(0, l.lineHeight(l.st.HeadingSize), l.tr(text), "", 1, "L", false, 0, "")
	l.pdf.Ln(12 / ptPerInch)
}

// table draws a centered grid with a filled header row. The header is repeated
// after every page break.
func (l *pdfLayout) table(header []string, rows [][]string, widths []float64, align, bodyFill string, headerSize float64) {
	pdf := l.pdf
	var total float64
	for _, w := range widths {
		total += w
	}
	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	x := left + (pageW-left-right-total)/2
	headH := l.lineHeight(headerSize) + 12/ptPerInch
	bodyH := l.lineHeight(l.st.TableBodySize) + 6/ptPerInch

	drawHeader := func() {
		pdf.SetX(x)
		pdf.SetFont("Helvetica", "B", headerSize)
		pdf.SetFillColor(hexRGB(l.st.HeaderFill))
		pdf.SetTextColor(hexRGB(l.st.HeaderTextColor))
		pdf.SetDrawColor(hexRGB(l.st.GridColor))
		for i, h := range header {
			pdf.CellFormat(widths[i], headH, l.fit(h, widths[i]), "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	if pdf.GetY()+headH+bodyH > pageH-bottom {
		pdf.AddPage()
	}
	drawHeader()
	for _, row := range rows {
		if pdf.GetY()+bodyH > pageH-bottom {
			pdf.AddPage()
			drawHeader()
		}
		pdf.SetX(x)
		pdf.SetFont("Helvetica", "", l.st.TableBodySize)
		pdf.SetFillColor(hexRGB(bodyFill))
		pdf.SetTextColor(0, 0, 0)
		for i := range widths {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			pdf.CellFormat(widths[i], bodyH, l.fit(v, widths[i]), "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}
}

// fit translates s and shortens it with an ellipsis until it fits in width w
// (minus cell padding) under the current font.
func (l *pdfLayout) fit(s string, w float64) string {
	t := l.tr(s)
	avail := w - 2*l.pdf.GetCellMargin()
	if l.pdf.GetStringWidth(t) <= avail {
		return t
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		t = l.tr(string(r) + "...")
		if l.pdf.GetStringWidth(t) <= avail {
			return t
		}
	}
	return ""
}
