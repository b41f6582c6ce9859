package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/reportgen/internal/analysis"
	"github.com/KaramelBytes/reportgen/internal/dataset"
)

type markdownRenderer struct{}

func (markdownRenderer) CanRender(path string) bool { return hasExt(path, ".md", ".markdown") }

func (markdownRenderer) Render(w io.Writer, ds dataset.Dataset, res *analysis.Result, opt Options) error {
	if res == nil {
		return ErrNoResult
	}
	c := buildContent(ds, res, opt)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s\n\n", c.Title))
	b.WriteString(fmt.Sprintf("**Generated:** %s  \n", c.Generated))
	b.WriteString(fmt.Sprintf("**Total Records:** %s\n", c.TotalRecords))
	if c.ReportID != "" {
		b.WriteString(fmt.Sprintf("\n<!-- report-id: %s -->\n", c.ReportID))
	}

	b.WriteString("\n## Summary Statistics\n\n")
	if len(c.StatRows) > 0 {
		writeTable(&b, []string{"Metric", "Value"}, statRows(c.StatRows))
	} else {
		b.WriteString("_No numeric columns._\n")
	}

	b.WriteString("\n## Data Records\n\n")
	writeTable(&b, c.Header, c.Rows)
	if c.Note != "" {
		b.WriteString(fmt.Sprintf("\n_%s_\n", c.Note))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func statRows(in [][2]string) [][]string {
	out := make([][]string, len(in))
	for i, r := range in {
		out[i] = []string{r[0], r[1]}
	}
	return out
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("| ")
	for i, h := range header {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(cellText(h))
	}
	b.WriteString(" |\n|")
	for range header {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString("| ")
		for i := range header {
			if i > 0 {
				b.WriteString(" | ")
			}
			v := ""
			if i < len(row) {
				v = row[i]
			}
			b.WriteString(cellText(v))
		}
		b.WriteString(" |\n")
	}
}

func cellText(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
