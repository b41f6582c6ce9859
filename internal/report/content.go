package report

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/KaramelBytes/reportgen/internal/analysis"
	"github.com/KaramelBytes/reportgen/internal/dataset"
)

// content is the renderer-neutral layout of a report.
type content struct {
	Title        string
	ReportID     string
	Generated    string
	TotalRecords string
	// StatRows are (metric, value) pairs in column order: Avg, Max, Min per numeric column.
	StatRows [][2]string
	Header   []string
	Rows     [][]string
	// Note is set when the data table shows fewer records than the dataset holds.
	Note string
}

func buildContent(ds dataset.Dataset, res *analysis.Result, opt Options) content {
	c := content{
		Title:        opt.Style.Title,
		ReportID:     opt.ReportID,
		Generated:    opt.generatedAt().Format("2006-01-02 15:04:05"),
		TotalRecords: humanize.Comma(int64(res.TotalRecords)),
		Header:       res.Columns,
	}
	if c.Title == "" {
		c.Title = DefaultStyle().Title
	}
	dec := opt.Style.Decimals
	if dec < 0 {
		dec = 2
	}
	for _, col := range res.NumericColumns() {
		s := res.Stats[col]
		c.StatRows = append(c.StatRows,
			[2]string{col + " (Avg)", fmt.Sprintf("%.*f", dec, s.Average)},
			[2]string{col + " (Max)", fmt.Sprintf("%.*f", dec, s.Max)},
			[2]string{col + " (Min)", fmt.Sprintf("%.*f", dec, s.Min)},
		)
	}
	limit := opt.sampleLimit()
	for _, rec := range ds.Head(limit) {
		row := make([]string, len(c.Header))
		for i, col := range c.Header {
			row[i], _ = rec.Get(col)
		}
		c.Rows = append(c.Rows, row)
	}
	if ds.Len() > limit {
		c.Note = fmt.Sprintf("Showing first %d of %s total records", limit, humanize.Comma(int64(ds.Len())))
	}
	return c
}
