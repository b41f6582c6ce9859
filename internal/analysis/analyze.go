package analysis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/reportgen/internal/dataset"
)

// Kind is the inferred type of a column.
type Kind string

const (
	KindNumeric  Kind = "numeric"
	KindDatetime Kind = "datetime"
	KindText     Kind = "text"
	// KindEmpty marks a column whose values are all empty strings.
	KindEmpty Kind = "empty"
)

// ColumnStats aggregates the values of a numeric column.
type ColumnStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
	Total   float64 `json:"total"`
	// StdDev is the sample standard deviation; zero when Count < 2.
	StdDev float64 `json:"std_dev"`
}

// Result is the outcome of analyzing a dataset. It is not mutated after Analyze returns.
type Result struct {
	Source       string                 `json:"source,omitempty"`
	TotalRecords int                    `json:"total_records"`
	Columns      []string               `json:"columns"`
	Stats        map[string]ColumnStats `json:"stats"`
	Kinds        map[string]Kind        `json:"kinds"`
	Warnings     []string               `json:"warnings,omitempty"`
}

// NumericColumns returns the columns that have statistics, in column order.
func (r *Result) NumericColumns() []string {
	var out []string
	for _, c := range r.Columns {
		if _, ok := r.Stats[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Analyze computes per-column statistics. It returns false for an empty dataset.
//
// Columns come from the first record. A column gets statistics only when every
// non-empty value parses as a float; one bad value excludes the whole column.
// Empty values are skipped, and a column with no values at all is excluded.
func Analyze(ds dataset.Dataset) (*Result, bool) {
	if ds.Empty() {
		return nil, false
	}
	res := &Result{
		Source:       ds.Name,
		TotalRecords: ds.Len(),
		Columns:      ds.Header(),
		Stats:        make(map[string]ColumnStats),
		Kinds:        make(map[string]Kind),
	}
	if err := dataset.Validate(ds); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%v; only the first record's columns are analyzed", err))
	}
	for _, col := range res.Columns {
		vals := columnValues(ds, col)
		if len(vals) == 0 {
			res.Kinds[col] = KindEmpty
			res.Warnings = append(res.Warnings, fmt.Sprintf("column %s has no values", col))
			continue
		}
		if nums, ok := parseAll(vals); ok {
			res.Stats[col] = summarize(nums)
			res.Kinds[col] = KindNumeric
			continue
		}
		if allDates(vals) {
			res.Kinds[col] = KindDatetime
		} else {
			res.Kinds[col] = KindText
		}
	}
	return res, true
}

// ParseNumber attempts to read s as a float64 after trimming surrounding whitespace.
// Values too large for a float64 parse as ±Inf.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		// Out-of-range values are well formed; ParseFloat returns ±Inf for them.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// columnValues collects the non-empty values of col. Records lacking the column
// contribute nothing.
func columnValues(ds dataset.Dataset, col string) []string {
	out := make([]string, 0, ds.Len())
	for _, rec := range ds.Records {
		if v, ok := rec.Get(col); ok && v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseAll(vals []string) ([]float64, bool) {
	nums := make([]float64, 0, len(vals))
	for _, v := range vals {
		x, ok := ParseNumber(v)
		if !ok {
			return nil, false
		}
		nums = append(nums, x)
	}
	return nums, true
}

// summarize expects a non-empty slice.
func summarize(nums []float64) ColumnStats {
	data := stats.Float64Data(nums)
	// errors from the stats package only signal empty input
	total, _ := data.Sum()
	mean, _ := data.Mean()
	lo, _ := data.Min()
	hi, _ := data.Max()
	s := ColumnStats{Count: len(nums), Average: mean, Max: hi, Min: lo, Total: total}
	if len(nums) > 1 {
		s.StdDev = stat.StdDev(nums, nil)
	}
	return s
}

func allDates(vals []string) bool {
	for _, v := range vals {
		if _, err := dateparse.ParseAny(strings.TrimSpace(v)); err != nil {
			return false
		}
	}
	return true
}
