package analysis

import (
	"fmt"
	"strings"
)

// Markdown renders a compact text view of the result for terminals and docs.
func (r *Result) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Source))
	}
	b.WriteString(fmt.Sprintf("Records: %d\n", r.TotalRecords))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Columns)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Columns {
		kind := r.Kinds[c]
		if kind == "" {
			kind = KindText
		}
		b.WriteString(fmt.Sprintf("- %s: %s", safeName(c), kind))
		if s, ok := r.Stats[c]; ok {
			b.WriteString(fmt.Sprintf(" (n=%d) — avg %.4g, min %.4g, max %.4g, total %.4g", s.Count, s.Average, s.Min, s.Max, s.Total))
			if s.Count > 1 {
				b.WriteString(fmt.Sprintf(", std %.4g", s.StdDev))
			}
		}
		b.WriteString("\n")
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
