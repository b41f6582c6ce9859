package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Style holds the visual settings for one rendering run.
type Style struct {
	Title    string
	PageSize string // Letter | A4 | Legal
	// Colors are "#rrggbb" hex strings.
	TitleColor      string
	HeadingColor    string
	HeaderFill      string
	HeaderTextColor string
	StatsFill       string
	DataFill        string
	GridColor       string
	// Font sizes in points.
	TitleSize       float64
	HeadingSize     float64
	BodySize        float64
	TableHeaderSize float64
	TableBodySize   float64
	// Decimals used when formatting statistics.
	Decimals int
}

// DefaultStyle returns the stock report look.
func DefaultStyle() Style {
	return Style{
		Title:           "Automated Data Report",
		PageSize:        "Letter",
		TitleColor:      "#1f4788",
		HeadingColor:    "#2e5c8a",
		HeaderFill:      "#2e5c8a",
		HeaderTextColor: "#f5f5f5",
		StatsFill:       "#f5f5dc",
		DataFill:        "#d3d3d3",
		GridColor:       "#000000",
		TitleSize:       24,
		HeadingSize:     14,
		BodySize:        10,
		TableHeaderSize: 11,
		TableBodySize:   9,
		Decimals:        2,
	}
}

// Options controls a rendering run.
type Options struct {
	Style Style
	// SampleLimit caps the records listed in the data table. Values <= 0 use the default of 10.
	SampleLimit int
	// GeneratedAt stamps the report; zero means time.Now().
	GeneratedAt time.Time
	// ReportID is embedded in document metadata when set.
	ReportID string
}

// DefaultSampleLimit is the number of records listed when Options.SampleLimit is unset.
const DefaultSampleLimit = 10

// DefaultOptions returns options with the default style and sample limit.
func DefaultOptions() Options {
	return Options{Style: DefaultStyle(), SampleLimit: DefaultSampleLimit}
}

func (o Options) sampleLimit() int {
	if o.SampleLimit <= 0 {
		return DefaultSampleLimit
	}
	return o.SampleLimit
}

func (o Options) generatedAt() time.Time {
	if o.GeneratedAt.IsZero() {
		return time.Now()
	}
	return o.GeneratedAt
}

// hexRGB parses "#rrggbb" (the '#' is optional). Malformed input yields black.
func hexRGB(s string) (r, g, b int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

// excelColor converts "#rrggbb" to the "RRGGBB" form excelize expects.
func excelColor(s string) string {
	r, g, b := hexRGB(s)
	return fmt.Sprintf("%02X%02X%02X", r, g, b)
}
