// Package formatter prints an analytics report as a box-drawn table, CSV,
// JSON or a plain-text summary.
package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/penwyp/go-pos/internal/application/analytics"
)

// Formatter writes a report to its output.
type Formatter interface {
	Format(report analytics.Report) error
}

// Output names accepted by New.
const (
	OutputTable   = "table"
	OutputCSV     = "csv"
	OutputJSON    = "json"
	OutputSummary = "summary"
)

// New returns the formatter for output writing to w. A nil w writes to
// stdout.
func New(output string, w io.Writer, currency string) (Formatter, error) {
	if w == nil {
		w = os.Stdout
	}
	switch strings.ToLower(output) {
	case OutputTable, "":
		return NewTableFormatter(w, currency), nil
	case OutputCSV:
		return NewCSVFormatter(w), nil
	case OutputJSON:
		return NewJSONFormatter(w), nil
	case OutputSummary:
		return NewSummaryFormatter(w, currency), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected table, csv, json or summary)", output)
	}
}
