package formatter

import (
	"bufio"
	"io"

	"github.com/penwyp/go-pos/internal/application/analytics"
	"github.com/penwyp/go-pos/internal/data/csvcodec"
	"github.com/penwyp/go-pos/internal/util"
)

// CSVFormatter writes the per-period summary rows, quoting fields the same
// way the order logs do. Amounts are ungrouped.
type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) Format(r analytics.Report) error {
	bw := bufio.NewWriter(f.w)
	names := r.CustomerNames()

	bw.WriteString(csvcodec.JoinFields(analytics.SummaryHeader(r)...))
	bw.WriteByte('\n')
	for _, b := range r.Buckets {
		row := make([]string, 0, len(names)+2)
		row = append(row, b.Label, util.FormatAmount(b.GrandTotal))
		for _, c := range names {
			row = append(row, util.FormatAmount(b.Amount(c)))
		}
		bw.WriteString(csvcodec.JoinFields(row...))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
