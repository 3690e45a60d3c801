package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-pos/internal/application/analytics"
	"github.com/penwyp/go-pos/internal/util"
)

const ruleWidth = 60

// SummaryFormatter prints a short plain-text digest of the report.
type SummaryFormatter struct {
	w        io.Writer
	currency string
}

func NewSummaryFormatter(w io.Writer, currency string) *SummaryFormatter {
	return &SummaryFormatter{w: w, currency: currency}
}

func (f *SummaryFormatter) Format(r analytics.Report) error {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(f.w, rule)
	fmt.Fprintf(f.w, "%s Sales Summary\n", r.View)
	fmt.Fprintln(f.w, rule)
	fmt.Fprintln(f.w)

	if r.Empty() {
		fmt.Fprintln(f.w, "No data to summarize")
		fmt.Fprintln(f.w)
		fmt.Fprintln(f.w, rule)
		return nil
	}

	if n := len(r.Buckets); n > 0 {
		first, last := r.Buckets[0].Label, r.Buckets[n-1].Label
		if first == last {
			fmt.Fprintf(f.w, "Period: %s\n", first)
		} else {
			fmt.Fprintf(f.w, "Periods: %s to %s (%d)\n", first, last, n)
		}
	}
	fmt.Fprintf(f.w, "Orders: %s\n", util.FormatCount(r.OrderStats.Parsed))
	fmt.Fprintf(f.w, "Total Sales: %s\n", util.FormatCurrency(r.GrandTotal, f.currency))
	fmt.Fprintln(f.w)

	if len(r.TopCustomers) > 0 {
		best := r.TopCustomers[0]
		fmt.Fprintf(f.w, "Top Customer: %s (%s)\n", best.Customer, util.FormatCurrency(best.Total, f.currency))
	}
	if len(r.TopItems) > 0 {
		best := r.TopItems[0]
		fmt.Fprintf(f.w, "Best Seller: %s (%s sold)\n", best.Name, util.FormatCount(best.Qty))
	}

	if skipped := r.OrderStats.Skipped + r.LineStats.Skipped; skipped > 0 {
		fmt.Fprintf(f.w, "Malformed rows skipped: %d\n", skipped)
	}
	if defaulted := r.OrderStats.Defaulted + r.LineStats.Defaulted; defaulted > 0 {
		fmt.Fprintf(f.w, "Fields defaulted: %d\n", defaulted)
	}

	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, rule)
	return nil
}
