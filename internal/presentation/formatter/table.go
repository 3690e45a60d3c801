package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/penwyp/go-pos/internal/application/analytics"
	"github.com/penwyp/go-pos/internal/presentation/layout"
	"github.com/penwyp/go-pos/internal/util"
)

const minColumnWidth = 6

// TableFormatter prints the report as three box-drawn tables.
type TableFormatter struct {
	w        io.Writer
	currency string
	sizer    layout.Sizer
}

func NewTableFormatter(w io.Writer, currency string) *TableFormatter {
	return &TableFormatter{w: w, currency: currency}
}

func (f *TableFormatter) Format(r analytics.Report) error {
	fmt.Fprintf(f.w, "%s sales (%s)\n\n", r.View, util.FormatCurrency(r.GrandTotal, f.currency))

	items := make([][]string, len(r.TopItems))
	for i, it := range r.TopItems {
		items[i] = []string{strconv.Itoa(i + 1), it.Name, util.FormatCount(it.Qty)}
	}
	f.section("Top Items", []string{"#", "Item", "Qty"}, items, 2)

	f.section("Sales by Period", analytics.SummaryHeader(r), analytics.SummaryRows(r), 1)

	customers := make([][]string, len(r.TopCustomers))
	for i, c := range r.TopCustomers {
		customers[i] = []string{strconv.Itoa(i + 1), c.Customer, util.FormatCurrency(c.Total, f.currency)}
	}
	f.section("Top Customers", []string{"#", "Customer", "Total"}, customers, 2)

	if skipped := r.OrderStats.Skipped + r.LineStats.Skipped; skipped > 0 {
		fmt.Fprintf(f.w, "%d malformed rows skipped\n", skipped)
	}
	return nil
}

// section prints one titled table. Columns from numericFrom on are right
// aligned.
func (f *TableFormatter) section(title string, headers []string, rows [][]string, numericFrom int) {
	fmt.Fprintln(f.w, title)
	if len(rows) == 0 {
		fmt.Fprintln(f.w, "  No data")
		fmt.Fprintln(f.w)
		return
	}

	widths := f.columnWidths(headers, rows)
	f.printBorder(widths, "top")
	f.printRow(headers, widths, len(headers))
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths, numericFrom)
	}
	f.printBorder(widths, "bottom")
	fmt.Fprintln(f.w)
}

func (f *TableFormatter) columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(minColumnWidth, f.sizer.DisplayWidth(h))
	}
	for _, row := range rows {
		for i, v := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], f.sizer.DisplayWidth(v))
			}
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	default:
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(f.w, b.String())
}

func (f *TableFormatter) printRow(values []string, widths []int, numericFrom int) {
	var b strings.Builder
	b.WriteString("│")
	for i, width := range widths {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		b.WriteString(" ")
		b.WriteString(f.sizer.PadString(v, width, i < numericFrom))
		b.WriteString(" │")
	}
	fmt.Fprintln(f.w, b.String())
}
