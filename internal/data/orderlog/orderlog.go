// Package orderlog appends to and reads back the two order logs:
// orders.csv (timestamp,customer,total) and order_items.csv
// (timestamp,item,qty,lineTotal). Both are append-only and are re-read in
// full by every reader.
package orderlog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/data/csvcodec"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/shopspring/decimal"
)

const (
	orderFieldCount = 3
	lineFieldCount  = 4
)

// OrderScan is the outcome of reading orders.csv.
type OrderScan = Scan[model.OrderRecord]

// LineScan is the outcome of reading order_items.csv.
type LineScan = Scan[model.OrderLineRecord]

// Log gives access to the order logs in one data directory.
type Log struct {
	ordersPath string
	linesPath  string
	clock      *util.TimeProvider
}

// New returns a Log rooted at dataDir. A nil clock uses the global time provider.
func New(dataDir string, clock *util.TimeProvider) *Log {
	if clock == nil {
		clock = util.GetTimeProvider()
	}
	return &Log{
		ordersPath: filepath.Join(dataDir, constants.OrdersFile),
		linesPath:  filepath.Join(dataDir, constants.OrderItemsFile),
		clock:      clock,
	}
}

// OrdersPath returns the path of orders.csv.
func (l *Log) OrdersPath() string { return l.ordersPath }

// LinesPath returns the path of order_items.csv.
func (l *Log) LinesPath() string { return l.linesPath }

// FormatTimestamp renders t the way order timestamps are stored.
func FormatTimestamp(t time.Time) string {
	return t.Format(constants.OrderTimestampLayout)
}

// AppendOrder appends one record to orders.csv, creating it if needed.
func (l *Log) AppendOrder(record model.OrderRecord) error {
	ts := record.Timestamp
	if ts == "" {
		ts = FormatTimestamp(record.Time)
	}
	if !csvcodec.Encodable(record.Customer) {
		return fmt.Errorf("customer name %q contains a line break", record.Customer)
	}

	line := csvcodec.JoinFields(ts, record.Customer, util.FormatAmount(record.Total))
	if err := appendLines(l.ordersPath, []string{line}); err != nil {
		return err
	}
	util.LogDebug("order appended", util.F("timestamp", ts), util.F("customer", record.Customer))
	return nil
}

// AppendOrderLines appends all lines of one order under timestamp ts.
func (l *Log) AppendOrderLines(ts string, lines []model.OrderLineRecord) error {
	if len(lines) == 0 {
		return nil
	}

	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		if !csvcodec.Encodable(line.Item) {
			return fmt.Errorf("item name %q contains a line break", line.Item)
		}
		rows = append(rows, csvcodec.JoinFields(ts, line.Item, strconv.Itoa(line.Qty), util.FormatAmount(line.LineTotal)))
	}

	if err := appendLines(l.linesPath, rows); err != nil {
		return err
	}
	util.LogDebug("order lines appended", util.F("timestamp", ts), util.F("lines", len(rows)))
	return nil
}

func appendLines(path string, rows []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	w := bufio.NewWriter(file)
	for _, row := range rows {
		w.WriteString(row)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

// ScanOrders reads orders.csv, reporting every skipped row and defaulted field.
func (l *Log) ScanOrders() (OrderScan, error) {
	now := l.clock.Now()
	scan, err := scanFile(l.ordersPath, func(line int, raw string) RowResult[model.OrderRecord] {
		return l.parseOrderRow(line, raw, now)
	})
	logScan(l.ordersPath, scan.Stats())
	return scan, err
}

// ScanOrderLines reads order_items.csv, reporting every skipped row and defaulted field.
func (l *Log) ScanOrderLines() (LineScan, error) {
	now := l.clock.Now()
	scan, err := scanFile(l.linesPath, func(line int, raw string) RowResult[model.OrderLineRecord] {
		return l.parseLineRow(line, raw, now)
	})
	logScan(l.linesPath, scan.Stats())
	return scan, err
}

// ReadAllOrders returns every well-formed order in file order.
func (l *Log) ReadAllOrders() ([]model.OrderRecord, error) {
	scan, err := l.ScanOrders()
	return scan.Records, err
}

// ReadAllOrderLines returns every well-formed order line in file order.
func (l *Log) ReadAllOrderLines() ([]model.OrderLineRecord, error) {
	scan, err := l.ScanOrderLines()
	return scan.Records, err
}

// OrdersFor returns the orders placed under the given customer name.
func (l *Log) OrdersFor(customer string) ([]model.OrderRecord, error) {
	orders, err := l.ReadAllOrders()
	if err != nil {
		return nil, err
	}

	var out []model.OrderRecord
	for _, o := range orders {
		if o.Customer == customer {
			out = append(out, o)
		}
	}
	return out, nil
}

// LinesFor returns the lines whose timestamp equals ts exactly.
func (l *Log) LinesFor(ts string) ([]model.OrderLineRecord, error) {
	lines, err := l.ReadAllOrderLines()
	if err != nil {
		return nil, err
	}

	var out []model.OrderLineRecord
	for _, line := range lines {
		if line.Timestamp == ts {
			out = append(out, line)
		}
	}
	return out, nil
}

func (l *Log) parseOrderRow(lineNo int, raw string, now time.Time) RowResult[model.OrderRecord] {
	raw = strings.TrimSuffix(raw, "\r")
	if strings.TrimSpace(raw) == "" {
		return skip[model.OrderRecord](lineNo, raw, ReasonBlankLine)
	}

	fields := csvcodec.ParseLine(raw)
	if len(fields) < orderFieldCount {
		return skip[model.OrderRecord](lineNo, raw, ReasonTooFewFields)
	}

	var row RowResult[model.OrderRecord]
	ts := strings.TrimSpace(fields[0])
	row.Record = model.OrderRecord{
		Timestamp: ts,
		Time:      l.parseTime(lineNo, ts, now, &row.Defaulted),
		Customer:  fields[1],
		Total:     parseAmount(lineNo, "total", fields[2], &row.Defaulted),
	}
	return row
}

func (l *Log) parseLineRow(lineNo int, raw string, now time.Time) RowResult[model.OrderLineRecord] {
	raw = strings.TrimSuffix(raw, "\r")
	if strings.TrimSpace(raw) == "" {
		return skip[model.OrderLineRecord](lineNo, raw, ReasonBlankLine)
	}

	fields := csvcodec.ParseLine(raw)
	if len(fields) < lineFieldCount {
		return skip[model.OrderLineRecord](lineNo, raw, ReasonTooFewFields)
	}

	var row RowResult[model.OrderLineRecord]
	ts := strings.TrimSpace(fields[0])
	row.Record = model.OrderLineRecord{
		Timestamp: ts,
		Time:      l.parseTime(lineNo, ts, now, &row.Defaulted),
		Item:      fields[1],
		Qty:       parseQty(lineNo, fields[2], &row.Defaulted),
		LineTotal: parseAmount(lineNo, "lineTotal", fields[3], &row.Defaulted),
	}
	return row
}

func (l *Log) parseTime(lineNo int, ts string, now time.Time, defaulted *[]DefaultedField) time.Time {
	for _, layout := range []string{constants.OrderTimestampLayout, constants.OrderTimestampShortLayout} {
		if t, err := l.clock.ParseLocal(layout, ts); err == nil {
			return t
		}
	}
	*defaulted = append(*defaulted, DefaultedField{Line: lineNo, Field: "timestamp", Raw: ts})
	return now
}

func parseAmount(lineNo int, field, raw string, defaulted *[]DefaultedField) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		*defaulted = append(*defaulted, DefaultedField{Line: lineNo, Field: field, Raw: raw})
		return decimal.Zero
	}
	return v
}

func parseQty(lineNo int, raw string, defaulted *[]DefaultedField) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		*defaulted = append(*defaulted, DefaultedField{Line: lineNo, Field: "qty", Raw: raw})
		return 0
	}
	return v
}

func logScan(path string, stats ScanStats) {
	if stats.Skipped > 0 || stats.Defaulted > 0 {
		util.LogDebug("lenient read dropped or defaulted rows",
			util.F("file", filepath.Base(path)),
			util.F("skipped", stats.Skipped),
			util.F("defaulted", stats.Defaulted))
	}
}
