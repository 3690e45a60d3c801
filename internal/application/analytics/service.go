// Package analytics builds the sales report shown by the analytics view:
// best-selling items, period buckets, the customer ranking and the chart
// payload. Every build re-reads both order logs.
package analytics

import (
	"time"

	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/data/aggregator"
	"github.com/penwyp/go-pos/internal/data/orderlog"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/shopspring/decimal"
)

// Source reads the order logs.
type Source interface {
	ScanOrders() (orderlog.OrderScan, error)
	ScanOrderLines() (orderlog.LineScan, error)
}

// Options limits the report rankings.
type Options struct {
	TopItems     int
	TopCustomers int
}

// Report is one snapshot of the analytics view.
type Report struct {
	View         model.Granularity
	GeneratedAt  time.Time
	TopItems     []model.TopItem
	Buckets      []model.PeriodBucket
	TopCustomers []aggregator.CustomerTotal
	GrandTotal   decimal.Decimal
	Chart        model.ChartData
	OrderStats   orderlog.ScanStats
	LineStats    orderlog.ScanStats
}

// CustomerNames returns the names of the top customers in rank order.
func (r Report) CustomerNames() []string {
	return aggregator.Names(r.TopCustomers)
}

// Empty reports whether no order was read.
func (r Report) Empty() bool {
	return len(r.Buckets) == 0 && len(r.TopItems) == 0
}

type Service struct {
	source Source
	opts   Options
	clock  *util.TimeProvider
}

// NewService returns a report builder. Non-positive limits fall back to the
// defaults.
func NewService(source Source, opts Options, clock *util.TimeProvider) *Service {
	if opts.TopItems <= 0 {
		opts.TopItems = constants.DefaultTopItems
	}
	if opts.TopCustomers <= 0 {
		opts.TopCustomers = constants.DefaultTopCustomers
	}
	if clock == nil {
		clock = util.GetTimeProvider()
	}
	return &Service{source: source, opts: opts, clock: clock}
}

// Build re-reads the logs and assembles the report for view. Missing log
// files produce an empty report.
func (s *Service) Build(view model.Granularity) (Report, error) {
	orders, err := s.source.ScanOrders()
	if err != nil {
		return Report{}, err
	}
	lines, err := s.source.ScanOrderLines()
	if err != nil {
		return Report{}, err
	}

	buckets := aggregator.Aggregate(orders.Records, view)
	ranked := aggregator.SelectTopCustomers(buckets, s.opts.TopCustomers)

	report := Report{
		View:         view,
		GeneratedAt:  s.clock.Now(),
		TopItems:     aggregator.ComputeTopItems(lines.Records, s.opts.TopItems),
		Buckets:      buckets,
		TopCustomers: ranked,
		GrandTotal:   aggregator.GrandTotal(buckets),
		OrderStats:   orders.Stats(),
		LineStats:    lines.Stats(),
	}
	report.Chart = aggregator.BuildChart(aggregator.ChartTitle(view), buckets, report.CustomerNames())

	util.LogDebug("report built",
		util.F("view", view.String()),
		util.F("buckets", len(buckets)),
		util.F("items", len(report.TopItems)))
	return report, nil
}

const customerSuffix = " (customer)"

// SummaryRows returns one row per period: the label, the period total and
// the amount of each top customer, formatted with grouping.
func SummaryRows(r Report) [][]string {
	names := r.CustomerNames()
	rows := make([][]string, 0, len(r.Buckets))
	for _, b := range r.Buckets {
		row := make([]string, 0, len(names)+2)
		row = append(row, b.Label, util.FormatGrouped(b.GrandTotal))
		for _, c := range names {
			row = append(row, util.FormatGrouped(b.Amount(c)))
		}
		rows = append(rows, row)
	}
	return rows
}

// SummaryHeader returns the column names matching SummaryRows. A customer
// named TOTAL is labelled so its column stays distinct from the period total.
func SummaryHeader(r Report) []string {
	header := []string{"Period", constants.TotalSeriesName}
	for _, c := range r.CustomerNames() {
		if c == constants.TotalSeriesName {
			c += customerSuffix
		}
		header = append(header, c)
	}
	return header
}
