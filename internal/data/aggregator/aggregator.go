// Package aggregator turns order and order-line records into the analytics
// views: best-selling items, per-period per-customer sales buckets, the top
// customer ranking and the chart payload built from them.
package aggregator

import (
	"fmt"
	"sort"
	"time"

	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/shopspring/decimal"
)

// ComputeTopItems sums quantities per item name and returns them sorted by
// quantity descending. Ties keep first-seen order. A limit <= 0 returns all
// items.
func ComputeTopItems(lines []model.OrderLineRecord, limit int) []model.TopItem {
	index := make(map[string]int)
	items := make([]model.TopItem, 0)

	for _, line := range lines {
		i, ok := index[line.Item]
		if !ok {
			i = len(items)
			index[line.Item] = i
			items = append(items, model.TopItem{Name: line.Item})
		}
		items[i].Qty += line.Qty
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Qty > items[j].Qty
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// BucketKey returns the period label for t: YYYY-MM-DD for daily, YYYY-MM
// for monthly and the ISO-8601 week YYYY-Www for weekly.
func BucketKey(t time.Time, g model.Granularity) string {
	switch g {
	case model.Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case model.Monthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

type weekKey struct {
	year, week int
}

func parseWeekLabel(label string) (weekKey, bool) {
	var k weekKey
	if _, err := fmt.Sscanf(label, "%d-W%d", &k.year, &k.week); err != nil {
		return k, false
	}
	return k, true
}

// labelLess orders period labels chronologically. Weekly labels compare by
// (year, week) so W9 sorts before W10 regardless of padding; daily and
// monthly labels are zero padded and compare as strings.
func labelLess(a, b string, g model.Granularity) bool {
	if g == model.Weekly {
		ka, okA := parseWeekLabel(a)
		kb, okB := parseWeekLabel(b)
		if okA && okB {
			if ka.year != kb.year {
				return ka.year < kb.year
			}
			return ka.week < kb.week
		}
	}
	return a < b
}

// Aggregate groups orders into period buckets, summing totals per customer,
// and returns the buckets in chronological order.
func Aggregate(orders []model.OrderRecord, g model.Granularity) []model.PeriodBucket {
	index := make(map[string]int)
	buckets := make([]model.PeriodBucket, 0)

	for _, o := range orders {
		key := BucketKey(o.Time, g)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, model.PeriodBucket{
				Label:       key,
				PerCustomer: make(map[string]decimal.Decimal),
			})
		}

		b := &buckets[i]
		prev, seen := b.PerCustomer[o.Customer]
		if !seen {
			b.Customers = append(b.Customers, o.Customer)
		}
		b.PerCustomer[o.Customer] = prev.Add(o.Total)
		b.GrandTotal = b.GrandTotal.Add(o.Total)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return labelLess(buckets[i].Label, buckets[j].Label, g)
	})

	util.LogDebug("orders aggregated",
		util.F("view", g.String()),
		util.F("orders", len(orders)),
		util.F("buckets", len(buckets)))
	return buckets
}

// CustomerTotal is a customer's all-time total across buckets.
type CustomerTotal struct {
	Customer string
	Total    decimal.Decimal
}

// RankCustomers returns every customer ranked by all-time total descending.
// Ties keep first appearance in chronological bucket order.
func RankCustomers(buckets []model.PeriodBucket) []CustomerTotal {
	index := make(map[string]int)
	ranked := make([]CustomerTotal, 0)

	for _, b := range buckets {
		for _, c := range b.Customers {
			i, ok := index[c]
			if !ok {
				i = len(ranked)
				index[c] = i
				ranked = append(ranked, CustomerTotal{Customer: c})
			}
			ranked[i].Total = ranked[i].Total.Add(b.PerCustomer[c])
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.GreaterThan(ranked[j].Total)
	})
	return ranked
}

// SelectTopCustomers returns up to limit customers ranked by all-time total.
// A limit <= 0 returns all customers.
func SelectTopCustomers(buckets []model.PeriodBucket, limit int) []CustomerTotal {
	ranked := RankCustomers(buckets)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Names returns the customer names of ranked, in order.
func Names(ranked []CustomerTotal) []string {
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Customer
	}
	return names
}

// GrandTotal sums the grand totals of all buckets.
func GrandTotal(buckets []model.PeriodBucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.GrandTotal)
	}
	return total
}

// BuildChart builds the chart payload: one series per selected customer, in
// the given order, followed by the TOTAL series. A customer named TOTAL is
// skipped so the reserved series stays unique.
func BuildChart(title string, buckets []model.PeriodBucket, customers []string) model.ChartData {
	data := model.ChartData{
		Title:  title,
		Labels: make([]string, len(buckets)),
	}
	for i, b := range buckets {
		data.Labels[i] = b.Label
	}

	for _, c := range customers {
		if c == constants.TotalSeriesName {
			continue
		}
		values := make([]float64, len(buckets))
		for i, b := range buckets {
			values[i] = b.Amount(c).InexactFloat64()
		}
		data.Series = append(data.Series, model.Series{Name: c, Values: values})
	}

	totals := make([]float64, len(buckets))
	for i, b := range buckets {
		totals[i] = b.GrandTotal.InexactFloat64()
	}
	data.Series = append(data.Series, model.Series{Name: constants.TotalSeriesName, Values: totals})

	return data
}

// ChartTitle returns the default chart title for a view.
func ChartTitle(g model.Granularity) string {
	return g.String() + " Sales per Customer"
}
