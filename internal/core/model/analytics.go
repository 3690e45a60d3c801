package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Granularity selects the calendar period orders are bucketed by.
type Granularity int

const (
	Daily Granularity = iota
	Weekly
	Monthly
)

func (g Granularity) String() string {
	switch g {
	case Daily:
		return "Daily"
	case Weekly:
		return "Weekly"
	case Monthly:
		return "Monthly"
	default:
		return fmt.Sprintf("Granularity(%d)", int(g))
	}
}

// ParseGranularity accepts daily/weekly/monthly and their d/w/m shorthands.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return Daily, nil
	case "weekly", "week", "w":
		return Weekly, nil
	case "monthly", "month", "m":
		return Monthly, nil
	default:
		return Daily, fmt.Errorf("unknown view %q (expected daily, weekly or monthly)", s)
	}
}

// PeriodBucket holds per-customer totals for one calendar period.
// Customers keeps first-seen order so output is deterministic.
type PeriodBucket struct {
	Label       string
	Customers   []string
	PerCustomer map[string]decimal.Decimal
	GrandTotal  decimal.Decimal
}

// Amount returns the customer's total in the bucket, zero if absent.
func (b PeriodBucket) Amount(customer string) decimal.Decimal {
	return b.PerCustomer[customer]
}

// TopItem is an item ranked by total quantity sold.
type TopItem struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// Series is one named line of a chart, one value per label.
type Series struct {
	Name   string
	Values []float64
}

// ChartData is the payload handed to the chart renderer.
type ChartData struct {
	Title  string
	Labels []string
	Series []Series
}

// Empty reports whether there is nothing to plot.
func (c ChartData) Empty() bool {
	if len(c.Labels) == 0 {
		return true
	}
	for _, s := range c.Series {
		if len(s.Values) > 0 {
			return false
		}
	}
	return true
}
