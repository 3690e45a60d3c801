package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is one completed checkout as stored in orders.csv.
// Timestamp is the raw value from the file and identifies the order;
// Time is its parsed form.
type OrderRecord struct {
	Timestamp string
	Time      time.Time
	Customer  string
	Total     decimal.Decimal
}

// OrderLineRecord is one item line of an order as stored in order_items.csv.
type OrderLineRecord struct {
	Timestamp string
	Time      time.Time
	Item      string
	Qty       int
	LineTotal decimal.Decimal
}

// BagLine is a pending line in a customer's bag before checkout.
type BagLine struct {
	Item  string
	Price decimal.Decimal
	Qty   int
}

// LineTotal returns price × quantity.
func (l BagLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// SaleRecord is a row of the legacy sales ledger.
type SaleRecord struct {
	Customer string
	Total    decimal.Decimal
}
