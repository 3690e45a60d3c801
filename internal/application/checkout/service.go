// Package checkout turns a customer's bag into a persisted order: the order
// logs, the legacy sales and transaction journals and an admin notification.
package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/data/orderlog"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyBag    = errors.New("bag is empty")
	ErrUnknownItem = errors.New("item is not on the menu")
	ErrNoCustomer  = errors.New("customer name is required")
	ErrInvalidQty  = errors.New("quantity must be at least 1")
)

// OrderWriter appends orders and their lines.
type OrderWriter interface {
	AppendOrder(model.OrderRecord) error
	AppendOrderLines(ts string, lines []model.OrderLineRecord) error
}

// SalesWriter records a checkout in the legacy sales ledger.
type SalesWriter interface {
	Append(customer string, total decimal.Decimal) error
}

// ReceiptWriter stores printed receipts.
type ReceiptWriter interface {
	Append(receipt string) error
}

// Notifier receives admin notifications.
type Notifier interface {
	Add(msg string) error
}

// Deps wires a Service to its writers.
type Deps struct {
	Orders   OrderWriter
	Sales    SalesWriter
	Receipts ReceiptWriter
	Admin    Notifier
	Clock    *util.TimeProvider
	Currency string
	NewID    func() string
}

// Receipt is the outcome of a checkout.
type Receipt struct {
	ID        string
	Timestamp string
	Customer  string
	Lines     []model.BagLine
	Total     decimal.Decimal
	Text      string
}

// Service performs checkouts.
type Service struct {
	deps Deps
}

func NewService(deps Deps) *Service {
	if deps.Clock == nil {
		deps.Clock = util.GetTimeProvider()
	}
	if deps.NewID == nil {
		deps.NewID = func() string { return uuid.NewString() }
	}
	return &Service{deps: deps}
}

// Finish persists the bag as one order and clears it. Writes happen in a
// fixed order and stop at the first failure.
func (s *Service) Finish(customer string, bag *Bag) (Receipt, error) {
	if strings.TrimSpace(customer) == "" {
		return Receipt{}, ErrNoCustomer
	}
	if bag == nil || bag.Empty() {
		return Receipt{}, ErrEmptyBag
	}

	now := s.deps.Clock.Now()
	receipt := Receipt{
		ID:        s.deps.NewID(),
		Timestamp: orderlog.FormatTimestamp(now),
		Customer:  customer,
		Lines:     bag.Lines(),
		Total:     bag.Total(),
	}
	receipt.Text = formatReceipt(receipt)

	lines := make([]model.OrderLineRecord, len(receipt.Lines))
	for i, l := range receipt.Lines {
		lines[i] = model.OrderLineRecord{
			Timestamp: receipt.Timestamp,
			Time:      now,
			Item:      l.Item,
			Qty:       l.Qty,
			LineTotal: l.LineTotal(),
		}
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"append order", func() error {
			return s.deps.Orders.AppendOrder(model.OrderRecord{
				Timestamp: receipt.Timestamp,
				Time:      now,
				Customer:  customer,
				Total:     receipt.Total,
			})
		}},
		{"append order lines", func() error { return s.deps.Orders.AppendOrderLines(receipt.Timestamp, lines) }},
		{"append sale", func() error { return s.deps.Sales.Append(customer, receipt.Total) }},
		{"append receipt", func() error { return s.deps.Receipts.Append(receipt.Text) }},
		{"notify admin", func() error {
			return s.deps.Admin.Add(fmt.Sprintf("Customer %s placed an order. Total: %s%s",
				customer, s.deps.Currency, util.FormatAmount(receipt.Total)))
		}},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			util.LogError("checkout failed",
				util.F("step", step.name),
				util.F("customer", customer),
				util.F("error", err.Error()))
			return Receipt{}, fmt.Errorf("%s: %w", step.name, err)
		}
	}

	bag.Clear()
	util.LogInfo("checkout complete",
		util.F("customer", customer),
		util.F("receipt", receipt.ID),
		util.F("total", util.FormatAmount(receipt.Total)))
	return receipt, nil
}

func formatReceipt(r Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Receipt for %s\n", r.Customer)
	fmt.Fprintf(&b, "Receipt ID: %s\n", r.ID)
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "%s x%d - %s\n", l.Item, l.Qty, util.FormatAmount(l.LineTotal()))
	}
	fmt.Fprintf(&b, "TOTAL: %s\n", util.FormatAmount(r.Total))
	return b.String()
}

// MenuLookup finds a menu item by name.
type MenuLookup interface {
	Load() ([]model.MenuItem, error)
}

// ItemRequest asks for Qty units of a menu item.
type ItemRequest struct {
	Name string
	Qty  int
}

// FillBag resolves each request against the menu and adds its units to a
// new bag. Names match case-insensitively.
func FillBag(menu MenuLookup, requests []ItemRequest) (*Bag, error) {
	items, err := menu.Load()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]model.MenuItem, len(items))
	for _, it := range items {
		byName[strings.ToLower(it.Name)] = it
	}

	bag := NewBag()
	for _, req := range requests {
		if req.Qty < 1 {
			return nil, fmt.Errorf("%w: %s x%d", ErrInvalidQty, req.Name, req.Qty)
		}
		it, ok := byName[strings.ToLower(strings.TrimSpace(req.Name))]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownItem, req.Name)
		}
		for n := 0; n < req.Qty; n++ {
			bag.Add(it.Name, it.Price)
		}
	}
	return bag, nil
}
