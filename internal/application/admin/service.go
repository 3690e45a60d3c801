// Package admin implements the administrator operations: menu maintenance
// and marking orders as received. Every change is announced in the
// notification mailboxes.
package admin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidMenuItem = errors.New("invalid menu item")
	ErrItemNotFound    = errors.New("menu item not found")
	ErrItemExists      = errors.New("menu item already exists")
	ErrOrderNotFound   = errors.New("order not found")
)

// MenuRepository loads and rewrites the menu.
type MenuRepository interface {
	Load() ([]model.MenuItem, error)
	Save([]model.MenuItem) error
}

// OrderReader lists the order log.
type OrderReader interface {
	ReadAllOrders() ([]model.OrderRecord, error)
}

// Notifier appends to a mailbox.
type Notifier interface {
	Add(msg string) error
}

// Deps wires a Service.
type Deps struct {
	Menu      MenuRepository
	Orders    OrderReader
	Customers Notifier
	Admin     Notifier
	Currency  string
}

type Service struct {
	deps Deps
}

func NewService(deps Deps) *Service {
	return &Service{deps: deps}
}

// ListMenu returns the items in category, or the whole menu when category
// is empty. Categories match case-insensitively.
func (s *Service) ListMenu(category string) ([]model.MenuItem, error) {
	items, err := s.deps.Menu.Load()
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return items, nil
	}

	var out []model.MenuItem
	for _, it := range items {
		if strings.EqualFold(it.Category, category) {
			out = append(out, it)
		}
	}
	return out, nil
}

// MenuInput is the raw user input for a menu item.
type MenuInput struct {
	Name     string
	Price    string
	Category string
}

// AddItem appends a new item to the menu.
func (s *Service) AddItem(in MenuInput) (model.MenuItem, error) {
	item, err := validate(in)
	if err != nil {
		return model.MenuItem{}, err
	}

	items, err := s.deps.Menu.Load()
	if err != nil {
		return model.MenuItem{}, err
	}
	if indexOf(items, item.Name) >= 0 {
		return model.MenuItem{}, fmt.Errorf("%w: %s", ErrItemExists, item.Name)
	}

	if err := s.deps.Menu.Save(append(items, item)); err != nil {
		return model.MenuItem{}, err
	}
	s.notifyCustomers("Admin added new item: " + item.Name)
	util.LogInfo("menu item added", util.F("item", item.Name), util.F("category", item.Category))
	return item, nil
}

// EditItem replaces the item called name. Empty fields in patch keep the
// current values.
func (s *Service) EditItem(name string, patch MenuInput) (model.MenuItem, error) {
	items, err := s.deps.Menu.Load()
	if err != nil {
		return model.MenuItem{}, err
	}
	i := indexOf(items, name)
	if i < 0 {
		return model.MenuItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}

	current := items[i]
	merged := MenuInput{
		Name:     firstNonEmpty(patch.Name, current.Name),
		Price:    firstNonEmpty(patch.Price, util.FormatAmount(current.Price)),
		Category: firstNonEmpty(patch.Category, current.Category),
	}
	item, err := validate(merged)
	if err != nil {
		return model.MenuItem{}, err
	}
	if j := indexOf(items, item.Name); j >= 0 && j != i {
		return model.MenuItem{}, fmt.Errorf("%w: %s", ErrItemExists, item.Name)
	}

	items[i] = item
	if err := s.deps.Menu.Save(items); err != nil {
		return model.MenuItem{}, err
	}
	s.notifyCustomers(fmt.Sprintf("Admin edited item: %s -> %s", current.Name, item.Name))
	util.LogInfo("menu item edited", util.F("from", current.Name), util.F("to", item.Name))
	return item, nil
}

// DeleteItem removes the item called name.
func (s *Service) DeleteItem(name string) error {
	items, err := s.deps.Menu.Load()
	if err != nil {
		return err
	}
	i := indexOf(items, name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}

	removed := items[i]
	items = append(items[:i], items[i+1:]...)
	if err := s.deps.Menu.Save(items); err != nil {
		return err
	}
	s.notifyCustomers("Admin deleted item: " + removed.Name)
	util.LogInfo("menu item deleted", util.F("item", removed.Name))
	return nil
}

// Orders returns every order in file order.
func (s *Service) Orders() ([]model.OrderRecord, error) {
	return s.deps.Orders.ReadAllOrders()
}

// MarkReceived acknowledges the order at the zero-based index of Orders.
func (s *Service) MarkReceived(index int) (model.OrderRecord, error) {
	orders, err := s.Orders()
	if err != nil {
		return model.OrderRecord{}, err
	}
	if index < 0 || index >= len(orders) {
		return model.OrderRecord{}, fmt.Errorf("%w: index %d of %d", ErrOrderNotFound, index, len(orders))
	}

	o := orders[index]
	detail := fmt.Sprintf("%s (%s%s) at %s", o.Customer, s.deps.Currency, util.FormatAmount(o.Total), o.Timestamp)
	if err := s.deps.Customers.Add("Admin received order for " + detail); err != nil {
		return model.OrderRecord{}, err
	}
	if err := s.deps.Admin.Add("Marked order as received for " + detail); err != nil {
		return model.OrderRecord{}, err
	}
	util.LogInfo("order received", util.F("customer", o.Customer), util.F("timestamp", o.Timestamp))
	return o, nil
}

func (s *Service) notifyCustomers(msg string) {
	if s.deps.Customers == nil {
		return
	}
	if err := s.deps.Customers.Add(msg); err != nil {
		util.LogWarn("notify customers failed", util.F("error", err.Error()))
	}
}

func validate(in MenuInput) (model.MenuItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.ContainsAny(name, ",\r\n") {
		return model.MenuItem{}, fmt.Errorf("%w: name %q", ErrInvalidMenuItem, in.Name)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || price.IsNegative() {
		return model.MenuItem{}, fmt.Errorf("%w: price %q", ErrInvalidMenuItem, in.Price)
	}

	category, ok := canonicalCategory(in.Category)
	if !ok {
		return model.MenuItem{}, fmt.Errorf("%w: category %q (want one of %s)",
			ErrInvalidMenuItem, in.Category, strings.Join(constants.MenuCategories, ", "))
	}

	return model.MenuItem{Name: name, Price: price, Category: category}, nil
}

func canonicalCategory(c string) (string, bool) {
	c = strings.TrimSpace(c)
	for _, known := range constants.MenuCategories {
		if strings.EqualFold(known, c) {
			return known, true
		}
	}
	return "", false
}

func indexOf(items []model.MenuItem, name string) int {
	name = strings.TrimSpace(name)
	for i, it := range items {
		if strings.EqualFold(it.Name, name) {
			return i
		}
	}
	return -1
}

func firstNonEmpty(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
