package fixtures

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/data/csvcodec"
)

// Line is one item of a fixture order.
type Line struct {
	Item      string
	Qty       int
	LineTotal string
}

// Order is a fixture order; Total is written verbatim so tests can plant
// malformed values.
type Order struct {
	Timestamp string
	Customer  string
	Total     string
	Lines     []Line
}

// OrderLogGenerator writes order logs into a data directory
type OrderLogGenerator struct {
	dataDir string
}

// NewOrderLogGenerator creates a generator rooted at dataDir.
func NewOrderLogGenerator(dataDir string) *OrderLogGenerator {
	return &OrderLogGenerator{dataDir: dataDir}
}

// DataDir returns the directory the generator writes to.
func (g *OrderLogGenerator) DataDir() string {
	return g.dataDir
}

// WriteOrders appends the orders and their lines to both logs.
func (g *OrderLogGenerator) WriteOrders(orders ...Order) error {
	var orderRows, lineRows []string
	for _, o := range orders {
		orderRows = append(orderRows, csvcodec.JoinFields(o.Timestamp, o.Customer, o.Total))
		for _, l := range o.Lines {
			lineRows = append(lineRows, csvcodec.JoinFields(o.Timestamp, l.Item, fmt.Sprint(l.Qty), l.LineTotal))
		}
	}

	if err := g.AppendRaw(constants.OrdersFile, orderRows...); err != nil {
		return err
	}
	return g.AppendRaw(constants.OrderItemsFile, lineRows...)
}

// AppendRaw appends raw, unescaped lines to a file in the data directory.
func (g *OrderLogGenerator) AppendRaw(name string, rows ...string) error {
	if len(rows) == 0 {
		return nil
	}
	if err := os.MkdirAll(g.dataDir, 0755); err != nil {
		return err
	}

	file, err := os.OpenFile(filepath.Join(g.dataDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(strings.Join(rows, "\n") + "\n")
	return err
}

// WriteFile replaces a file in the data directory with content.
func (g *OrderLogGenerator) WriteFile(name, content string) error {
	if err := os.MkdirAll(g.dataDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(g.dataDir, name), []byte(content), 0644)
}

// WeeklyScenario writes the two-week alice/bob history used across tests:
// W01 alice 100 + bob 50, W02 alice 30.
func (g *OrderLogGenerator) WeeklyScenario() error {
	return g.WriteOrders(
		Order{Timestamp: "2024-01-01T10:00:00", Customer: "alice", Total: "100.00", Lines: []Line{
			{Item: "Burger", Qty: 2, LineTotal: "100.00"},
		}},
		Order{Timestamp: "2024-01-02T11:00:00", Customer: "bob", Total: "50.00", Lines: []Line{
			{Item: "Coke", Qty: 5, LineTotal: "50.00"},
		}},
		Order{Timestamp: "2024-01-08T09:00:00", Customer: "alice", Total: "30.00", Lines: []Line{
			{Item: "Fries", Qty: 1, LineTotal: "30.00"},
		}},
	)
}

// GenerateRandom writes n orders spread over days starting at start, using a
// seeded source so runs are repeatable. It returns the orders written.
func (g *OrderLogGenerator) GenerateRandom(seed int64, start time.Time, days, n int) ([]Order, error) {
	rng := rand.New(rand.NewSource(seed))
	customers := []string{"alice", "bob", "carol", "Smith, J", `dan "the man"`, "erin", "frank", "grace"}
	items := []struct {
		name  string
		price int
	}{
		{"Burger", 50}, {"Coke", 10}, {"Fries", 30}, {"Halo-Halo", 45}, {"Combo, Large", 120},
	}

	orders := make([]Order, 0, n)
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(rng.Intn(days*24*60)) * time.Minute).Add(time.Duration(i) * time.Second)
		o := Order{
			Timestamp: ts.Format(constants.OrderTimestampLayout),
			Customer:  customers[rng.Intn(len(customers))],
		}
		total := 0
		for k := 1 + rng.Intn(3); k > 0; k-- {
			it := items[rng.Intn(len(items))]
			qty := 1 + rng.Intn(4)
			total += qty * it.price
			o.Lines = append(o.Lines, Line{Item: it.name, Qty: qty, LineTotal: fmt.Sprintf("%d.00", qty*it.price)})
		}
		o.Total = fmt.Sprintf("%d.00", total)
		orders = append(orders, o)
	}

	return orders, g.WriteOrders(orders...)
}
