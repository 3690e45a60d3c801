package formatter

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-pos/internal/application/analytics"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/data/orderlog"
	"github.com/penwyp/go-pos/internal/util"
)

type jsonReport struct {
	View         string             `json:"view"`
	GeneratedAt  string             `json:"generated_at"`
	GrandTotal   string             `json:"grand_total"`
	TopItems     []model.TopItem    `json:"top_items"`
	TopCustomers []jsonCustomer     `json:"top_customers"`
	Periods      []jsonPeriod       `json:"periods"`
	Orders       orderlog.ScanStats `json:"orders"`
	Lines        orderlog.ScanStats `json:"lines"`
}

type jsonCustomer struct {
	Customer string `json:"customer"`
	Total    string `json:"total"`
}

type jsonPeriod struct {
	Label     string            `json:"label"`
	Total     string            `json:"total"`
	Customers map[string]string `json:"customers"`
}

// JSONFormatter writes the report as indented JSON. Amounts are strings
// with two decimals so no precision is lost.
type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

func (f *JSONFormatter) Format(r analytics.Report) error {
	out := jsonReport{
		View:         r.View.String(),
		GeneratedAt:  r.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		GrandTotal:   util.FormatAmount(r.GrandTotal),
		TopItems:     r.TopItems,
		TopCustomers: make([]jsonCustomer, len(r.TopCustomers)),
		Periods:      make([]jsonPeriod, len(r.Buckets)),
		Orders:       r.OrderStats,
		Lines:        r.LineStats,
	}
	if out.TopItems == nil {
		out.TopItems = []model.TopItem{}
	}
	for i, c := range r.TopCustomers {
		out.TopCustomers[i] = jsonCustomer{Customer: c.Customer, Total: util.FormatAmount(c.Total)}
	}
	for i, b := range r.Buckets {
		p := jsonPeriod{Label: b.Label, Total: util.FormatAmount(b.GrandTotal), Customers: make(map[string]string, len(b.Customers))}
		for _, c := range b.Customers {
			p.Customers[c] = util.FormatAmount(b.Amount(c))
		}
		out.Periods[i] = p
	}

	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.w.Write(data)
	return err
}
