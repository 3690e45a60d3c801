package store

import (
	"path/filepath"
	"strings"

	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/shopspring/decimal"
)

// SalesLedger is the legacy sales.txt file (customer,total per checkout).
type SalesLedger struct {
	path string
}

func NewSalesLedger(dataDir string) *SalesLedger {
	return &SalesLedger{path: filepath.Join(dataDir, constants.SalesFile)}
}

// Append records one checkout.
func (l *SalesLedger) Append(customer string, total decimal.Decimal) error {
	return appendText(l.path, customer+","+util.FormatAmount(total)+"\n")
}

// Load returns the rows that split into exactly two parts with a numeric total.
func (l *SalesLedger) Load() ([]model.SaleRecord, error) {
	lines, err := readLines(l.path)
	if err != nil {
		return nil, err
	}

	sales := make([]model.SaleRecord, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			continue
		}
		total, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		sales = append(sales, model.SaleRecord{Customer: parts[0], Total: total})
	}
	return sales, nil
}

// TransactionJournal is the legacy transactions.txt file holding the
// printed receipts, separated by blank lines.
type TransactionJournal struct {
	path string
}

func NewTransactionJournal(dataDir string) *TransactionJournal {
	return &TransactionJournal{path: filepath.Join(dataDir, constants.TransactionsFile)}
}

// Append writes a receipt followed by a blank separator line.
func (j *TransactionJournal) Append(receipt string) error {
	if !strings.HasSuffix(receipt, "\n") {
		receipt += "\n"
	}
	return appendText(j.path, receipt+"\n")
}

// Lines returns the raw journal lines.
func (j *TransactionJournal) Lines() ([]string, error) {
	return readLines(j.path)
}
