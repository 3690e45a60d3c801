// Package export copies the order logs into a SQLite database for ad-hoc
// querying. The exported tables are append-only.
package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/util"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ts TEXT NOT NULL,
	ts_unix INTEGER NOT NULL,
	customer TEXT NOT NULL,
	total TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ts TEXT NOT NULL,
	item TEXT NOT NULL,
	qty INTEGER NOT NULL,
	line_total TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_ts ON orders(ts);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer);
CREATE INDEX IF NOT EXISTS idx_order_items_ts ON order_items(ts);

CREATE TRIGGER IF NOT EXISTS trg_orders_no_update
BEFORE UPDATE ON orders
BEGIN
	SELECT RAISE(ABORT, 'orders are append-only: UPDATE forbidden');
END;

CREATE TRIGGER IF NOT EXISTS trg_orders_no_delete
BEFORE DELETE ON orders
BEGIN
	SELECT RAISE(ABORT, 'orders are append-only: DELETE forbidden');
END;

CREATE TRIGGER IF NOT EXISTS trg_order_items_no_update
BEFORE UPDATE ON order_items
BEGIN
	SELECT RAISE(ABORT, 'order_items are append-only: UPDATE forbidden');
END;

CREATE TRIGGER IF NOT EXISTS trg_order_items_no_delete
BEFORE DELETE ON order_items
BEGIN
	SELECT RAISE(ABORT, 'order_items are append-only: DELETE forbidden');
END;
`

// ErrExists is returned when the target database exists and overwriting
// was not requested.
var ErrExists = errors.New("export target already exists")

// Counts reports the rows written per table.
type Counts struct {
	Orders int
	Lines  int
}

// SQLiteExporter writes order logs into a new database file.
type SQLiteExporter struct {
	path      string
	overwrite bool
}

func NewSQLiteExporter(path string, overwrite bool) *SQLiteExporter {
	return &SQLiteExporter{path: path, overwrite: overwrite}
}

// Export creates the database and inserts every order and line in one
// transaction.
func (e *SQLiteExporter) Export(ctx context.Context, orders []model.OrderRecord, lines []model.OrderLineRecord) (Counts, error) {
	if err := e.prepareTarget(); err != nil {
		return Counts{}, err
	}

	db, err := Open(e.path)
	if err != nil {
		return Counts{}, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Counts{}, err
	}
	defer tx.Rollback()

	var counts Counts
	for _, o := range orders {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO orders(ts, ts_unix, customer, total) VALUES (?, ?, ?, ?)`,
			o.Timestamp, o.Time.Unix(), o.Customer, util.FormatAmount(o.Total)); err != nil {
			return Counts{}, fmt.Errorf("insert order %s: %w", o.Timestamp, err)
		}
		counts.Orders++
	}
	for _, l := range lines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items(ts, item, qty, line_total) VALUES (?, ?, ?, ?)`,
			l.Timestamp, l.Item, l.Qty, util.FormatAmount(l.LineTotal)); err != nil {
			return Counts{}, fmt.Errorf("insert order line %s: %w", l.Timestamp, err)
		}
		counts.Lines++
	}

	if err := tx.Commit(); err != nil {
		return Counts{}, err
	}
	util.LogInfo("order logs exported",
		util.F("path", e.path),
		util.F("orders", counts.Orders),
		util.F("lines", counts.Lines))
	return counts, nil
}

func (e *SQLiteExporter) prepareTarget() error {
	_, err := os.Stat(e.path)
	switch {
	case err == nil:
		if !e.overwrite {
			return fmt.Errorf("%w: %s", ErrExists, e.path)
		}
		if err := os.Remove(e.path); err != nil {
			return fmt.Errorf("remove %s: %w", e.path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}
	return util.EnsureDir(filepath.Dir(e.path))
}

// Open opens the database at path and applies the schema.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	for _, stmt := range []string{
		"PRAGMA synchronous=FULL;",
		"PRAGMA busy_timeout=5000;",
		schema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init %s: %w", path, err)
		}
	}
	return db, nil
}
