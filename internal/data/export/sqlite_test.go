package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/penwyp/go-pos/internal/data/orderlog"
	"github.com/penwyp/go-pos/internal/testing/fixtures"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportScenario(t *testing.T) (string, Counts) {
	t.Helper()
	dataDir := t.TempDir()
	require.NoError(t, fixtures.NewOrderLogGenerator(dataDir).WeeklyScenario())

	clock := &util.TimeProvider{}
	require.NoError(t, clock.SetTimezone("UTC"))
	log := orderlog.New(dataDir, clock)
	orders, err := log.ReadAllOrders()
	require.NoError(t, err)
	lines, err := log.ReadAllOrderLines()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "pos.db")
	counts, err := NewSQLiteExporter(path, false).Export(context.Background(), orders, lines)
	require.NoError(t, err)
	return path, counts
}

func TestExport(t *testing.T) {
	path, counts := exportScenario(t)
	assert.Equal(t, Counts{Orders: 3, Lines: 3}, counts)

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	var total string
	require.NoError(t, db.QueryRow(`SELECT total FROM orders WHERE customer = 'bob'`).Scan(&total))
	assert.Equal(t, "50.00", total)

	var qty int
	require.NoError(t, db.QueryRow(`SELECT SUM(qty) FROM order_items`).Scan(&qty))
	assert.Equal(t, 8, qty)
}

func TestExport_AppendOnly(t *testing.T) {
	path, _ := exportScenario(t)

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`UPDATE orders SET total = '0.00'`)
	assert.ErrorContains(t, err, "append-only")
	_, err = db.Exec(`DELETE FROM order_items`)
	assert.ErrorContains(t, err, "append-only")
}

func TestExport_ExistingTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pos.db")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0644))

	_, err := NewSQLiteExporter(path, false).Export(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrExists)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))

	counts, err := NewSQLiteExporter(path, true).Export(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Counts{}, counts)
}
