package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/penwyp/go-pos/internal/application/account"
	"github.com/penwyp/go-pos/internal/application/checkout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t   *testing.T
	dir string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("POS_LOG_FILE", filepath.Join(t.TempDir(), "pos.log"))

	prev := passwordReader
	passwordReader = func(string) (string, error) { return "", errNotTerminal }
	t.Cleanup(func() { passwordReader = prev })

	return &cli{t: t, dir: t.TempDir()}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--data-dir", c.dir, "--timezone", "UTC"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

func (c *cli) admin(args ...string) string {
	c.t.Helper()
	return c.mustRun(append(args, "--user", "admin", "--password", "admin123")...)
}

func (c *cli) seedMenu() {
	c.admin("menu", "add", "--name", "Burger", "--price", "50", "--category", "food")
	c.admin("menu", "add", "--name", "Coke", "--price", "12.50", "--category", "drinks")
}

func TestOrderFlow(t *testing.T) {
	c := newCLI(t)
	c.seedMenu()

	out := c.mustRun("account", "register", "--user", "alice", "--password", "pw", "--confirm", "pw", "--first", "Alice")
	assert.Contains(t, out, "Registered alice")

	out = c.mustRun("menu", "list", "--category", "Drinks")
	assert.Contains(t, out, "Coke")
	assert.NotContains(t, out, "Burger")

	out = c.mustRun("order", "place", "--user", "alice", "--password", "pw", "--item", "burger=2", "--item", "Coke")
	assert.Contains(t, out, "Receipt for alice")
	assert.Contains(t, out, "Burger x2 - 100.00")
	assert.Contains(t, out, "TOTAL: 112.50")

	out = c.admin("order", "list")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "₱112.50")

	out = c.admin("order", "receive", "1")
	assert.Contains(t, out, "Marked order as received for alice (₱112.50)")

	out = c.mustRun("notifications", "--user", "alice", "--password", "pw")
	assert.Contains(t, out, "Admin added new item: Burger")
	assert.Contains(t, out, "Admin received order for alice (₱112.50)")

	out = c.admin("notifications")
	assert.Contains(t, out, "Customer alice placed an order. Total: ₱112.50")

	out = c.mustRun("order", "history", "--user", "alice", "--password", "pw")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	ts := strings.Fields(lines[0])[1]

	out = c.mustRun("order", "items", ts, "--user", "alice", "--password", "pw")
	assert.Equal(t, "Burger x2 - ₱100.00\nCoke x1 - ₱12.50\n", out)

	assert.Contains(t, c.admin("sales"), "1 sales, total ₱112.50")
	assert.Contains(t, c.admin("transactions"), "Receipt for alice")
}

func TestOrderPlace_Errors(t *testing.T) {
	c := newCLI(t)
	c.seedMenu()
	c.mustRun("account", "register", "--user", "bob", "--password", "pw", "--confirm", "pw")

	_, err := c.run("order", "place", "--user", "bob", "--password", "pw", "--item", "Pizza")
	assert.ErrorIs(t, err, checkout.ErrUnknownItem)

	_, err = c.run("order", "place", "--user", "bob", "--password", "pw", "--item", "Coke=two")
	assert.ErrorIs(t, err, checkout.ErrInvalidQty)

	_, err = c.run("order", "place", "--user", "bob", "--password", "pw")
	assert.ErrorIs(t, err, checkout.ErrEmptyBag)

	_, statErr := os.Stat(filepath.Join(c.dir, "orders.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestAuthentication(t *testing.T) {
	c := newCLI(t)
	c.mustRun("account", "register", "--user", "carol", "--password", "pw", "--confirm", "pw")

	_, err := c.run("analytics", "--user", "carol", "--password", "pw")
	assert.ErrorIs(t, err, account.ErrInvalidCredentials, "customers cannot open analytics")

	_, err = c.run("order", "list", "--user", "admin")
	assert.ErrorIs(t, err, errNotTerminal)

	_, err = c.run("account", "register", "--user", "dave", "--password", "a", "--confirm", "b")
	assert.ErrorIs(t, err, account.ErrPasswordMismatch)

	out := c.mustRun("account", "login", "--admin", "--user", "admin", "--password", "admin123")
	assert.Contains(t, out, "Logged in as admin (admin)")
}

func TestAccountUpdate(t *testing.T) {
	c := newCLI(t)
	c.mustRun("account", "register", "--user", "erin", "--password", "pw", "--confirm", "pw", "--first", "Erin")

	out := c.mustRun("account", "update", "--user", "erin", "--password", "pw", "--new-username", "erin2", "--last", "Diaz")
	assert.Contains(t, out, "Account updated for user: erin2")

	out = c.mustRun("account", "show", "--user", "erin2", "--password", "pw")
	assert.Contains(t, out, "Name: Erin Diaz")
}

func TestAnalyticsAndExport(t *testing.T) {
	c := newCLI(t)
	c.seedMenu()
	c.mustRun("account", "register", "--user", "alice", "--password", "pw", "--confirm", "pw")
	c.mustRun("order", "place", "--user", "alice", "--password", "pw", "--item", "Burger=2", "--item", "Coke")

	out := c.admin("analytics", "--view", "monthly", "--output", "csv")
	assert.True(t, strings.HasPrefix(out, "Period,TOTAL,alice\n"), out)
	assert.Contains(t, out, ",112.50,112.50\n")

	chartPath := filepath.Join(t.TempDir(), "chart.png")
	c.admin("analytics", "--output", "summary", "--chart", chartPath)
	data, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	_, err = c.run("analytics", "--view", "hourly", "--user", "admin", "--password", "admin123")
	assert.Error(t, err)

	dbPath := filepath.Join(t.TempDir(), "pos.db")
	out = c.admin("export", "--out", dbPath)
	assert.Contains(t, out, "Exported 1 orders and 2 order lines")

	_, err = c.run("export", "--out", dbPath, "--user", "admin", "--password", "admin123")
	assert.Error(t, err, "existing database needs --force")
	c.admin("export", "--out", dbPath, "--force")
}

func TestParseItemRequests(t *testing.T) {
	reqs, err := parseItemRequests([]string{"Burger=3", " Coke ", "Halo-Halo = 2"})
	require.NoError(t, err)
	assert.Equal(t, []checkout.ItemRequest{
		{Name: "Burger", Qty: 3},
		{Name: "Coke", Qty: 1},
		{Name: "Halo-Halo", Qty: 2},
	}, reqs)

	_, err = parseItemRequests([]string{"Burger=x"})
	assert.ErrorIs(t, err, checkout.ErrInvalidQty)
}
