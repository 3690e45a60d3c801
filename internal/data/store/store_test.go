package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func fixedClock(t *testing.T) *util.TimeProvider {
	t.Helper()
	tp := &util.TimeProvider{}
	require.NoError(t, tp.SetTimezone("UTC"))
	tp.SetClock(func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) })
	return tp
}

func TestAccountStore_LoadMissingFiles(t *testing.T) {
	accounts, err := NewAccountStore(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Empty(t, accounts.Customers)
	assert.Empty(t, accounts.Profiles)
}

func TestAccountStore_LoadLenient(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, constants.CustomersFile, "alice:secret\nbroken\nbob:pw:extra\n:nouser\ncarol:c1\nalice:newer\n")
	writeFile(t, dir, constants.ProfilesFile, "alice:Alice::Reyes\ncarol:Carol:B\ncarol:Carol:B:Cruz:Jr\n")

	accounts, err := NewAccountStore(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, []model.Customer{
		{Username: "alice", Password: "newer"},
		{Username: "carol", Password: "c1"},
	}, accounts.Customers)

	assert.Equal(t, model.Profile{Username: "alice", FirstName: "Alice", LastName: "Reyes"}, accounts.Profiles["alice"])
	assert.Equal(t, "Cruz:Jr", accounts.Profiles["carol"].LastName, "split is limited to four parts")
}

func TestAccountStore_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewAccountStore(dir)

	accounts := &Accounts{Profiles: map[string]model.Profile{}}
	accounts.Put(model.Customer{Username: "alice", Password: "a"})
	accounts.Put(model.Customer{Username: "bob", Password: "b"})
	accounts.Profiles["bob"] = model.Profile{Username: "bob", FirstName: "Bob"}
	accounts.Profiles["alice"] = model.Profile{Username: "alice", FirstName: "Alice", MiddleName: "M", LastName: "Lee"}
	require.NoError(t, s.Save(accounts))

	assert.Equal(t, "alice:a\nbob:b\n", readFile(t, dir, constants.CustomersFile))
	assert.Equal(t, "alice:Alice:M:Lee\nbob:Bob::\n", readFile(t, dir, constants.ProfilesFile))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, accounts.Customers, loaded.Customers)
	assert.Equal(t, accounts.Profiles, loaded.Profiles)
}

func TestAccounts_Rename(t *testing.T) {
	accounts := &Accounts{Profiles: map[string]model.Profile{"alice": {Username: "alice", FirstName: "A"}}}
	accounts.Put(model.Customer{Username: "alice", Password: "pw"})

	accounts.Rename("alice", "alicia")

	_, found := accounts.Find("alice")
	assert.False(t, found)
	c, found := accounts.Find("alicia")
	require.True(t, found)
	assert.Equal(t, "pw", c.Password)
	assert.Equal(t, model.Profile{Username: "alicia", FirstName: "A"}, accounts.Profiles["alicia"])
	assert.NotContains(t, accounts.Profiles, "alice")
}

func TestMenuStore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, constants.MenuFile, "Burger,50,Food\nbad line\nCoke,x,Drinks\nHalo-Halo, 45.5 ,Desserts\n")

	s := NewMenuStore(dir)
	items, err := s.Load()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Burger", items[0].Name)
	assert.True(t, decimal.NewFromInt(50).Equal(items[0].Price))
	assert.Equal(t, "Desserts", items[1].Category)
	assert.True(t, decimal.RequireFromString("45.5").Equal(items[1].Price))

	require.NoError(t, s.Save(items))
	assert.Equal(t, "Burger,50.00,Food\nHalo-Halo,45.50,Desserts\n", readFile(t, dir, constants.MenuFile))
}

func TestMailbox(t *testing.T) {
	dir := t.TempDir()
	box := AdminMailbox(dir, fixedClock(t))

	empty, err := box.List()
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, box.Add("Customer bob placed an order. Total: ₱50.00"))
	require.NoError(t, box.Add("second"))

	lines, err := box.List()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"[2024-01-02 03:04:05] Customer bob placed an order. Total: ₱50.00",
		"[2024-01-02 03:04:05] second",
	}, lines)

	_, err = os.Stat(filepath.Join(dir, constants.CustomerNotificationsFile))
	assert.True(t, os.IsNotExist(err), "customer mailbox is a separate file")
}

func TestSalesLedger(t *testing.T) {
	dir := t.TempDir()
	ledger := NewSalesLedger(dir)

	require.NoError(t, ledger.Append("alice", decimal.NewFromInt(100)))
	require.NoError(t, ledger.Append("bob", decimal.RequireFromString("12.5")))
	require.NoError(t, appendText(filepath.Join(dir, constants.SalesFile), "Smith, J,5.00\n"))

	sales, err := ledger.Load()
	require.NoError(t, err)
	require.Len(t, sales, 2, "rows with a comma in the name do not split into two parts")
	assert.Equal(t, "alice", sales[0].Customer)
	assert.True(t, decimal.RequireFromString("12.50").Equal(sales[1].Total))
}

func TestTransactionJournal(t *testing.T) {
	dir := t.TempDir()
	journal := NewTransactionJournal(dir)

	require.NoError(t, journal.Append("Receipt for alice\nTOTAL: 10.00\n"))
	require.NoError(t, journal.Append("Receipt for bob\nTOTAL: 5.00"))

	assert.Equal(t, "Receipt for alice\nTOTAL: 10.00\n\nReceipt for bob\nTOTAL: 5.00\n\n", readFile(t, dir, constants.TransactionsFile))

	lines, err := journal.Lines()
	require.NoError(t, err)
	assert.Len(t, lines, 6)
}

func TestWriteLines_ReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.txt")

	require.NoError(t, writeLines(path, []string{"a", "b"}))
	require.NoError(t, writeLines(path, []string{"c"}))
	assert.Equal(t, "c\n", readFile(t, filepath.Join(dir, "nested"), "file.txt"))

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
