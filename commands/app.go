package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/penwyp/go-pos/internal/application/account"
	"github.com/penwyp/go-pos/internal/application/admin"
	"github.com/penwyp/go-pos/internal/application/analytics"
	"github.com/penwyp/go-pos/internal/application/checkout"
	"github.com/penwyp/go-pos/internal/config"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/data/orderlog"
	"github.com/penwyp/go-pos/internal/data/store"
	"github.com/penwyp/go-pos/internal/util"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("password required: pass --password or run in a terminal")

// passwordReader prompts for a password when --password is omitted.
var passwordReader = promptPassword

// app holds the services shared by the subcommands of one invocation.
type app struct {
	cfg   config.Config
	flags *globalFlags
	clock *util.TimeProvider

	orders       *orderlog.Log
	menu         *store.MenuStore
	sales        *store.SalesLedger
	journal      *store.TransactionJournal
	adminMail    *store.Mailbox
	customerMail *store.Mailbox
	accounts     *account.Service
	admin        *admin.Service
	checkout     *checkout.Service
	analytics    *analytics.Service
}

func (a *app) wire(cfg config.Config, g *globalFlags) {
	dir := cfg.DataDir
	a.cfg = cfg
	a.flags = g
	a.clock = util.GetTimeProvider()

	a.orders = orderlog.New(dir, a.clock)
	a.menu = store.NewMenuStore(dir)
	a.sales = store.NewSalesLedger(dir)
	a.journal = store.NewTransactionJournal(dir)
	a.adminMail = store.AdminMailbox(dir, a.clock)
	a.customerMail = store.CustomerMailbox(dir, a.clock)

	a.accounts = account.NewService(account.Config{
		AdminUsername: cfg.Admin.Username,
		AdminPassword: cfg.Admin.Password,
	}, store.NewAccountStore(dir), a.customerMail)

	a.admin = admin.NewService(admin.Deps{
		Menu:      a.menu,
		Orders:    a.orders,
		Customers: a.customerMail,
		Admin:     a.adminMail,
		Currency:  cfg.Currency,
	})

	a.checkout = checkout.NewService(checkout.Deps{
		Orders:   a.orders,
		Sales:    a.sales,
		Receipts: a.journal,
		Admin:    a.adminMail,
		Clock:    a.clock,
		Currency: cfg.Currency,
	})

	a.analytics = analytics.NewService(a.orders, analytics.Options{
		TopItems:     cfg.Analytics.TopItems,
		TopCustomers: cfg.Analytics.TopCustomers,
	}, a.clock)
}

// password returns --password or prompts for it.
func (a *app) password(prompt string) (string, error) {
	if a.flags.password != "" {
		return a.flags.password, nil
	}
	return passwordReader(prompt)
}

// login authenticates --user as role.
func (a *app) login(role model.Role) (account.Session, error) {
	user := strings.TrimSpace(a.flags.user)
	if user == "" {
		return account.Session{}, fmt.Errorf("--user is required")
	}
	pw, err := a.password("Password: ")
	if err != nil {
		return account.Session{}, err
	}
	return a.accounts.Login(role, user, pw)
}

// loginAny authenticates --user as the administrator when it names the
// configured admin account, otherwise as a customer.
func (a *app) loginAny() (account.Session, error) {
	if strings.TrimSpace(a.flags.user) == a.cfg.Admin.Username {
		return a.login(model.RoleAdmin)
	}
	return a.login(model.RoleCustomer)
}

func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errNotTerminal
	}
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
