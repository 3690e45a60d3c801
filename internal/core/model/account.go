package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Role distinguishes the two kinds of login.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Customer is a stored customer credential.
type Customer struct {
	Username string
	Password string
}

// Profile holds a customer's name parts; any of them may be empty.
type Profile struct {
	Username   string
	FirstName  string
	MiddleName string
	LastName   string
}

// FullName joins the non-empty name parts.
func (p Profile) FullName() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.FirstName, p.MiddleName, p.LastName} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// MenuItem is a sellable item.
type MenuItem struct {
	Name     string
	Price    decimal.Decimal
	Category string
}
