package store

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/util"
)

// Accounts is a snapshot of customers.txt and profiles.txt.
type Accounts struct {
	Customers []model.Customer
	Profiles  map[string]model.Profile
}

// Find returns the customer with the given username.
func (a *Accounts) Find(username string) (model.Customer, bool) {
	if i := a.index(username); i >= 0 {
		return a.Customers[i], true
	}
	return model.Customer{}, false
}

// Put inserts or replaces a customer, keeping file order.
func (a *Accounts) Put(c model.Customer) {
	if i := a.index(c.Username); i >= 0 {
		a.Customers[i] = c
		return
	}
	a.Customers = append(a.Customers, c)
}

// Rename changes a username in place, moving its profile along.
func (a *Accounts) Rename(from, to string) {
	if i := a.index(from); i >= 0 {
		a.Customers[i].Username = to
	}
	if p, ok := a.Profiles[from]; ok {
		delete(a.Profiles, from)
		p.Username = to
		a.Profiles[to] = p
	}
}

func (a *Accounts) index(username string) int {
	for i, c := range a.Customers {
		if c.Username == username {
			return i
		}
	}
	return -1
}

// AccountStore loads and saves Accounts snapshots.
type AccountStore struct {
	customersPath string
	profilesPath  string
}

// NewAccountStore returns a store over the account files in dataDir.
func NewAccountStore(dataDir string) *AccountStore {
	return &AccountStore{
		customersPath: filepath.Join(dataDir, constants.CustomersFile),
		profilesPath:  filepath.Join(dataDir, constants.ProfilesFile),
	}
}

// Load reads both files. Lines that do not split into the expected number
// of colon separated parts are ignored; a repeated username keeps the last
// value.
func (s *AccountStore) Load() (*Accounts, error) {
	accounts := &Accounts{Profiles: make(map[string]model.Profile)}

	lines, err := readLines(s.customersPath)
	if err != nil {
		return nil, err
	}
	for i, line := range lines {
		parts := strings.Split(line, ":")
		if len(parts) != 2 || parts[0] == "" {
			util.LogDebugf("skip malformed customer line %d", i+1)
			continue
		}
		accounts.Put(model.Customer{Username: parts[0], Password: parts[1]})
	}

	lines, err = readLines(s.profilesPath)
	if err != nil {
		return nil, err
	}
	for i, line := range lines {
		parts := strings.SplitN(line, ":", 4)
		if len(parts) != 4 || parts[0] == "" {
			util.LogDebugf("skip malformed profile line %d", i+1)
			continue
		}
		accounts.Profiles[parts[0]] = model.Profile{
			Username:   parts[0],
			FirstName:  parts[1],
			MiddleName: parts[2],
			LastName:   parts[3],
		}
	}

	return accounts, nil
}

// Save rewrites both files from the snapshot. Profiles follow customer
// order; profiles without a customer are written last, sorted by name.
func (s *AccountStore) Save(accounts *Accounts) error {
	customers := make([]string, 0, len(accounts.Customers))
	profiles := make([]string, 0, len(accounts.Profiles))
	written := make(map[string]bool, len(accounts.Profiles))

	for _, c := range accounts.Customers {
		customers = append(customers, c.Username+":"+c.Password)
		if p, ok := accounts.Profiles[c.Username]; ok {
			profiles = append(profiles, profileLine(c.Username, p))
			written[c.Username] = true
		}
	}

	var orphans []string
	for name := range accounts.Profiles {
		if !written[name] {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)
	for _, name := range orphans {
		profiles = append(profiles, profileLine(name, accounts.Profiles[name]))
	}

	if err := writeLines(s.customersPath, customers); err != nil {
		return err
	}
	return writeLines(s.profilesPath, profiles)
}

func profileLine(username string, p model.Profile) string {
	return strings.Join([]string{username, p.FirstName, p.MiddleName, p.LastName}, ":")
}
