// Package account handles login, registration and account updates for the
// administrator and customers.
package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/data/store"
	"github.com/penwyp/go-pos/internal/util"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidField       = errors.New("fields must not contain ':' or line breaks")
	ErrUnknownRole        = errors.New("unknown role")
)

// AccountRepository loads and saves account snapshots.
type AccountRepository interface {
	Load() (*store.Accounts, error)
	Save(*store.Accounts) error
}

// Notifier receives customer-facing notifications.
type Notifier interface {
	Add(msg string) error
}

// Session identifies a logged-in user.
type Session struct {
	Role     model.Role
	Username string
}

// Config holds the administrator credentials.
type Config struct {
	AdminUsername string
	AdminPassword string
}

// Service implements the account operations.
type Service struct {
	config   Config
	repo     AccountRepository
	notifier Notifier
}

func NewService(config Config, repo AccountRepository, notifier Notifier) *Service {
	return &Service{config: config, repo: repo, notifier: notifier}
}

// Login checks credentials for the requested role.
func (s *Service) Login(role model.Role, username, password string) (Session, error) {
	switch role {
	case model.RoleAdmin:
		if username != s.config.AdminUsername || password != s.config.AdminPassword {
			return Session{}, ErrInvalidCredentials
		}
	case model.RoleCustomer:
		accounts, err := s.repo.Load()
		if err != nil {
			return Session{}, err
		}
		c, ok := accounts.Find(username)
		if !ok || c.Password != password {
			return Session{}, ErrInvalidCredentials
		}
	default:
		return Session{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	util.LogInfo("login", util.F("role", string(role)), util.F("user", username))
	return Session{Role: role, Username: username}, nil
}

// RegisterRequest carries a new customer's details.
type RegisterRequest struct {
	Username   string
	Password   string
	Confirm    string
	FirstName  string
	MiddleName string
	LastName   string
}

// Register creates a customer account and its profile.
func (s *Service) Register(req RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" || req.Confirm == "" {
		return ErrMissingCredentials
	}
	if req.Password != req.Confirm {
		return ErrPasswordMismatch
	}
	if !validFields(username, req.Password, req.FirstName, req.MiddleName, req.LastName) {
		return ErrInvalidField
	}

	accounts, err := s.repo.Load()
	if err != nil {
		return err
	}
	if _, exists := accounts.Find(username); exists || username == s.config.AdminUsername {
		return ErrUsernameTaken
	}

	accounts.Put(model.Customer{Username: username, Password: req.Password})
	accounts.Profiles[username] = model.Profile{
		Username:   username,
		FirstName:  strings.TrimSpace(req.FirstName),
		MiddleName: strings.TrimSpace(req.MiddleName),
		LastName:   strings.TrimSpace(req.LastName),
	}

	if err := s.repo.Save(accounts); err != nil {
		util.LogError("save accounts failed", util.F("error", err.Error()))
		return err
	}
	util.LogInfo("customer registered", util.F("user", username))
	return nil
}

// UpdateRequest changes a customer's username, password or profile. Empty
// password and profile fields keep their current values.
type UpdateRequest struct {
	CurrentUsername string
	NewUsername     string
	NewPassword     string
	FirstName       string
	MiddleName      string
	LastName        string
}

// Update applies req and returns the resulting username. Orders already in
// the log keep the name they were placed under.
func (s *Service) Update(req UpdateRequest) (string, error) {
	newName := strings.TrimSpace(req.NewUsername)
	if newName == "" {
		return "", ErrMissingCredentials
	}
	if !validFields(newName, req.NewPassword, req.FirstName, req.MiddleName, req.LastName) {
		return "", ErrInvalidField
	}

	accounts, err := s.repo.Load()
	if err != nil {
		return "", err
	}

	current, ok := accounts.Find(req.CurrentUsername)
	if !ok {
		return "", ErrUserNotFound
	}
	if newName != req.CurrentUsername {
		if _, taken := accounts.Find(newName); taken || newName == s.config.AdminUsername {
			return "", ErrUsernameTaken
		}
		accounts.Rename(req.CurrentUsername, newName)
	}

	if req.NewPassword != "" {
		current.Password = req.NewPassword
	}
	current.Username = newName
	accounts.Put(current)

	profile := accounts.Profiles[newName]
	profile.Username = newName
	profile.FirstName = keep(profile.FirstName, req.FirstName)
	profile.MiddleName = keep(profile.MiddleName, req.MiddleName)
	profile.LastName = keep(profile.LastName, req.LastName)
	accounts.Profiles[newName] = profile

	if err := s.repo.Save(accounts); err != nil {
		util.LogError("save accounts failed", util.F("error", err.Error()))
		return "", err
	}

	if s.notifier != nil {
		if err := s.notifier.Add("Account updated for user: " + newName); err != nil {
			util.LogWarn("notify account update failed", util.F("error", err.Error()))
		}
	}
	util.LogInfo("account updated", util.F("from", req.CurrentUsername), util.F("to", newName))
	return newName, nil
}

// Profile returns the stored profile for username, if any.
func (s *Service) Profile(username string) (model.Profile, bool, error) {
	accounts, err := s.repo.Load()
	if err != nil {
		return model.Profile{}, false, err
	}
	if _, ok := accounts.Find(username); !ok {
		return model.Profile{}, false, ErrUserNotFound
	}
	p, ok := accounts.Profiles[username]
	return p, ok, nil
}

func keep(current, update string) string {
	if v := strings.TrimSpace(update); v != "" {
		return v
	}
	return current
}

func validFields(values ...string) bool {
	for _, v := range values {
		if strings.ContainsAny(v, ":\r\n") {
			return false
		}
	}
	return true
}
