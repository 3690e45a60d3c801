package store

import (
	"path/filepath"

	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/util"
)

// Mailbox is an append-only notification file. Each entry is one line
// prefixed with "[yyyy-MM-dd HH:mm:ss] ".
type Mailbox struct {
	path  string
	clock *util.TimeProvider
}

// NewMailbox returns the mailbox stored in file name under dataDir.
func NewMailbox(dataDir, name string, clock *util.TimeProvider) *Mailbox {
	if clock == nil {
		clock = util.GetTimeProvider()
	}
	return &Mailbox{path: filepath.Join(dataDir, name), clock: clock}
}

// AdminMailbox returns the mailbox read by the administrator.
func AdminMailbox(dataDir string, clock *util.TimeProvider) *Mailbox {
	return NewMailbox(dataDir, constants.AdminNotificationsFile, clock)
}

// CustomerMailbox returns the mailbox shared by all customers.
func CustomerMailbox(dataDir string, clock *util.TimeProvider) *Mailbox {
	return NewMailbox(dataDir, constants.CustomerNotificationsFile, clock)
}

// Add appends a timestamped message.
func (m *Mailbox) Add(msg string) error {
	line := "[" + m.clock.FormatNow(constants.NotificationTimestampLayout) + "] " + msg + "\n"
	return appendText(m.path, line)
}

// List returns every entry, oldest first. A missing file is empty.
func (m *Mailbox) List() ([]string, error) {
	return readLines(m.path)
}
