package util

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider is a timezone-aware clock shared by the whole process
type TimeProvider struct {
	mu       sync.RWMutex
	location *time.Location
	clock    func() time.Time
}

var (
	globalTimeProvider *TimeProvider
	mu                 sync.Mutex
)

// InitializeTimeProvider installs the global provider for the given timezone.
func InitializeTimeProvider(timezone string) error {
	provider := &TimeProvider{clock: time.Now}
	if err := provider.SetTimezone(timezone); err != nil {
		return err
	}

	mu.Lock()
	globalTimeProvider = provider
	mu.Unlock()
	return nil
}

// GetTimeProvider returns the global provider, defaulting to Local.
func GetTimeProvider() *TimeProvider {
	mu.Lock()
	defer mu.Unlock()
	if globalTimeProvider == nil {
		globalTimeProvider = &TimeProvider{location: time.Local, clock: time.Now}
	}
	return globalTimeProvider
}

// SetTimezone updates the provider location. "" and "Local" mean time.Local.
func (tp *TimeProvider) SetTimezone(timezone string) error {
	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, Asia/Manila, America/New_York, Europe/London", timezone, err)
		}
		loc = l
	}

	tp.mu.Lock()
	tp.location = loc
	tp.mu.Unlock()
	return nil
}

// SetClock overrides the wall clock; tests use it to freeze time.
func (tp *TimeProvider) SetClock(clock func() time.Time) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	if clock == nil {
		clock = time.Now
	}
	tp.clock = clock
}

// Location returns the configured location.
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

// Now returns the current time in the configured timezone.
func (tp *TimeProvider) Now() time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.clock().In(tp.location)
}

// In converts a time to the configured timezone.
func (tp *TimeProvider) In(t time.Time) time.Time {
	return t.In(tp.Location())
}

// Format formats t in the configured timezone.
func (tp *TimeProvider) Format(t time.Time, layout string) string {
	return t.In(tp.Location()).Format(layout)
}

// FormatNow formats the current time.
func (tp *TimeProvider) FormatNow(layout string) string {
	return tp.Now().Format(layout)
}

// ParseLocal parses a zone-less timestamp as wall time in the configured timezone.
func (tp *TimeProvider) ParseLocal(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, tp.Location())
}
