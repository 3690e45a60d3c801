// Package interaction reads single keystrokes from the terminal for the
// live analytics view.
package interaction

// KeyType classifies a keystroke.
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
)

// KeyEvent is one keystroke.
type KeyEvent struct {
	Key  rune
	Type KeyType
}

const (
	keyCtrlC  = 3
	keyEscape = 27
)

// Action is what a keystroke asks the live view to do.
type Action int

const (
	ActionNone Action = iota
	ActionDaily
	ActionWeekly
	ActionMonthly
	ActionRefresh
	ActionQuit
)

// ActionFor maps a keystroke to its action. Letters are case-insensitive.
func ActionFor(ev KeyEvent) Action {
	if ev.Type == KeyEscape {
		return ActionQuit
	}
	switch ev.Key {
	case 'd', 'D':
		return ActionDaily
	case 'w', 'W':
		return ActionWeekly
	case 'm', 'M':
		return ActionMonthly
	case 'r', 'R':
		return ActionRefresh
	case 'q', 'Q', keyCtrlC:
		return ActionQuit
	}
	return ActionNone
}

// parseInput decodes one read from the terminal. Arrow keys and other
// escape sequences are ignored.
func parseInput(buf []byte) *KeyEvent {
	if len(buf) == 0 {
		return nil
	}

	switch buf[0] {
	case keyCtrlC:
		return &KeyEvent{Key: keyCtrlC, Type: KeyChar}
	case keyEscape:
		if len(buf) == 1 {
			return &KeyEvent{Key: keyEscape, Type: KeyEscape}
		}
		return nil
	}
	return &KeyEvent{Key: rune(buf[0]), Type: KeyChar}
}
