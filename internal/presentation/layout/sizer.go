// Package layout measures and pads terminal text by display width so
// tables stay aligned with wide glyphs such as the peso sign or CJK names.
package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-pos/internal/util"
	"golang.org/x/term"
)

const (
	fallbackWidth = 80
	minWidth      = 40
)

// Sizer measures strings in terminal cells.
type Sizer struct{}

// DisplayWidth returns the number of terminal cells s occupies.
func (Sizer) DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadString pads s with spaces to width cells. Strings already at least
// width cells wide are returned unchanged.
func (z Sizer) PadString(s string, width int, leftAlign bool) string {
	actual := z.DisplayWidth(s)
	if actual >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// Truncate shortens s to at most width cells, ending with "…" when cut.
func (z Sizer) Truncate(s string, width int) string {
	if z.DisplayWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// TerminalWidth returns the width of stdout, or a fallback when stdout is
// not a terminal or is implausibly narrow.
func (Sizer) TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < minWidth {
		w = fallbackWidth
	}
	util.LogDebugf("terminal width %d", w)
	return w
}
