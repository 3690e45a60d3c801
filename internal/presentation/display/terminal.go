// Package display manages the terminal screen for the live analytics view.
package display

import (
	"fmt"
	"io"
	"strings"
)

const (
	seqEnterAlt    = "\033[?1049h"
	seqExitAlt     = "\033[?1049l"
	seqClear       = "\033[2J"
	seqClearScroll = "\033[3J"
	seqHome        = "\033[H"
	seqHideCursor  = "\033[?25l"
	seqShowCursor  = "\033[?25h"
)

// Screen redraws whole frames on a terminal. When alternate is set the frames
// go to the alternate buffer and the shell scrollback is left untouched.
type Screen struct {
	w           io.Writer
	alternate   bool
	inAlternate bool
}

func NewScreen(w io.Writer, alternate bool) *Screen {
	return &Screen{w: w, alternate: alternate}
}

// Enter prepares the terminal for drawing.
func (s *Screen) Enter() {
	if s.alternate && !s.inAlternate {
		fmt.Fprint(s.w, seqEnterAlt)
		s.inAlternate = true
	}
	fmt.Fprint(s.w, seqHideCursor+seqClear+seqHome)
}

// Exit restores the terminal.
func (s *Screen) Exit() {
	fmt.Fprint(s.w, seqShowCursor)
	if s.inAlternate {
		fmt.Fprint(s.w, seqExitAlt)
		s.inAlternate = false
	}
}

// Frame clears the screen and homes the cursor before a redraw.
func (s *Screen) Frame() {
	fmt.Fprint(s.w, seqClear+seqClearScroll+seqHome)
}

// Footer prints a separator and a status line below the frame.
func (s *Screen) Footer(width int, status string) {
	if width <= 0 {
		width = len(status)
	}
	fmt.Fprintln(s.w)
	fmt.Fprintln(s.w, strings.Repeat("─", width))
	fmt.Fprintln(s.w, status)
}
