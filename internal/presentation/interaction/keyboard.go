//go:build linux || darwin

package interaction

import (
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

const readRetryDelay = 50 * time.Millisecond

// KeyboardReader puts stdin in raw mode and delivers keystrokes on a channel.
type KeyboardReader struct {
	oldState *unix.Termios
	in       io.Reader
	input    chan KeyEvent
	stop     chan struct{}
}

// NewKeyboardReader switches the terminal to raw mode and starts reading.
func NewKeyboardReader() (*KeyboardReader, error) {
	kr := &KeyboardReader{
		in:    os.Stdin,
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}

	if err := kr.enableRawMode(); err != nil {
		return nil, err
	}

	go kr.readInput()
	return kr, nil
}

// readInput forwards keystrokes until Close or end of input. Other read
// errors are retried after readRetryDelay.
func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 3)
	for {
		select {
		case <-kr.stop:
			return
		default:
		}

		n, err := kr.in.Read(buf)
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil || n == 0 {
			select {
			case <-kr.stop:
				return
			case <-time.After(readRetryDelay):
			}
			continue
		}

		if event := parseInput(buf[:n]); event != nil {
			select {
			case kr.input <- *event:
			case <-kr.stop:
				return
			}
		}
	}
}

// Events returns the keystroke channel.
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops reading and restores the terminal.
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	return kr.disableRawMode()
}

func (kr *KeyboardReader) enableRawMode() error {
	fd := int(os.Stdin.Fd())

	oldState, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	kr.oldState = oldState

	// ISIG stays on so Ctrl+C still interrupts.
	newState := *oldState
	newState.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	newState.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	newState.Cflag |= unix.CS8
	newState.Cc[unix.VMIN] = 1
	newState.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(fd, ioctlSetTermios, &newState)
}

func (kr *KeyboardReader) disableRawMode() error {
	if kr.oldState == nil {
		return nil
	}
	return unix.IoctlSetTermios(int(os.Stdin.Fd()), ioctlSetTermios, kr.oldState)
}
