// Package ui runs the interactive chooser: raw-mode terminal handling, the
// key reader goroutine and the loop that alternates between user input and
// fetch ticks.
package ui

import (
	"os"

	"golang.org/x/term"

	"github.com/saf/completers/internal/cerrors"
)

// Terminal wraps the controlling tty. The chooser talks to /dev/tty
// directly: stdout may be piped to the shell integration, and the result
// goes to stderr, so neither is available for drawing.
type Terminal struct {
	tty   *os.File
	state *term.State
}

// OpenTerminal opens the controlling tty.
func OpenTerminal() (*Terminal, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, cerrors.NewTerminalError("failed to open /dev/tty", err)
	}
	return &Terminal{tty: tty}, nil
}

// MakeRaw switches the tty to raw mode so single keystrokes arrive without
// line buffering or echo.
func (t *Terminal) MakeRaw() error {
	state, err := term.MakeRaw(int(t.tty.Fd()))
	if err != nil {
		return cerrors.NewTerminalError("failed to enter raw mode", err)
	}
	t.state = state
	return nil
}

// Restore puts the tty back into the mode it was in before MakeRaw.
func (t *Terminal) Restore() error {
	if t.state == nil {
		return nil
	}
	state := t.state
	t.state = nil
	if err := term.Restore(int(t.tty.Fd()), state); err != nil {
		return cerrors.NewTerminalError("failed to restore terminal", err)
	}
	return nil
}

// Width returns the terminal width in columns, with a conservative fallback
// when the size cannot be determined.
func (t *Terminal) Width() int {
	width, _, err := term.GetSize(int(t.tty.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// File exposes the tty for reading keys and writing frames.
func (t *Terminal) File() *os.File { return t.tty }

// Close restores the terminal state and closes the tty.
func (t *Terminal) Close() error {
	_ = t.Restore()
	return t.tty.Close()
}
