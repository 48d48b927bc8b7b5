package terminal

import (
	"fmt"

	"golang.org/x/term"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Fallback dimensions when the terminal reports a zero size.
const (
	defaultRows = 24
	defaultCols = 80
)

// Size returns the terminal height and width.
func (t *Term) Size() (rows, cols int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	if h <= 0 {
		h = defaultRows
	}
	if w <= 0 {
		w = defaultCols
	}
	return h, w, nil
}

// ClearScreen erases the screen and homes the cursor.
func (t *Term) ClearScreen() error {
	return t.rawWrite(clearScreen)
}

// MoveCursorTo positions the cursor at 0-based col, row.
func (t *Term) MoveCursorTo(col, row int) error {
	return t.rawWrite(fmt.Sprintf("\033[%d;%dH", row+1, col+1))
}

func (t *Term) ShowCursor() error {
	return t.rawWrite(showCursor)
}

func (t *Term) HideCursor() error {
	return t.rawWrite(hideCursor)
}

func (t *Term) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// rawWrite writes directly to stdout in raw mode.
func (t *Term) rawWrite(s string) error {
	_, err := t.out.WriteString(s)
	return err
}
