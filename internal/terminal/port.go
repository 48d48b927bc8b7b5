package terminal

import (
	"fmt"
	"strings"
)

// Port is the terminal capability the menu draws on and reads keys from.
// Term is the real implementation; tests use scripted fakes.
type Port interface {
	// Size returns the terminal height and width in cells.
	Size() (rows, cols int, err error)
	ClearScreen() error
	// MoveCursorTo positions the cursor at a 0-based column and row.
	MoveCursorTo(col, row int) error
	ShowCursor() error
	HideCursor() error
	// ReadKey blocks until one key is available.
	ReadKey() (Key, error)
	// ReadLine blocks until a full line has been entered.
	ReadLine() (string, error)
	Write(p []byte) (int, error)
}

// Prompt writes "label: " on the bottom row, shows the cursor and reads one
// line of free text from the user.
func Prompt(p Port, label string) (string, error) {
	rows, _, err := p.Size()
	if err != nil {
		return "", fmt.Errorf("failed to query terminal size: %w", err)
	}
	row := rows - 1
	if row < 0 {
		row = 0
	}
	if err := p.MoveCursorTo(0, row); err != nil {
		return "", fmt.Errorf("failed to move cursor: %w", err)
	}
	if _, err := fmt.Fprintf(p, "%s: ", label); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	if err := p.ShowCursor(); err != nil {
		return "", fmt.Errorf("failed to show cursor: %w", err)
	}
	line, err := p.ReadLine()
	if err != nil {
		return "", fmt.Errorf("failed to read line: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
