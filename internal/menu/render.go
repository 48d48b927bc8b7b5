package menu

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/moasq/termpick/internal/terminal"
)

// visibleRows is the number of option rows that fit on a terminal of the
// given height. The bottom row is kept free for prompts.
func visibleRows(termRows int) int {
	return max(1, termRows-1)
}

// render clears the screen and draws the visible window of st, one option
// per row, each padded to the full terminal width.
func render(p terminal.Port, st *State, selected, normal Style, cols, rows int) error {
	if err := p.ClearScreen(); err != nil {
		return fmt.Errorf("failed to clear screen: %w", err)
	}

	n := min(rows, len(st.Options))
	for i := 0; i < n; i++ {
		idx := st.Scroll + i
		if idx >= len(st.Options) {
			break
		}

		style := normal
		if idx == st.Selected {
			style = selected
		}

		if err := p.MoveCursorTo(0, i); err != nil {
			return fmt.Errorf("failed to move cursor: %w", err)
		}
		if _, err := io.WriteString(p, style.Render(padRow(st.Options[idx], cols))); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	return nil
}

var rowSanitizer = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")

// padRow fits an option into exactly width display cells so a shorter row
// overwrites whatever a longer one left behind.
func padRow(option string, width int) string {
	if width <= 0 {
		return ""
	}
	row := runewidth.Truncate(rowSanitizer.Replace(option), width, "")
	return runewidth.FillRight(row, width)
}
