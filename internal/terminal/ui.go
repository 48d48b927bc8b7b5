package terminal

import (
	"fmt"
	"io"
	"os"
)

// Colors for terminal output.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
)

// Messages go to stderr so stdout carries only the selected value.
var messageOut io.Writer = os.Stderr

// Success prints a green success message.
func Success(msg string) {
	fmt.Fprintf(messageOut, "%s%s✓%s %s\n", Bold, Green, Reset, msg)
}

// Warning prints a yellow warning message.
func Warning(msg string) {
	fmt.Fprintf(messageOut, "%s%s!%s %s\n", Bold, Yellow, Reset, msg)
}

// Detail prints an indented detail line.
func Detail(label, value string) {
	fmt.Fprintf(messageOut, "  %s%s:%s %s\n", Dim, label, Reset, value)
}
