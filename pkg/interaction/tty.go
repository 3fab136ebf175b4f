package interaction

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return IsTTY(os.Stdin)
}
