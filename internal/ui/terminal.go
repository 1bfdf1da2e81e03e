package ui

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ShouldUseColorFor reports whether ANSI colors should be used on w. It
// applies NO_COLOR (https://no-color.org), CLICOLOR_FORCE and CLICOLOR, in
// that order, then falls back to whether w is a terminal.
// Writers without a file descriptor never get color unless forced.
func ShouldUseColorFor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
