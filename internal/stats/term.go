package stats

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/verte-zerg/heropick/internal/roster"
)

const (
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var categoryColors = map[roster.Category]string{
	roster.Tank:   "\x1b[34m",
	roster.DPS:    "\x1b[31m",
	roster.Healer: "\x1b[32m",
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// ShouldUseColor reports whether ANSI colours should be written to w.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(w)
}

// Colorize wraps text in the ANSI colour of category c when useColor is set.
func Colorize(c roster.Category, text string, useColor bool) string {
	code, ok := categoryColors[c]
	if !useColor || !ok {
		return text
	}
	return code + text + colorReset
}
