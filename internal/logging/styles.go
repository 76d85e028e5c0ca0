package logging

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Level tag palette.
var (
	colorInfo    = lipgloss.Color("245") // Gray
	colorVerbose = lipgloss.Color("240") // Dark gray
	colorSuccess = lipgloss.Color("34")  // Green
	colorWarning = lipgloss.Color("214") // Orange
	colorError   = lipgloss.Color("196") // Red
)

type level int

const (
	levelVerbose level = iota
	levelInfo
	levelSuccess
	levelWarning
	levelError
)

var levelTags = map[level]string{
	levelVerbose: "VERBOSE",
	levelInfo:    "INFO",
	levelSuccess: "SUCCESS",
	levelWarning: "WARNING",
	levelError:   "ERROR",
}

var levelStyles = map[level]lipgloss.Style{
	levelVerbose: lipgloss.NewStyle().Foreground(colorVerbose),
	levelInfo:    lipgloss.NewStyle().Foreground(colorInfo),
	levelSuccess: lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
	levelWarning: lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
	levelError:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
}

// tag renders the bracketed level tag, colored when color is true.
func (lv level) tag(color bool) string {
	t := "[" + levelTags[lv] + "]"
	if !color {
		return t
	}
	return levelStyles[lv].Render(t)
}

// ColorEnabled reports whether output to f should be colored.
//
// Returns false if:
//   - NO_COLOR is set (https://no-color.org)
//   - f is not a terminal (redirected output, CI logs)
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
