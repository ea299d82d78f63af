// Package styles defines the visual styling for kilib's terminal output.
//
// Styles use semantic names and adaptive colors that adjust to light and
// dark terminal themes. Rendering degrades to plain text when stdout is
// not a terminal or color is disabled.
package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Semantic styles used by command output.
var (
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"}).
		Bold(true)

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})

	Header = lipgloss.NewStyle().
		Bold(true).
		Underline(true)

	LibraryName = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "26", Dark: "39"}).
			Bold(true)

	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "243", Dark: "246"})
)

// ColorEnabled reports whether styled output should be produced on stdout.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// Render applies style to s when color is enabled, and returns s verbatim
// otherwise.
func Render(style lipgloss.Style, s string) string {
	if !ColorEnabled() {
		return s
	}
	return style.Render(s)
}
