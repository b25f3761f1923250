package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Shared styles for terminal output. Kept minimal so output degrades
// gracefully on terminals without color support.
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	styleSuccess = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	styleValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// printSuccess prints a green checkmark followed by msg.
func printSuccess(format string, args ...any) {
	fmt.Println(styleSuccess.Render("✓ ") + fmt.Sprintf(format, args...))
}

// printInfo prints a neutral informational message.
func printInfo(format string, args ...any) {
	fmt.Println(styleValue.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints a dimmed detail line, indented under a preceding message.
func printDetail(format string, args ...any) {
	fmt.Println(styleDim.Render("  " + fmt.Sprintf(format, args...)))
}
