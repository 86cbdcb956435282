package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for scan output
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers
	SuccessColor = lipgloss.Color("#43BF6D") // Green - responders found
	WarningColor = lipgloss.Color("#FFA500") // Orange - empty results
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Shared styles for the scan report
var (
	// HeaderStyle is for the report title line
	HeaderStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// AddrStyle is for responder addresses
	AddrStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	// LabelStyle is for field labels (e.g., "Payload:")
	LabelStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// ValueStyle is for field values
	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// EmptyStyle is for the "no nodes found" notice
	EmptyStyle = lipgloss.NewStyle().
			Foreground(WarningColor)
)

// IsTerminal reports whether stdout is attached to a terminal.
// Styled output is only used interactively; pipes get plain text.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
