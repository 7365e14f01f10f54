package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Column widths for the email table.
const (
	ColWidthKey        = 36
	ColWidthRecipients = 28
	ColWidthSubject    = 30
	ColWidthTime       = 10
)

var (
	// Colors
	Primary = lipgloss.Color("#1cc2e3")
	Green   = lipgloss.Color("#10B981")
	Red     = lipgloss.Color("#EF4444")
	Gray    = lipgloss.Color("#6B7280")
	White   = lipgloss.Color("#FFFFFF")

	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	// Table cells
	KeyStyle       = lipgloss.NewStyle().Foreground(Gray)
	RecipientStyle = lipgloss.NewStyle().Foreground(White)
	SubjectStyle   = lipgloss.NewStyle().Bold(true)
	TimeStyle      = lipgloss.NewStyle().Foreground(Gray)

	// Common result styles
	PassStyle = lipgloss.NewStyle().Bold(true).Foreground(Green)
	FailStyle = lipgloss.NewStyle().Bold(true).Foreground(Red)

	MutedStyle = lipgloss.NewStyle().Foreground(Gray)

	// Label style for key-value displays
	LabelStyle = lipgloss.NewStyle().Foreground(Gray).Width(14)
)

// FormatLinkFound renders whether an email carries a magic link.
func FormatLinkFound(found bool) string {
	if found {
		return PassStyle.Render("yes")
	}
	return FailStyle.Render("no")
}

// PrintSuccess prints a success message with checkmark
func PrintSuccess(msg string) string {
	return PassStyle.Render("✓ " + msg)
}

// PrintInfo prints an info message
func PrintInfo(msg string) string {
	return MutedStyle.Render("• " + msg)
}
