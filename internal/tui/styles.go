package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dareloop/dareloop/internal/tui/theme"
)

// Styles contains all reusable Lipgloss styles for the TUI.
type Styles struct {
	// Container styles
	Container   lipgloss.Style
	Card        lipgloss.Style
	ActiveCard  lipgloss.Style
	OverlayBox  lipgloss.Style
	HeaderTitle lipgloss.Style

	// Text styles
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	Highlight lipgloss.Style

	// Countdown styles
	CountdownOK   lipgloss.Style
	CountdownLow  lipgloss.Style
	CountdownDone lipgloss.Style

	// Status indicators
	StatusOK      lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style

	// Feed card pieces
	Username lipgloss.Style
	Caption  lipgloss.Style
	Liked    lipgloss.Style
	Unliked  lipgloss.Style

	// Footer
	Footer lipgloss.Style
}

// DefaultStyles returns the default Lipgloss styles using the current theme.
func DefaultStyles() Styles {
	theme := theme.Current

	return Styles{
		Container: lipgloss.NewStyle().
			Padding(1, 2),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Overlay).
			Padding(1, 2),

		ActiveCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2),

		OverlayBox: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Secondary).
			Padding(1, 2),

		HeaderTitle: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Text),

		Muted: lipgloss.NewStyle().
			Foreground(theme.TextMuted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true),

		Highlight: lipgloss.NewStyle().
			Foreground(theme.TextHighlight).
			Bold(true),

		CountdownOK: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		CountdownLow: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		CountdownDone: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		StatusOK: lipgloss.NewStyle().
			Foreground(theme.Success),

		StatusWarning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		StatusError: lipgloss.NewStyle().
			Foreground(theme.Error),

		StatusInfo: lipgloss.NewStyle().
			Foreground(theme.Info),

		Username: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		Caption: lipgloss.NewStyle().
			Foreground(theme.Text).
			Italic(true),

		Liked: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Unliked: lipgloss.NewStyle().
			Foreground(theme.TextMuted),

		Footer: lipgloss.NewStyle().
			Foreground(theme.TextMuted),
	}
}
