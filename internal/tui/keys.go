package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// Keymap defines all key bindings for the TUI.
type Keymap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Run actions
	Done    key.Binding
	Skip    key.Binding
	GiveUp  key.Binding
	Submit  key.Binding
	NoProof key.Binding

	// Feed actions
	Like     key.Binding
	Comments key.Binding
	Mute     key.Binding
	Hold     key.Binding

	// Global
	Feed  key.Binding
	Share key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// DefaultKeymap returns the default key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous media"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next media"),
		),

		Done: key.NewBinding(
			key.WithKeys("d", "enter"),
			key.WithHelp("d", "did it"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip challenge"),
		),
		GiveUp: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "give up"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit proof"),
		),
		NoProof: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "continue without proof"),
		),

		Like: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "like"),
		),
		Comments: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comments"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Hold: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "hold to pause"),
		),

		Feed: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch run/feed"),
		),
		Share: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy share link"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// QuickHelpText returns condensed help text for the footer.
func (k Keymap) QuickHelpText() string {
	return "d did it • s skip • g give up • tab feed • q quit"
}

// FeedHelpText returns condensed help text for the feed footer.
func (k Keymap) FeedHelpText() string {
	return "↑↓ scroll • ←→ media • x like • c comments • y share • m mute • tab run • q quit"
}
