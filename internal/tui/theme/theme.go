// Package theme provides color theming for the TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Background colors
	Background lipgloss.AdaptiveColor
	Surface    lipgloss.AdaptiveColor
	Overlay    lipgloss.AdaptiveColor

	// Text colors
	Text          lipgloss.AdaptiveColor
	TextMuted     lipgloss.AdaptiveColor
	TextHighlight lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor
}

// DareTheme is the default high-contrast color scheme.
var DareTheme = Theme{
	Primary:   lipgloss.AdaptiveColor{Light: "#C4003F", Dark: "#FF4D6D"}, // Hot pink-red
	Secondary: lipgloss.AdaptiveColor{Light: "#4B3BBF", Dark: "#7B61FF"}, // Violet
	Accent:    lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD23F"}, // Gold

	Background: lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0D0D0D"},
	Surface:    lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#1A1A1A"},
	Overlay:    lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#2D2D2D"},

	Text:          lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#E5E5E5"},
	TextMuted:     lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#6B6B6B"},
	TextHighlight: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},

	Success: lipgloss.AdaptiveColor{Light: "#008000", Dark: "#00FF41"},
	Warning: lipgloss.AdaptiveColor{Light: "#CC5500", Dark: "#FF6B35"},
	Error:   lipgloss.AdaptiveColor{Light: "#CC0033", Dark: "#FF0040"},
	Info:    lipgloss.AdaptiveColor{Light: "#0088CC", Dark: "#00D4FF"},
}

// MidnightTheme is a cooler, lower-saturation alternative.
var MidnightTheme = Theme{
	Primary:   lipgloss.AdaptiveColor{Light: "#0077AA", Dark: "#5AC8FA"},
	Secondary: lipgloss.AdaptiveColor{Light: "#3634A3", Dark: "#5E5CE6"},
	Accent:    lipgloss.AdaptiveColor{Light: "#B8A100", Dark: "#FFD60A"},

	Background: lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"},
	Surface:    lipgloss.AdaptiveColor{Light: "#F0F0F0", Dark: "#111111"},
	Overlay:    lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#222222"},

	Text:          lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},
	TextMuted:     lipgloss.AdaptiveColor{Light: "#888888", Dark: "#888888"},
	TextHighlight: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},

	Success: lipgloss.AdaptiveColor{Light: "#228B22", Dark: "#32D74B"},
	Warning: lipgloss.AdaptiveColor{Light: "#CC7700", Dark: "#FF9F0A"},
	Error:   lipgloss.AdaptiveColor{Light: "#CC0022", Dark: "#FF453A"},
	Info:    lipgloss.AdaptiveColor{Light: "#0077BB", Dark: "#64D2FF"},
}

// Current is the active theme (can be changed at runtime).
var Current = DareTheme
