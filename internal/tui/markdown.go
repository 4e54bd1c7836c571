package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders a challenge description with Glamour for
// terminal display and returns it as lines.
func RenderMarkdown(content string, wrap int) []string {
	if content == "" {
		return nil
	}
	if wrap <= 0 {
		wrap = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		// Fallback to plain text if rendering fails
		return strings.Split(content, "\n")
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return strings.Split(content, "\n")
	}

	lines := strings.Split(rendered, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
