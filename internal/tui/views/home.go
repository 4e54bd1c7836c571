package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dareloop/dareloop/internal/tui/theme"
)

// HomeAction represents an action requested by the home view.
type HomeAction int

const (
	HomeActionNone HomeAction = iota
	// HomeActionContinue resumes the active run (or starts the new one
	// the bootstrap created).
	HomeActionContinue
	HomeActionOpenFeed
)

// HomeView is the landing screen: it shows the player's anonymous
// identity, the catalog size, and where their run stands.
type HomeView struct {
	userID     string
	levelCount int
	inProgress bool

	width  int
	height int

	titleStyle  lipgloss.Style
	normalStyle lipgloss.Style
	mutedStyle  lipgloss.Style
	accentStyle lipgloss.Style
}

// NewHomeView creates a home view.
func NewHomeView() *HomeView {
	return &HomeView{
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(theme.Current.Primary),
		normalStyle: lipgloss.NewStyle().Foreground(theme.Current.Text),
		mutedStyle:  lipgloss.NewStyle().Foreground(theme.Current.TextMuted),
		accentStyle: lipgloss.NewStyle().Foreground(theme.Current.Accent),
	}
}

// SetInfo installs the bootstrap results shown on the landing screen.
func (hv *HomeView) SetInfo(userID string, levelCount int, inProgress bool) {
	hv.userID = userID
	hv.levelCount = levelCount
	hv.inProgress = inProgress
}

// SetSize sets the width and height of the view.
func (hv *HomeView) SetSize(w, h int) {
	hv.width = w
	hv.height = h
}

// Update handles key input and returns the requested action.
func (hv *HomeView) Update(key string) HomeAction {
	switch key {
	case "enter":
		return HomeActionContinue
	case "f":
		return HomeActionOpenFeed
	}
	return HomeActionNone
}

// View renders the home view.
func (hv *HomeView) View() string {
	var b strings.Builder

	b.WriteString(hv.titleStyle.Render("Ready to play?"))
	b.WriteString("\n\n")

	if hv.inProgress {
		b.WriteString(hv.normalStyle.Render("You have a run in progress."))
	} else {
		b.WriteString(hv.normalStyle.Render(fmt.Sprintf("A fresh run awaits: %d challenges.", hv.levelCount)))
	}
	b.WriteString("\n\n")

	b.WriteString(hv.mutedStyle.Render(fmt.Sprintf("playing as %s", hv.userID)))
	b.WriteString("\n\n")

	b.WriteString(hv.accentStyle.Render("enter"))
	if hv.inProgress {
		b.WriteString(hv.normalStyle.Render(" continue your run"))
	} else {
		b.WriteString(hv.normalStyle.Render(" start your run"))
	}
	b.WriteString(hv.mutedStyle.Render("   •   f feed   •   q quit"))

	return b.String()
}
