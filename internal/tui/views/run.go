package views

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/dareloop/dareloop/internal/runctrl"
	"github.com/dareloop/dareloop/internal/tui/theme"
)

// RunAction represents an action requested by the run view.
type RunAction int

const (
	RunActionNone RunAction = iota
	RunActionDone
	RunActionSkipChallenge
	RunActionGiveUp
	RunActionStageProof
	RunActionSubmitProof
	RunActionSkipProof
)

// RunSnapshot is the render state the app derives from the run
// controller between transitions.
type RunSnapshot struct {
	Phase       runctrl.Phase
	LevelNumber int
	Title       string
	Description []string

	Timed     bool
	TimeLeft  int
	TimeLimit int

	SkipsUsed  int
	SkipBudget int

	StagedName string
	Busy       bool
}

// lowTimeThreshold is the fraction of the limit below which the
// countdown renders in the warning style.
const lowTimeThreshold = 0.25

// RunView displays the active challenge and the proof step.
type RunView struct {
	snap RunSnapshot

	countdown progress.Model
	pathInput textinput.Model

	width  int
	height int
	errMsg string

	titleStyle   lipgloss.Style
	normalStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
	okStyle      lipgloss.Style
	lowStyle     lipgloss.Style
	errStyle     lipgloss.Style
	successStyle lipgloss.Style
}

// NewRunView creates a run view.
func NewRunView() *RunView {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	ti := textinput.New()
	ti.Placeholder = "path to photo or video"
	ti.CharLimit = 512

	return &RunView{
		countdown:    bar,
		pathInput:    ti,
		titleStyle:   lipgloss.NewStyle().Bold(true).Foreground(theme.Current.Primary),
		normalStyle:  lipgloss.NewStyle().Foreground(theme.Current.Text),
		mutedStyle:   lipgloss.NewStyle().Foreground(theme.Current.TextMuted),
		okStyle:      lipgloss.NewStyle().Bold(true).Foreground(theme.Current.Success),
		lowStyle:     lipgloss.NewStyle().Bold(true).Foreground(theme.Current.Warning),
		errStyle:     lipgloss.NewStyle().Foreground(theme.Current.Error),
		successStyle: lipgloss.NewStyle().Foreground(theme.Current.Success),
	}
}

// Refresh installs a new snapshot. Entering the proof step focuses the
// path input.
func (rv *RunView) Refresh(snap RunSnapshot) {
	enteringProof := snap.Phase == runctrl.PhaseProof && rv.snap.Phase != runctrl.PhaseProof
	rv.snap = snap
	if enteringProof {
		rv.pathInput.Reset()
		rv.pathInput.Focus()
	}
	if snap.Phase != runctrl.PhaseProof {
		rv.pathInput.Blur()
	}
}

// SetError shows a transient error line (e.g. a failed upload).
func (rv *RunView) SetError(msg string) {
	rv.errMsg = msg
}

// SetSize sets the width and height of the view.
func (rv *RunView) SetSize(w, h int) {
	rv.width = w
	rv.height = h
	barWidth := w - 8
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth > 0 {
		rv.countdown.Width = barWidth
	}
}

// PathValue returns the typed proof file path.
func (rv *RunView) PathValue() string {
	return strings.TrimSpace(rv.pathInput.Value())
}

// Update handles key input and returns the requested action.
func (rv *RunView) Update(key string) RunAction {
	if rv.snap.Busy {
		return RunActionNone
	}
	rv.errMsg = ""

	switch rv.snap.Phase {
	case runctrl.PhaseActive:
		switch key {
		case "d", "enter":
			return RunActionDone
		case "s":
			return RunActionSkipChallenge
		case "g":
			return RunActionGiveUp
		}
		return RunActionNone

	case runctrl.PhaseProof:
		// 'n' and 'g' are commands only while the path input is empty;
		// otherwise they are path characters.
		switch {
		case key == "enter":
			if rv.PathValue() != "" {
				return RunActionStageProof
			}
			if rv.snap.StagedName != "" {
				return RunActionSubmitProof
			}
			return RunActionNone
		case key == "n" && rv.PathValue() == "":
			return RunActionSkipProof
		case key == "g" && rv.PathValue() == "":
			return RunActionGiveUp
		default:
			rv.pathInput, _ = rv.pathInput.Update(stringToKeyMsg(key))
			return RunActionNone
		}
	}
	return RunActionNone
}

// ClearPath resets the path input after a successful stage.
func (rv *RunView) ClearPath() {
	rv.pathInput.Reset()
}

// View renders the run view.
func (rv *RunView) View() string {
	var b strings.Builder

	switch rv.snap.Phase {
	case runctrl.PhaseActive:
		rv.renderChallenge(&b)
	case runctrl.PhaseProof:
		rv.renderProof(&b)
	default:
		b.WriteString(rv.mutedStyle.Render("loading..."))
	}

	if rv.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(rv.errStyle.Render(rv.errMsg))
	}
	if rv.snap.Busy {
		b.WriteString("\n\n")
		b.WriteString(rv.mutedStyle.Render("working..."))
	}
	return b.String()
}

func (rv *RunView) renderChallenge(b *strings.Builder) {
	b.WriteString(rv.titleStyle.Render(fmt.Sprintf("Challenge %d: %s", rv.snap.LevelNumber, rv.snap.Title)))
	b.WriteString("\n\n")

	for _, line := range rv.snap.Description {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(rv.snap.Description) > 0 {
		b.WriteString("\n")
	}

	if rv.snap.Timed {
		frac := 0.0
		if rv.snap.TimeLimit > 0 {
			frac = float64(rv.snap.TimeLeft) / float64(rv.snap.TimeLimit)
		}
		style := rv.okStyle
		if frac <= lowTimeThreshold {
			style = rv.lowStyle
		}
		b.WriteString(rv.countdown.ViewAs(frac))
		b.WriteString("  ")
		b.WriteString(style.Render(formatCountdown(rv.snap.TimeLeft)))
		b.WriteString("\n\n")
	} else {
		b.WriteString(rv.mutedStyle.Render("no time limit"))
		b.WriteString("\n\n")
	}

	skipsLeft := rv.snap.SkipBudget - rv.snap.SkipsUsed
	if skipsLeft < 0 {
		skipsLeft = 0
	}
	if skipsLeft > 0 {
		b.WriteString(rv.mutedStyle.Render(fmt.Sprintf("skips left: %d", skipsLeft)))
	} else {
		b.WriteString(rv.mutedStyle.Render("no skips left — a timeout ends the run"))
	}
}

func (rv *RunView) renderProof(b *strings.Builder) {
	b.WriteString(rv.titleStyle.Render(fmt.Sprintf("Nice! Prove it — %s", rv.snap.Title)))
	b.WriteString("\n\n")
	b.WriteString(rv.normalStyle.Render("Attach a photo or video, or continue without proof."))
	b.WriteString("\n\n")
	b.WriteString(rv.pathInput.View())
	b.WriteString("\n")

	if rv.snap.StagedName != "" {
		b.WriteString("\n")
		b.WriteString(rv.successStyle.Render("staged: " + filepath.Base(rv.snap.StagedName)))
		b.WriteString(rv.mutedStyle.Render("  (enter to submit)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(rv.mutedStyle.Render("enter stage/submit • n no proof • g give up"))
}
