package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/dareloop/dareloop/internal/models"
	"github.com/dareloop/dareloop/internal/tui/components"
	"github.com/dareloop/dareloop/internal/tui/theme"
)

// SummaryAction represents an action requested by the summary view.
type SummaryAction int

const (
	SummaryActionNone SummaryAction = iota
	SummaryActionPost
	SummaryActionSetCover
	SummaryActionShare
	SummaryActionDelete
	SummaryActionNewRun
)

// SummaryView displays a finished run: its recorded steps, the caption
// editor, and the post/share/delete actions.
type SummaryView struct {
	steps    []models.Step
	selected int

	// carousel pages through the run's proof media; left/right navigate.
	carousel *components.Carousel

	caption textinput.Model
	editing bool

	posted  bool
	public  bool
	copied  bool
	loading bool
	errMsg  string

	width  int
	height int

	titleStyle   lipgloss.Style
	normalStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
	selStyle     lipgloss.Style
	successStyle lipgloss.Style
	errStyle     lipgloss.Style
}

// NewSummaryView creates a summary view.
func NewSummaryView() *SummaryView {
	ti := textinput.New()
	ti.Placeholder = "say something about your run"
	ti.CharLimit = 280

	return &SummaryView{
		caption:      ti,
		loading:      true,
		titleStyle:   lipgloss.NewStyle().Bold(true).Foreground(theme.Current.Primary),
		normalStyle:  lipgloss.NewStyle().Foreground(theme.Current.Text),
		mutedStyle:   lipgloss.NewStyle().Foreground(theme.Current.TextMuted),
		selStyle:     lipgloss.NewStyle().Bold(true).Foreground(theme.Current.Accent),
		successStyle: lipgloss.NewStyle().Foreground(theme.Current.Success),
		errStyle:     lipgloss.NewStyle().Foreground(theme.Current.Error),
	}
}

// SetSteps installs the run's recorded steps and rebuilds the proof
// media carousel.
func (sv *SummaryView) SetSteps(steps []models.Step) {
	sv.steps = steps
	sv.loading = false
	if sv.selected >= len(steps) {
		sv.selected = 0
	}

	var media []components.Media
	for _, step := range steps {
		if !step.HasProof() {
			continue
		}
		kind := components.MediaImage
		if isVideoURL(*step.ProofURL) {
			kind = components.MediaVideo
		}
		media = append(media, components.Media{
			Kind:  kind,
			URL:   *step.ProofURL,
			Label: step.LevelTitle,
		})
	}
	sv.carousel = components.NewCarousel(media)
}

// Carousel returns the proof media carousel, nil before steps load.
func (sv *SummaryView) Carousel() *components.Carousel { return sv.carousel }

// Steps returns the current step list.
func (sv *SummaryView) Steps() []models.Step { return sv.steps }

// SetPublic records the run's current visibility.
func (sv *SummaryView) SetPublic(public bool) {
	sv.public = public
	sv.posted = public
}

// SetError shows a transient error line.
func (sv *SummaryView) SetError(msg string) { sv.errMsg = msg }

// SetCopied flags that the share link landed on the clipboard.
func (sv *SummaryView) SetCopied() { sv.copied = true }

// SetSize sets the width and height of the view.
func (sv *SummaryView) SetSize(w, h int) {
	sv.width = w
	sv.height = h
}

// Editing reports whether the caption input owns the keyboard.
func (sv *SummaryView) Editing() bool { return sv.editing }

// Caption returns the edited caption, empty when untouched.
func (sv *SummaryView) Caption() string {
	return strings.TrimSpace(sv.caption.Value())
}

// SelectedStep returns the highlighted step, nil when the list is empty.
func (sv *SummaryView) SelectedStep() *models.Step {
	if sv.selected < 0 || sv.selected >= len(sv.steps) {
		return nil
	}
	return &sv.steps[sv.selected]
}

// SetCoverLocal marks stepID as the cover locally, returning the
// previous cover's id (0 if none) so a failed server call can revert.
func (sv *SummaryView) SetCoverLocal(stepID int64) int64 {
	var previous int64
	for i := range sv.steps {
		if sv.steps[i].IsCover {
			previous = sv.steps[i].ID
		}
		sv.steps[i].IsCover = sv.steps[i].ID == stepID
	}
	return previous
}

// Update handles key input and returns the requested action.
func (sv *SummaryView) Update(key string) SummaryAction {
	sv.errMsg = ""

	if sv.editing {
		switch key {
		case "enter", "esc":
			sv.editing = false
			sv.caption.Blur()
		default:
			sv.caption, _ = sv.caption.Update(stringToKeyMsg(key))
		}
		return SummaryActionNone
	}

	switch key {
	case "up", "k":
		if sv.selected > 0 {
			sv.selected--
		}
	case "down", "j":
		if sv.selected < len(sv.steps)-1 {
			sv.selected++
		}
	case "left", "h":
		if sv.carousel != nil {
			sv.carousel.Prev()
		}
	case "right", "l":
		if sv.carousel != nil {
			sv.carousel.Next()
		}
	case "e":
		sv.editing = true
		sv.caption.Focus()
	case "enter":
		step := sv.SelectedStep()
		if step != nil && step.HasProof() {
			return SummaryActionSetCover
		}
	case "p":
		if !sv.posted {
			return SummaryActionPost
		}
	case "y":
		if sv.posted {
			return SummaryActionShare
		}
	case "x":
		return SummaryActionDelete
	case "n":
		return SummaryActionNewRun
	}
	return SummaryActionNone
}

// View renders the summary view.
func (sv *SummaryView) View() string {
	var b strings.Builder

	b.WriteString(sv.titleStyle.Render("Run complete"))
	b.WriteString("\n\n")

	if sv.loading {
		b.WriteString(sv.mutedStyle.Render("loading steps..."))
		return b.String()
	}

	if len(sv.steps) == 0 {
		b.WriteString(sv.mutedStyle.Render("no challenges were recorded"))
		b.WriteString("\n")
	}

	if sv.carousel != nil && sv.carousel.Len() > 0 {
		b.WriteString(sv.carousel.View(sv.width-2, sv.mutedStyle, sv.selStyle))
		b.WriteString("\n\n")
	}

	for i, step := range sv.steps {
		marker := "  "
		if i == sv.selected {
			marker = sv.selStyle.Render("> ")
		}

		var outcome string
		switch {
		case step.SkippedWhole:
			outcome = sv.mutedStyle.Render("skipped")
		case step.HasProof():
			outcome = sv.successStyle.Render("done, with proof")
		default:
			outcome = sv.normalStyle.Render("done")
		}

		line := fmt.Sprintf("%s%d. %s — %s", marker, step.LevelNumber, step.LevelTitle, outcome)
		if step.IsCover {
			line += sv.selStyle.Render("  [cover]")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sv.mutedStyle.Render("caption: "))
	if sv.editing {
		b.WriteString(sv.caption.View())
	} else if sv.Caption() != "" {
		b.WriteString(sv.normalStyle.Render(sv.Caption()))
	} else {
		b.WriteString(sv.mutedStyle.Render("(none — press e to edit)"))
	}
	b.WriteString("\n\n")

	if sv.posted {
		b.WriteString(sv.successStyle.Render("posted to the public feed"))
		if sv.copied {
			b.WriteString(sv.mutedStyle.Render("  (link copied)"))
		}
		b.WriteString("\n")
		b.WriteString(sv.mutedStyle.Render("y copy link • n new run • q quit"))
	} else {
		b.WriteString(sv.mutedStyle.Render("↑↓ select • ←→ media • enter set cover • e caption • p post • x delete • n new run"))
	}

	if sv.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(sv.errStyle.Render(sv.errMsg))
	}
	return b.String()
}
