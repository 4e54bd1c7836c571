package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/dareloop/dareloop/internal/models"
	"github.com/dareloop/dareloop/internal/tui/theme"
)

// CommentsAction represents an action requested by the comments overlay.
type CommentsAction int

const (
	CommentsActionNone CommentsAction = iota
	CommentsActionPost
	CommentsActionDismiss
)

// Drag-to-dismiss tuning. The sheet dismisses once pulled past the
// threshold; a released shorter pull springs back to rest.
const (
	dragDismissThreshold = 90.0
	dragPullStep         = 30.0
	dragSettleTolerance  = 0.5
)

// CommentsView is the comment sheet overlaid on a feed card. Pulling it
// down (shift+J) past the threshold dismisses it; a shorter pull eases
// back with a spring.
type CommentsView struct {
	runID    string
	username string
	comments []models.Comment
	loading  bool

	input  textinput.Model
	scroll int

	// Sheet pull state, in drag units.
	dragOffset float64
	dragVel    float64
	spring     harmonica.Spring

	width  int
	height int
	errMsg string

	titleStyle  lipgloss.Style
	userStyle   lipgloss.Style
	normalStyle lipgloss.Style
	mutedStyle  lipgloss.Style
	errStyle    lipgloss.Style
	boxStyle    lipgloss.Style
}

// NewCommentsView creates the comments overlay.
func NewCommentsView() *CommentsView {
	ti := textinput.New()
	ti.Placeholder = "add a comment"
	ti.CharLimit = 500

	return &CommentsView{
		input:       ti,
		spring:      harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.9),
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(theme.Current.Secondary),
		userStyle:   lipgloss.NewStyle().Bold(true).Foreground(theme.Current.Secondary),
		normalStyle: lipgloss.NewStyle().Foreground(theme.Current.Text),
		mutedStyle:  lipgloss.NewStyle().Foreground(theme.Current.TextMuted),
		errStyle:    lipgloss.NewStyle().Foreground(theme.Current.Error),
		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Current.Secondary).
			Padding(1, 2),
	}
}

// Open resets the overlay for a card and starts loading.
func (cv *CommentsView) Open(runID, username string) {
	cv.runID = runID
	cv.username = username
	cv.comments = nil
	cv.loading = true
	cv.scroll = 0
	cv.dragOffset = 0
	cv.dragVel = 0
	cv.errMsg = ""
	cv.input.Reset()
	cv.input.Focus()
}

// RunID returns the card the overlay is open on.
func (cv *CommentsView) RunID() string { return cv.runID }

// SetComments installs the loaded comment page.
func (cv *CommentsView) SetComments(comments []models.Comment) {
	cv.comments = comments
	cv.loading = false
}

// AddComment appends a freshly posted comment and clears the input.
func (cv *CommentsView) AddComment(comment models.Comment) {
	cv.comments = append(cv.comments, comment)
	cv.input.Reset()
}

// SetError shows a transient error line.
func (cv *CommentsView) SetError(msg string) {
	cv.errMsg = msg
	cv.loading = false
}

// SetSize sets the width and height of the view.
func (cv *CommentsView) SetSize(w, h int) {
	cv.width = w
	cv.height = h
}

// Content returns the draft comment text.
func (cv *CommentsView) Content() string {
	return strings.TrimSpace(cv.input.Value())
}

// Springing reports whether the sheet needs animation frames to settle
// back after a released pull.
func (cv *CommentsView) Springing() bool {
	return cv.dragOffset > dragSettleTolerance || math.Abs(cv.dragVel) > dragSettleTolerance
}

// UpdateFrame advances the spring-back one frame. Returns true while
// more frames are needed.
func (cv *CommentsView) UpdateFrame() bool {
	cv.dragOffset, cv.dragVel = cv.spring.Update(cv.dragOffset, cv.dragVel, 0)
	if !cv.Springing() {
		cv.dragOffset = 0
		cv.dragVel = 0
		return false
	}
	return true
}

// Update handles key input and returns the requested action.
func (cv *CommentsView) Update(key string) CommentsAction {
	switch key {
	case "esc":
		return CommentsActionDismiss

	case "J":
		// Pull the sheet down. Past the threshold it dismisses; the
		// app runs the spring-back otherwise.
		cv.dragOffset += dragPullStep
		if cv.dragOffset >= dragDismissThreshold {
			return CommentsActionDismiss
		}
		return CommentsActionNone

	case "enter":
		if cv.Content() != "" {
			return CommentsActionPost
		}
		return CommentsActionNone

	case "up":
		if cv.scroll > 0 {
			cv.scroll--
		}
		return CommentsActionNone

	case "down":
		if cv.scroll < len(cv.comments)-1 {
			cv.scroll++
		}
		return CommentsActionNone

	default:
		cv.input, _ = cv.input.Update(stringToKeyMsg(key))
		return CommentsActionNone
	}
}

// View renders the overlay.
func (cv *CommentsView) View() string {
	var b strings.Builder

	b.WriteString(cv.titleStyle.Render(fmt.Sprintf("Comments — @%s", cv.username)))
	b.WriteString("\n\n")

	switch {
	case cv.loading:
		b.WriteString(cv.mutedStyle.Render("loading..."))
		b.WriteString("\n")
	case len(cv.comments) == 0:
		b.WriteString(cv.mutedStyle.Render("no comments yet"))
		b.WriteString("\n")
	default:
		visible := cv.visibleComments()
		for _, comment := range visible {
			b.WriteString(cv.userStyle.Render("@" + comment.Username))
			b.WriteString("  ")
			b.WriteString(cv.normalStyle.Render(comment.Content))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(cv.input.View())
	if cv.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(cv.errStyle.Render(cv.errMsg))
	}
	b.WriteString("\n")
	b.WriteString(cv.mutedStyle.Render("enter post • J pull to close • esc close"))

	sheet := cv.boxStyle.Render(b.String())

	// The pull slides the sheet down before it lets go.
	pad := int(cv.dragOffset / dragPullStep)
	if pad > 0 {
		sheet = strings.Repeat("\n", pad) + sheet
	}
	return sheet
}

// visibleComments windows the list to the available height.
func (cv *CommentsView) visibleComments() []models.Comment {
	maxRows := cv.height - 10
	if maxRows < 3 {
		maxRows = 3
	}
	if len(cv.comments) <= maxRows {
		return cv.comments
	}
	start := cv.scroll
	if start > len(cv.comments)-maxRows {
		start = len(cv.comments) - maxRows
	}
	return cv.comments[start : start+maxRows]
}
