package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dareloop/dareloop/internal/feed"
	"github.com/dareloop/dareloop/internal/models"
	"github.com/dareloop/dareloop/internal/tui/components"
	"github.com/dareloop/dareloop/internal/tui/theme"
)

// FeedAction represents an action requested by the feed view.
type FeedAction int

const (
	FeedActionNone FeedAction = iota
	// FeedActionScrolled means the visible card may have changed; the
	// app re-checks the prefetch policy.
	FeedActionScrolled
	FeedActionLike
	FeedActionOpenComments
	FeedActionToggleMute
	FeedActionShare
)

// Feed layout constants.
const (
	feedCardHeight = 8 // Lines each rendered card occupies
	feedScrollStep = 2 // Lines per scroll key press
)

// FeedView displays the public feed as a scrollable column of cards.
// The most visible card owns playback: its carousel autoplays, every
// other carousel is stopped.
type FeedView struct {
	items     []models.FeedItem
	carousels map[string]*components.Carousel

	scrollOffset int
	visibleIdx   int

	hasMore  bool
	fetching bool

	width  int
	height int
	errMsg string
	notice string

	cardStyle   lipgloss.Style
	activeStyle lipgloss.Style
	userStyle   lipgloss.Style
	captionSt   lipgloss.Style
	mutedStyle  lipgloss.Style
	likedStyle  lipgloss.Style
	accentStyle lipgloss.Style
	errStyle    lipgloss.Style
}

// NewFeedView creates a feed view.
func NewFeedView() *FeedView {
	return &FeedView{
		carousels:   map[string]*components.Carousel{},
		hasMore:     true,
		cardStyle:   lipgloss.NewStyle().Foreground(theme.Current.Text),
		activeStyle: lipgloss.NewStyle().Foreground(theme.Current.TextHighlight),
		userStyle:   lipgloss.NewStyle().Bold(true).Foreground(theme.Current.Secondary),
		captionSt:   lipgloss.NewStyle().Italic(true).Foreground(theme.Current.Text),
		mutedStyle:  lipgloss.NewStyle().Foreground(theme.Current.TextMuted),
		likedStyle:  lipgloss.NewStyle().Bold(true).Foreground(theme.Current.Primary),
		accentStyle: lipgloss.NewStyle().Foreground(theme.Current.Accent),
		errStyle:    lipgloss.NewStyle().Foreground(theme.Current.Error),
	}
}

// SetItems installs the accumulated feed items, keeping carousel state
// for cards that were already loaded.
func (fv *FeedView) SetItems(items []models.FeedItem, hasMore, fetching bool) {
	fv.items = items
	fv.hasMore = hasMore
	fv.fetching = fetching
	for i := range items {
		fv.carouselFor(&items[i])
	}
	fv.gatePlayback()
}

// SetError shows a transient error line.
func (fv *FeedView) SetError(msg string) { fv.errMsg = msg }

// SetNotice shows a transient status line, cleared on the next key.
func (fv *FeedView) SetNotice(msg string) { fv.notice = msg }

// SetSize sets the width and height of the view.
func (fv *FeedView) SetSize(w, h int) {
	fv.width = w
	fv.height = h
}

// VisibleIndex returns the index of the most visible card, -1 when the
// feed is empty.
func (fv *FeedView) VisibleIndex() int {
	if len(fv.items) == 0 {
		return -1
	}
	return fv.visibleIdx
}

// VisibleItem returns the most visible feed item, nil when empty.
func (fv *FeedView) VisibleItem() *models.FeedItem {
	idx := fv.VisibleIndex()
	if idx < 0 || idx >= len(fv.items) {
		return nil
	}
	return &fv.items[idx]
}

// VisibleCarousel returns the most visible card's carousel, nil when
// the feed is empty.
func (fv *FeedView) VisibleCarousel() *components.Carousel {
	item := fv.VisibleItem()
	if item == nil {
		return nil
	}
	return fv.carouselFor(item)
}

// carouselFor lazily builds the carousel for a card from its proof media.
func (fv *FeedView) carouselFor(item *models.FeedItem) *components.Carousel {
	if c, ok := fv.carousels[item.RunID]; ok {
		return c
	}
	var media []components.Media
	for _, step := range item.Steps {
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
	c := components.NewCarousel(media)
	fv.carousels[item.RunID] = c
	return c
}

// isVideoURL classifies proof media by extension.
func isVideoURL(url string) bool {
	for _, ext := range []string{".mp4", ".mov", ".webm", ".m4v"} {
		if strings.HasSuffix(strings.ToLower(url), ext) {
			return true
		}
	}
	return false
}

// gatePlayback grants autoplay to the most visible card's carousel and
// revokes it everywhere else, so at most one video plays.
func (fv *FeedView) gatePlayback() {
	visible := fv.VisibleItem()
	for id, c := range fv.carousels {
		c.SetAutoplay(visible != nil && id == visible.RunID)
	}
}

// recomputeVisible re-derives the most visible card from the scroll
// position and re-gates playback when it changed.
func (fv *FeedView) recomputeVisible() bool {
	extents := make([]feed.Extent, len(fv.items))
	for i := range fv.items {
		extents[i] = feed.Extent{Top: i * feedCardHeight, Height: feedCardHeight}
	}
	idx := feed.MostVisible(fv.scrollOffset, fv.viewportHeight(), extents)
	if idx < 0 || idx == fv.visibleIdx {
		return false
	}
	fv.visibleIdx = idx
	fv.gatePlayback()
	return true
}

func (fv *FeedView) viewportHeight() int {
	h := fv.height - 2 // footer
	if h < 1 {
		h = feedCardHeight
	}
	return h
}

func (fv *FeedView) maxScroll() int {
	max := len(fv.items)*feedCardHeight - fv.viewportHeight()
	if max < 0 {
		max = 0
	}
	return max
}

// StopPlayback revokes autoplay everywhere, used when leaving the feed.
func (fv *FeedView) StopPlayback() {
	for _, c := range fv.carousels {
		c.SetAutoplay(false)
	}
}

// HideMuteIndicator clears the mute flash on a card's carousel.
func (fv *FeedView) HideMuteIndicator(runID string) {
	if c, ok := fv.carousels[runID]; ok {
		c.HideMuteIndicator()
	}
}

// AdvanceAutoplay advances the playing carousel one media. Called from
// the app's autoplay ticker.
func (fv *FeedView) AdvanceAutoplay() {
	if c := fv.VisibleCarousel(); c != nil {
		c.AdvanceTick()
	}
}

// Animating reports whether any carousel spring is mid-glide.
func (fv *FeedView) Animating() bool {
	for _, c := range fv.carousels {
		if !c.Settled() {
			return true
		}
	}
	return false
}

// UpdateFrames advances every carousel spring one frame. Returns true
// while any still needs frames.
func (fv *FeedView) UpdateFrames() bool {
	more := false
	for _, c := range fv.carousels {
		if c.UpdateFrame() {
			more = true
		}
	}
	return more
}

// Update handles key input and returns the requested action.
func (fv *FeedView) Update(key string) FeedAction {
	fv.errMsg = ""
	fv.notice = ""

	switch key {
	case "up", "k":
		fv.scrollOffset -= feedScrollStep
		if fv.scrollOffset < 0 {
			fv.scrollOffset = 0
		}
		fv.recomputeVisible()
		return FeedActionScrolled

	case "down", "j":
		fv.scrollOffset += feedScrollStep
		if fv.scrollOffset > fv.maxScroll() {
			fv.scrollOffset = fv.maxScroll()
		}
		fv.recomputeVisible()
		return FeedActionScrolled

	case "left", "h":
		if c := fv.VisibleCarousel(); c != nil {
			c.Prev()
		}

	case "right", "l":
		if c := fv.VisibleCarousel(); c != nil {
			c.Next()
		}

	case "x":
		if fv.VisibleItem() != nil {
			return FeedActionLike
		}

	case "c":
		if fv.VisibleItem() != nil {
			return FeedActionOpenComments
		}

	case "y":
		if fv.VisibleItem() != nil {
			return FeedActionShare
		}

	case "m":
		if c := fv.VisibleCarousel(); c != nil && c.Len() > 0 {
			c.ToggleMute()
			return FeedActionToggleMute
		}

	case " ", "space":
		if c := fv.VisibleCarousel(); c != nil {
			if c.Held() {
				c.HoldEnd()
			} else {
				c.HoldStart()
			}
		}
	}
	return FeedActionNone
}

// View renders the feed.
func (fv *FeedView) View() string {
	if len(fv.items) == 0 {
		if fv.fetching {
			return fv.mutedStyle.Render("loading feed...")
		}
		return fv.mutedStyle.Render("nothing here yet — finish a run and post it")
	}

	var lines []string
	for i := range fv.items {
		lines = append(lines, fv.renderCard(i)...)
	}

	top := fv.scrollOffset
	if top > len(lines) {
		top = len(lines)
	}
	bottom := top + fv.viewportHeight()
	if bottom > len(lines) {
		bottom = len(lines)
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines[top:bottom], "\n"))
	b.WriteString("\n")

	switch {
	case fv.errMsg != "":
		b.WriteString(fv.errStyle.Render(fv.errMsg))
	case fv.notice != "":
		b.WriteString(fv.mutedStyle.Render(fv.notice))
	case fv.fetching:
		b.WriteString(fv.mutedStyle.Render("loading more..."))
	case !fv.hasMore:
		b.WriteString(fv.mutedStyle.Render("you're all caught up"))
	}
	return b.String()
}

// renderCard renders one card as exactly feedCardHeight lines.
func (fv *FeedView) renderCard(i int) []string {
	item := &fv.items[i]
	carousel := fv.carouselFor(item)

	header := fv.userStyle.Render("@" + item.Username)
	if i == fv.visibleIdx {
		header = fv.accentStyle.Render("▸ ") + header
	} else {
		header = "  " + header
	}

	caption := " "
	if item.Caption != nil && *item.Caption != "" {
		caption = "  " + fv.captionSt.Render(*item.Caption)
	}

	carouselLines := strings.Split(carousel.View(fv.width-4, fv.mutedStyle, fv.accentStyle), "\n")
	for len(carouselLines) < 2 {
		carouselLines = append(carouselLines, " ")
	}

	heart := fv.mutedStyle.Render("♡")
	if item.LikedByViewer {
		heart = fv.likedStyle.Render("♥")
	}
	engagement := fmt.Sprintf("  %s %d   💬 %d", heart, item.LikeCount, item.CommentCount)

	lines := []string{
		header,
		caption,
		"  " + carouselLines[0],
		"  " + carouselLines[1],
		engagement,
		"  " + fv.mutedStyle.Render(strings.Repeat("─", clampWidth(fv.width-4))),
		" ",
		" ",
	}
	return lines[:feedCardHeight]
}

func clampWidth(w int) int {
	if w < 10 {
		return 10
	}
	if w > 80 {
		return 80
	}
	return w
}
