package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func testMedia() []Media {
	return []Media{
		{Kind: MediaImage, URL: "a.jpg", Label: "Level 1"},
		{Kind: MediaVideo, URL: "b.mp4", Label: "Level 2"},
		{Kind: MediaImage, URL: "c.jpg", Label: "Level 3"},
	}
}

func TestCarouselNavigationClampsAtEnds(t *testing.T) {
	c := NewCarousel(testMedia())
	assert.Equal(t, 0, c.Index())
	assert.False(t, c.AtEnd())

	c.Prev()
	assert.Equal(t, 0, c.Index(), "no wrap past the start")

	c.Next()
	c.Next()
	assert.Equal(t, 2, c.Index())
	assert.True(t, c.AtEnd())
	c.Next()
	assert.Equal(t, 2, c.Index(), "no wrap past the end")

	c.Prev()
	assert.Equal(t, 1, c.Index())
}

func TestCarouselSingleItemDoesNotMove(t *testing.T) {
	c := NewCarousel(testMedia()[:1])
	c.Next()
	c.Prev()
	c.SetAutoplay(true)
	c.AdvanceTick()
	assert.Equal(t, 0, c.Index())
}

func TestAutoplayGate(t *testing.T) {
	c := NewCarousel(testMedia())

	// Off by default: ticks do nothing.
	c.AdvanceTick()
	assert.Equal(t, 0, c.Index())

	c.SetAutoplay(true)
	c.AdvanceTick()
	assert.Equal(t, 1, c.Index())

	// Disabling autoplay also releases a held pause.
	c.HoldStart()
	c.SetAutoplay(false)
	assert.False(t, c.Held())
	c.AdvanceTick()
	assert.Equal(t, 1, c.Index())
}

func TestHoldPausesPlayback(t *testing.T) {
	c := NewCarousel(testMedia())
	c.SetAutoplay(true)
	c.Next() // video at index 1
	assert.True(t, c.Playing())

	c.HoldStart()
	assert.False(t, c.Playing())
	c.AdvanceTick()
	assert.Equal(t, 1, c.Index(), "held carousel must not advance")

	c.HoldEnd()
	assert.True(t, c.Playing())
	c.AdvanceTick()
	assert.Equal(t, 2, c.Index())
}

func TestMuteToggleShowsIndicator(t *testing.T) {
	c := NewCarousel(testMedia())
	assert.True(t, c.Muted(), "videos start muted")
	assert.False(t, c.MuteIndicatorVisible())

	c.ToggleMute()
	assert.False(t, c.Muted())
	assert.True(t, c.MuteIndicatorVisible())

	c.HideMuteIndicator()
	assert.False(t, c.MuteIndicatorVisible())

	// Muted video still counts as playing.
	c.Next()
	c.SetAutoplay(true)
	c.ToggleMute()
	assert.True(t, c.Muted())
	assert.True(t, c.Playing())
}

func TestSpringSettlesOnTarget(t *testing.T) {
	c := NewCarousel(testMedia())
	c.Next()
	assert.False(t, c.Settled())

	for i := 0; i < 600 && c.UpdateFrame(); i++ {
	}
	assert.True(t, c.Settled())
	assert.InDelta(t, 1.0, c.Offset(), 0.01)
}

func TestViewGlidesDuringTransition(t *testing.T) {
	plain := lipgloss.NewStyle()
	c := NewCarousel(testMedia())
	c.Next()

	// Far from the target the frame is indented; settled it is flush.
	assert.True(t, strings.HasPrefix(c.View(60, plain, plain), " "))

	for i := 0; i < 600 && c.UpdateFrame(); i++ {
	}
	assert.False(t, strings.HasPrefix(c.View(60, plain, plain), " "))
}
