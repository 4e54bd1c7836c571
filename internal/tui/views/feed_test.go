package views

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dareloop/dareloop/internal/models"
)

func feedItems(n int) []models.FeedItem {
	var items []models.FeedItem
	for i := 0; i < n; i++ {
		img := fmt.Sprintf("https://cdn.example/%d.jpg", i)
		vid := fmt.Sprintf("https://cdn.example/%d.mp4", i)
		items = append(items, models.FeedItem{
			RunID:    fmt.Sprintf("run-%d", i),
			Username: fmt.Sprintf("user-%d", i),
			Steps: []models.Step{
				{ID: int64(i*10 + 1), LevelTitle: "Level 1", Completed: true, ProofURL: &img},
				{ID: int64(i*10 + 2), LevelTitle: "Level 2", Completed: true, ProofURL: &vid},
			},
		})
	}
	return items
}

func newTestFeedView(items []models.FeedItem) *FeedView {
	fv := NewFeedView()
	fv.SetSize(80, 20)
	fv.SetItems(items, true, false)
	return fv
}

func TestFeedViewPlaybackGate(t *testing.T) {
	fv := newTestFeedView(feedItems(4))

	// Card 0 is most visible at the top: only its carousel autoplays.
	assert.Equal(t, 0, fv.VisibleIndex())
	for i := range fv.items {
		c := fv.carouselFor(&fv.items[i])
		assert.Equal(t, i == 0, c.Autoplay(), "card %d", i)
	}

	// Scroll until card 1 dominates the viewport.
	for fv.VisibleIndex() == 0 {
		require.Equal(t, FeedActionScrolled, fv.Update("down"))
	}
	visible := fv.VisibleIndex()
	playing := 0
	for i := range fv.items {
		if fv.carouselFor(&fv.items[i]).Autoplay() {
			playing++
			assert.Equal(t, visible, i)
		}
	}
	assert.Equal(t, 1, playing, "exactly one carousel may autoplay")
}

func TestFeedViewStopPlayback(t *testing.T) {
	fv := newTestFeedView(feedItems(2))
	fv.StopPlayback()
	for i := range fv.items {
		assert.False(t, fv.carouselFor(&fv.items[i]).Autoplay())
	}
}

func TestFeedViewActions(t *testing.T) {
	fv := newTestFeedView(feedItems(2))

	assert.Equal(t, FeedActionLike, fv.Update("x"))
	assert.Equal(t, FeedActionOpenComments, fv.Update("c"))
	assert.Equal(t, FeedActionShare, fv.Update("y"))
	assert.Equal(t, FeedActionToggleMute, fv.Update("m"))
	assert.True(t, fv.VisibleCarousel().MuteIndicatorVisible())

	fv.HideMuteIndicator("run-0")
	assert.False(t, fv.VisibleCarousel().MuteIndicatorVisible())
}

func TestFeedViewEmpty(t *testing.T) {
	fv := newTestFeedView(nil)
	assert.Equal(t, -1, fv.VisibleIndex())
	assert.Nil(t, fv.VisibleItem())
	assert.Equal(t, FeedActionNone, fv.Update("x"))
	assert.Equal(t, FeedActionNone, fv.Update("c"))
	assert.Equal(t, FeedActionNone, fv.Update("y"))
	assert.Contains(t, fv.View(), "nothing here yet")
}

func TestFeedViewManualNavigation(t *testing.T) {
	fv := newTestFeedView(feedItems(1))
	c := fv.VisibleCarousel()
	require.NotNil(t, c)
	require.Equal(t, 2, c.Len())

	fv.Update("right")
	assert.Equal(t, 1, c.Index())
	fv.Update("left")
	assert.Equal(t, 0, c.Index())
}

func TestFeedViewAnimatesUntilSprungHome(t *testing.T) {
	fv := newTestFeedView(feedItems(2))
	require.False(t, fv.Animating())

	fv.Update("right")
	require.True(t, fv.Animating(), "paging starts a glide")

	for i := 0; i < 600 && fv.UpdateFrames(); i++ {
	}
	assert.False(t, fv.Animating())
}

func TestIsVideoURL(t *testing.T) {
	assert.True(t, isVideoURL("https://cdn.example/a.mp4"))
	assert.True(t, isVideoURL("https://cdn.example/a.MOV"))
	assert.False(t, isVideoURL("https://cdn.example/a.jpg"))
}
