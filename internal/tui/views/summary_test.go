package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dareloop/dareloop/internal/models"
)

func summarySteps() []models.Step {
	img := "https://cdn.example/proof.jpg"
	vid := "https://cdn.example/proof.mp4"
	return []models.Step{
		{ID: 1, LevelNumber: 1, LevelTitle: "Cold shower", Completed: true, ProofURL: &img},
		{ID: 2, LevelNumber: 2, LevelTitle: "Talk to a stranger", Completed: true},
		{ID: 3, LevelNumber: 3, LevelTitle: "Karaoke", Completed: true, ProofURL: &vid, IsCover: true},
	}
}

func newTestSummaryView() *SummaryView {
	sv := NewSummaryView()
	sv.SetSize(80, 20)
	sv.SetSteps(summarySteps())
	return sv
}

func TestSummaryCarouselOverProofMedia(t *testing.T) {
	sv := newTestSummaryView()
	c := sv.Carousel()
	require.NotNil(t, c)

	// Only the two steps with proof become pages.
	assert.Equal(t, 2, c.Len())

	sv.Update("right")
	assert.Equal(t, 1, c.Index())
	sv.Update("right")
	assert.Equal(t, 1, c.Index(), "track does not loop")
	sv.Update("left")
	sv.Update("left")
	assert.Equal(t, 0, c.Index())
}

func TestSummaryCoverOnlyOnProofSteps(t *testing.T) {
	sv := newTestSummaryView()

	// Step 1 (index 0) has proof: enter requests the cover change.
	assert.Equal(t, SummaryActionSetCover, sv.Update("enter"))

	// Step 2 has no proof: enter is a no-op.
	sv.Update("down")
	assert.Equal(t, SummaryActionNone, sv.Update("enter"))
}

func TestSummarySetCoverLocalRevert(t *testing.T) {
	sv := newTestSummaryView()

	previous := sv.SetCoverLocal(1)
	assert.Equal(t, int64(3), previous)
	assert.True(t, sv.Steps()[0].IsCover)
	assert.False(t, sv.Steps()[2].IsCover)

	// A failed server call puts the old cover back.
	sv.SetCoverLocal(previous)
	assert.False(t, sv.Steps()[0].IsCover)
	assert.True(t, sv.Steps()[2].IsCover)
}

func TestSummaryActionGating(t *testing.T) {
	sv := newTestSummaryView()

	assert.Equal(t, SummaryActionPost, sv.Update("p"))
	assert.Equal(t, SummaryActionNone, sv.Update("y"), "share requires a posted run")

	sv.SetPublic(true)
	assert.Equal(t, SummaryActionNone, sv.Update("p"), "already posted")
	assert.Equal(t, SummaryActionShare, sv.Update("y"))

	assert.Equal(t, SummaryActionDelete, sv.Update("x"))
	assert.Equal(t, SummaryActionNewRun, sv.Update("n"))
}

func TestSummaryCaptionEditing(t *testing.T) {
	sv := newTestSummaryView()
	assert.False(t, sv.Editing())

	sv.Update("e")
	require.True(t, sv.Editing())

	// While editing, action keys are text, not commands.
	for _, key := range []string{"g", "o", " ", "t", "e", "a", "m"} {
		assert.Equal(t, SummaryActionNone, sv.Update(key))
	}
	sv.Update("enter")
	assert.False(t, sv.Editing())
	assert.Equal(t, "go team", sv.Caption())
}

func TestHomeViewActions(t *testing.T) {
	hv := NewHomeView()
	hv.SetSize(80, 20)
	hv.SetInfo("user-1", 12, false)

	assert.Equal(t, HomeActionContinue, hv.Update("enter"))
	assert.Equal(t, HomeActionOpenFeed, hv.Update("f"))
	assert.Equal(t, HomeActionNone, hv.Update("z"))

	assert.Contains(t, hv.View(), "12 challenges")
	assert.Contains(t, hv.View(), "user-1")

	hv.SetInfo("user-1", 12, true)
	assert.Contains(t, hv.View(), "run in progress")
}
