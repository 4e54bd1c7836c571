package feed

import (
	"context"
	"fmt"

	"github.com/dareloop/dareloop/internal/api"
	"github.com/dareloop/dareloop/internal/models"
)

// LikeToggle records one optimistic like flip: the state that was
// applied and the exact count delta, so a failed push can be reverted
// precisely instead of blindly re-toggled (a blind re-toggle would
// corrupt state when the user flipped again in the meantime).
type LikeToggle struct {
	RunID string
	Liked bool
	Delta int
}

// ToggleLikeLocal flips the like state of the item at index immediately
// and returns the applied toggle for the caller to push. The second
// return is false when index is out of range.
func (c *Controller) ToggleLikeLocal(index int) (LikeToggle, bool) {
	item := c.Item(index)
	if item == nil {
		return LikeToggle{}, false
	}

	delta := 1
	if item.LikedByViewer {
		delta = -1
	}
	item.LikedByViewer = !item.LikedByViewer
	item.LikeCount += delta
	if item.LikeCount < 0 {
		item.LikeCount = 0
	}
	return LikeToggle{RunID: item.RunID, Liked: item.LikedByViewer, Delta: delta}, true
}

// PushLike sends a previously applied toggle to the server and returns
// the authoritative result.
func (c *Controller) PushLike(ctx context.Context, t LikeToggle) (*api.LikeResult, error) {
	if t.Liked {
		return c.svc.Like(ctx, t.RunID, c.viewerID)
	}
	return c.svc.Unlike(ctx, t.RunID, c.viewerID)
}

// ReconcileLike adopts the server's authoritative like state, replacing
// the optimistic guess.
func (c *Controller) ReconcileLike(runID string, result *api.LikeResult) {
	item := c.byRunID(runID)
	if item == nil || result == nil {
		return
	}
	item.LikedByViewer = result.Liked
	item.LikeCount = result.LikeCount
}

// RevertLike undoes exactly the recorded toggle after a failed push.
// Both reverts are expressed as inverses of the applied change (a flip
// and a subtracted delta) rather than absolute assignments, so reverts
// of queued toggles land correctly in any order.
func (c *Controller) RevertLike(t LikeToggle) {
	item := c.byRunID(t.RunID)
	if item == nil {
		return
	}
	item.LikedByViewer = !item.LikedByViewer
	item.LikeCount -= t.Delta
	if item.LikeCount < 0 {
		item.LikeCount = 0
	}
}

// Comments fetches the comment page for a run.
func (c *Controller) Comments(ctx context.Context, runID string) ([]models.Comment, error) {
	comments, err := c.svc.ListComments(ctx, runID, c.commentPageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	return comments, nil
}

// PostComment appends the viewer's comment to a run and bumps the
// item's comment count so the card reflects it without a refetch.
func (c *Controller) PostComment(ctx context.Context, runID, content string) (*models.Comment, error) {
	comment, err := c.svc.PostComment(ctx, runID, c.viewerID, content)
	if err != nil {
		return nil, fmt.Errorf("post comment: %w", err)
	}
	if item := c.byRunID(runID); item != nil {
		item.CommentCount++
	}
	return comment, nil
}
