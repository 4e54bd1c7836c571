package models

import "time"

// FeedItem is a denormalized projection of a finished public run plus
// its steps, as served by the public feed endpoint. Read-only snapshot,
// mutated locally only for optimistic like toggling.
type FeedItem struct {
	RunID      string     `json:"runId"`
	UserID     string     `json:"userId"`
	Username   string     `json:"username"`
	Caption    *string    `json:"caption"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt"`

	Steps []Step `json:"steps"`

	LikeCount     int  `json:"likeCount"`
	LikedByViewer bool `json:"likedByViewer"`
	CommentCount  int  `json:"commentCount"`
}

// CoverStep returns the step marked as the run's cover, or the first
// step with proof media, or nil.
func (f *FeedItem) CoverStep() *Step {
	for i := range f.Steps {
		if f.Steps[i].IsCover {
			return &f.Steps[i]
		}
	}
	for i := range f.Steps {
		if f.Steps[i].HasProof() {
			return &f.Steps[i]
		}
	}
	return nil
}

// Comment is one comment on a run. Append-only from the client side.
type Comment struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"runId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
