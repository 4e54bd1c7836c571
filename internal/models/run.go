package models

import "time"

// Run is the server-owned record of one attempt at the level sequence.
// The client holds a cached view, refreshed by id.
type Run struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Caption   *string    `json:"caption"`
	StartedAt time.Time  `json:"startedAt"`
	// FinishedAt is nil while the run is active.
	FinishedAt *time.Time `json:"finishedAt"`
	Public     bool       `json:"public"`

	// Pending challenge state, nil/zero once the run is finished.
	PendingLevelID   *int64     `json:"pendingLevelId"`
	PendingLevel     *Level     `json:"pendingLevel,omitempty"`
	PendingStartedAt *time.Time `json:"pendingStartedAt"`
	PendingTimeLimit *int       `json:"pendingTimeLimit"`

	// ProofPending is true once the user signaled "done" and moved to
	// the proof-capture step, before final submission.
	ProofPending bool `json:"proofPending"`

	SkipsUsed int `json:"skipsUsed"`

	Steps []Step `json:"steps,omitempty"`
}

// Finished reports whether the server has set finishedAt.
func (r *Run) Finished() bool {
	return r.FinishedAt != nil
}

// Step is one recorded outcome for a single level within a run.
// Append-only; one per level attempt, including skipped attempts.
type Step struct {
	ID    int64  `json:"id"`
	RunID string `json:"runId"`

	LevelID int64 `json:"levelId"`

	Completed    bool    `json:"completed"`
	SkippedWhole bool    `json:"skippedWhole"`
	ProofURL     *string `json:"proofUrl"`

	CompletedAt *time.Time `json:"completedAt"`

	// Denormalized level info for display.
	LevelNumber      int    `json:"levelNumber"`
	LevelTitle       string `json:"levelTitle"`
	LevelDescription string `json:"levelDescription"`

	// IsCover marks the step whose media is the run's feed thumbnail.
	// At most one true per run.
	IsCover bool `json:"isCover"`
}

// HasProof reports whether the step carries uploaded media.
func (s *Step) HasProof() bool {
	return s.ProofURL != nil && *s.ProofURL != ""
}
