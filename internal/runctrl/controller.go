// Package runctrl owns the lifecycle of a single run: level sequencing,
// countdown, proof capture, skip budget, and finalization. It holds no
// rendering concerns; the TUI layer drives it and draws its state.
//
// Methods are not goroutine-safe. The caller serializes transitions:
// one transition at a time, no new transition while one is in flight.
// The timer must not tick while a transition is running.
package runctrl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dareloop/dareloop/internal/api"
	"github.com/dareloop/dareloop/internal/log"
	"github.com/dareloop/dareloop/internal/media"
	"github.com/dareloop/dareloop/internal/models"
)

// Phase is the controller's tagged state. A single value instead of
// independent booleans, so illegal combinations (loading + proof step
// at once) cannot be represented.
type Phase int

const (
	// PhaseBooting is the initial state before Bootstrap completes.
	PhaseBooting Phase = iota
	// PhaseActive means a challenge is underway and the countdown runs.
	PhaseActive
	// PhaseProof means the user signaled done and is attaching proof.
	PhaseProof
	// PhaseFinished means the run is over (or no pending level exists);
	// the summary should render.
	PhaseFinished
)

// String returns a name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseBooting:
		return "booting"
	case PhaseActive:
		return "active"
	case PhaseProof:
		return "proof"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Service is the slice of the backend client the controller needs.
type Service interface {
	ListLevels(ctx context.Context) ([]models.Level, error)
	CreateRun(ctx context.Context, req api.CreateRunRequest) (string, error)
	GetRun(ctx context.Context, id string) (*models.Run, error)
	FinishRun(ctx context.Context, id string) error
	SetProofState(ctx context.Context, id string, proofPending bool) error
	SubmitStep(ctx context.Context, runID string, req api.SubmitStepRequest) (int64, error)
	Upload(ctx context.Context, filePath string) (*api.UploadResult, error)
}

// Store is the local persistence port: identity, run pointers, and the
// cached catalog.
type Store interface {
	GetOrCreateUserID() (string, error)
	RunPointer() (current, last string, err error)
	SetCurrentRun(id string) error
	FinalizeRun(id string) error
	ClearCurrentRun() error
	ClearLastRun() error
	CacheLevels(levels []models.Level) error
	CachedLevels() ([]models.Level, error)
}

// Controller drives one run through its lifecycle.
type Controller struct {
	svc    Service
	store  Store
	stager *media.Stager
	clock  func() time.Time
	budget int

	phase     Phase
	userID    string
	levels    []models.Level
	runID     string
	run       *models.Run
	challenge *models.Level

	// Countdown state, meaningful only in PhaseActive with timed true.
	timed        bool
	pendingLimit int
	pendingStart time.Time

	staged *media.Staged

	// summaryOnly is set when Bootstrap found a finished-but-unposted
	// run and skipped run creation entirely.
	summaryOnly bool
}

// Options configures a Controller.
type Options struct {
	Service Service
	Store   Store
	Stager  *media.Stager
	// Clock defaults to time.Now.
	Clock func() time.Time
	// SkipBudget is the per-run whole-challenge skip allowance.
	SkipBudget int
}

// New creates a controller. Bootstrap must be called before use.
func New(opts Options) *Controller {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	budget := opts.SkipBudget
	if budget < 0 {
		budget = 0
	}
	return &Controller{
		svc:    opts.Service,
		store:  opts.Store,
		stager: opts.Stager,
		clock:  clock,
		budget: budget,
		phase:  PhaseBooting,
	}
}

// Bootstrap runs the initialization protocol: resolve identity, fetch
// the catalog, honor a finished-but-unposted run, adopt or create the
// current run, and derive the challenge/timer/proof state. A countdown
// that expired while the client was away is resolved here, before
// anything renders.
func (c *Controller) Bootstrap(ctx context.Context) error {
	c.summaryOnly = false
	c.phase = PhaseBooting

	userID, err := c.store.GetOrCreateUserID()
	if err != nil {
		return fmt.Errorf("resolve identity: %w", err)
	}
	c.userID = userID

	if err := c.loadCatalog(ctx); err != nil {
		return err
	}

	current, last, err := c.store.RunPointer()
	if err != nil {
		return fmt.Errorf("read run pointer: %w", err)
	}

	// A finished-but-unposted run wins: go straight to the summary.
	if last != "" {
		run, err := c.svc.GetRun(ctx, last)
		switch {
		case errors.Is(err, api.ErrNotFound):
			// Deleted server-side; drop the stale reference.
			_ = c.store.ClearLastRun()
		case err != nil:
			return fmt.Errorf("fetch last run: %w", err)
		case run.Finished():
			c.run = run
			c.runID = run.ID
			c.phase = PhaseFinished
			c.summaryOnly = true
			return nil
		default:
			// The pointer lied; the run is still active somewhere.
			_ = c.store.ClearLastRun()
		}
	}

	var run *models.Run
	if current != "" {
		fetched, err := c.svc.GetRun(ctx, current)
		switch {
		case errors.Is(err, api.ErrNotFound):
			_ = c.store.ClearCurrentRun()
		case err != nil:
			return fmt.Errorf("fetch current run: %w", err)
		default:
			run = fetched
		}
	}

	if run == nil {
		id, err := c.svc.CreateRun(ctx, api.CreateRunRequest{
			UserID: c.userID,
			Public: false,
		})
		if err != nil {
			return fmt.Errorf("create run: %w", err)
		}
		if err := c.store.SetCurrentRun(id); err != nil {
			return fmt.Errorf("persist run pointer: %w", err)
		}
		run, err = c.svc.GetRun(ctx, id)
		if err != nil {
			return fmt.Errorf("fetch created run: %w", err)
		}
	}

	return c.adopt(ctx, run)
}

// loadCatalog fetches the level catalog, caching it locally and falling
// back to the cache when the fetch fails.
func (c *Controller) loadCatalog(ctx context.Context) error {
	levels, err := c.svc.ListLevels(ctx)
	if err != nil {
		log.Errorf("level catalog fetch failed, trying cache: %v", err)
		cached, cacheErr := c.store.CachedLevels()
		if cacheErr != nil || len(cached) == 0 {
			return fmt.Errorf("fetch levels: %w", err)
		}
		c.levels = cached
		return nil
	}
	if err := c.store.CacheLevels(levels); err != nil {
		log.Errorf("level catalog cache write failed: %v", err)
	}
	c.levels = levels
	return nil
}

// adopt installs run as the controller's state and resolves any
// already-expired countdown before the caller renders.
func (c *Controller) adopt(ctx context.Context, run *models.Run) error {
	// Bounded by the level count: each expired countdown consumes a
	// level (or finishes the run).
	for {
		c.apply(run)
		if c.phase != PhaseActive || !c.timed || c.remaining() > 0 {
			return nil
		}
		next, err := c.timeoutOnce(ctx)
		if err != nil {
			return err
		}
		run = next
	}
}

// apply derives phase, challenge, and countdown state from run.
// Pure state derivation; no network.
func (c *Controller) apply(run *models.Run) {
	c.run = run
	c.runID = run.ID
	c.timed = false

	if run.Finished() {
		// Exactly-once: the store ignores a finalize for an id that is
		// no longer the current pointer.
		if err := c.store.FinalizeRun(run.ID); err != nil {
			log.Errorf("finalize run pointer: %v", err)
		}
		c.challenge = nil
		c.phase = PhaseFinished
		c.releaseStaged()
		return
	}

	c.challenge = c.resolveChallenge(run)
	if c.challenge == nil {
		// No pending level on an unfinished run: anomalous, render the
		// finished-like state with no challenge and no timer.
		c.phase = PhaseFinished
		return
	}

	if run.ProofPending {
		c.phase = PhaseProof
		return
	}

	c.phase = PhaseActive

	limit := run.PendingTimeLimit
	if limit == nil {
		limit = c.challenge.SecondsLimit
	}
	if limit == nil || *limit <= 0 {
		return // untimed level
	}
	c.timed = true
	c.pendingLimit = *limit
	if run.PendingStartedAt != nil {
		c.pendingStart = *run.PendingStartedAt
	} else {
		c.pendingStart = c.clock()
	}
}

// resolveChallenge prefers the server-embedded level object, falling
// back to a catalog lookup by id.
func (c *Controller) resolveChallenge(run *models.Run) *models.Level {
	if run.PendingLevel != nil {
		return run.PendingLevel
	}
	if run.PendingLevelID == nil {
		return nil
	}
	for i := range c.levels {
		if c.levels[i].ID == *run.PendingLevelID {
			return &c.levels[i]
		}
	}
	return nil
}

// remaining computes the wall-clock seconds left on the countdown.
// Derived from the absolute start timestamp, never a paused interval,
// so it survives suspension and backgrounding.
func (c *Controller) remaining() int {
	elapsed := int(c.clock().Sub(c.pendingStart) / time.Second)
	left := c.pendingLimit - elapsed
	if left < 0 {
		return 0
	}
	return left
}

// Tick refreshes the countdown and reports whether it hit zero.
// Only meaningful in PhaseActive; the caller must not tick during the
// proof step or while a transition is in flight.
func (c *Controller) Tick() (timedOut bool) {
	if c.phase != PhaseActive || !c.timed {
		return false
	}
	return c.remaining() <= 0
}

// Done moves ACTIVE -> PROOF. The proof step is entered optimistically;
// persisting the flag server-side is best-effort and failure is
// reconciled on the next full reload.
func (c *Controller) Done(ctx context.Context) error {
	if c.phase != PhaseActive {
		return nil
	}
	c.phase = PhaseProof
	c.timed = false
	if err := c.svc.SetProofState(ctx, c.runID, true); err != nil {
		log.Errorf("set proof state (non-fatal): %v", err)
	}
	return nil
}

// StageProof stages a proof file for the current level, replacing (and
// releasing) any previous selection.
func (c *Controller) StageProof(sourcePath string) error {
	if c.phase != PhaseProof {
		return nil
	}
	staged, err := c.stager.Stage(sourcePath)
	if err != nil {
		return err
	}
	c.releaseStaged()
	c.staged = staged
	return nil
}

// SubmitProof uploads the staged file and records a completed step with
// proof. If the upload fails the transition aborts: the staged file is
// retained and the caller returns the user to the proof step.
func (c *Controller) SubmitProof(ctx context.Context) error {
	if c.phase != PhaseProof || c.staged == nil {
		return nil
	}

	uploaded, err := c.svc.Upload(ctx, c.staged.Path)
	if err != nil {
		return fmt.Errorf("upload proof: %w", err)
	}

	if _, err := c.svc.SubmitStep(ctx, c.runID, api.SubmitStepRequest{
		Completed:    true,
		SkippedWhole: false,
		ProofURL:     &uploaded.URL,
	}); err != nil {
		return fmt.Errorf("submit step: %w", err)
	}

	return c.loadNext(ctx)
}

// SkipProof records a completed step without proof. Does not consume
// skip budget.
func (c *Controller) SkipProof(ctx context.Context) error {
	if c.phase != PhaseProof {
		return nil
	}
	if _, err := c.svc.SubmitStep(ctx, c.runID, api.SubmitStepRequest{
		Completed:    true,
		SkippedWhole: false,
	}); err != nil {
		return fmt.Errorf("submit step: %w", err)
	}
	return c.loadNext(ctx)
}

// SkipChallenge skips the whole level, consuming one unit of skip
// budget. A local no-op when the budget is exhausted.
func (c *Controller) SkipChallenge(ctx context.Context) error {
	if c.phase != PhaseActive {
		return nil
	}
	if c.run.SkipsUsed >= c.budget {
		return nil
	}
	if _, err := c.svc.SubmitStep(ctx, c.runID, api.SubmitStepRequest{
		Completed:    false,
		SkippedWhole: true,
	}); err != nil {
		return fmt.Errorf("submit step: %w", err)
	}
	return c.loadNext(ctx)
}

// Timeout handles the countdown reaching zero. With budget left it
// behaves as a whole-challenge skip; with the budget exhausted the run
// finishes immediately, without a further step. The server remains the
// ledger authority for budget accounting.
func (c *Controller) Timeout(ctx context.Context) error {
	if c.phase != PhaseActive {
		return nil
	}
	run, err := c.timeoutOnce(ctx)
	if err != nil {
		return err
	}
	return c.adopt(ctx, run)
}

// timeoutOnce performs one timeout transition and returns the re-fetched
// run, without re-deriving local state (the caller does that, which
// keeps the expired-at-load loop in one place).
func (c *Controller) timeoutOnce(ctx context.Context) (*models.Run, error) {
	if c.run.SkipsUsed >= c.budget {
		if err := c.svc.FinishRun(ctx, c.runID); err != nil {
			return nil, fmt.Errorf("finish run: %w", err)
		}
	} else {
		if _, err := c.svc.SubmitStep(ctx, c.runID, api.SubmitStepRequest{
			Completed:    false,
			SkippedWhole: true,
		}); err != nil {
			return nil, fmt.Errorf("submit step: %w", err)
		}
	}

	c.releaseStaged()
	run, err := c.svc.GetRun(ctx, c.runID)
	if err != nil {
		return nil, fmt.Errorf("reload run: %w", err)
	}
	return run, nil
}

// GiveUp finishes the run immediately regardless of remaining levels or
// skip budget.
func (c *Controller) GiveUp(ctx context.Context) error {
	if c.phase != PhaseActive && c.phase != PhaseProof {
		return nil
	}
	if err := c.svc.FinishRun(ctx, c.runID); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return c.loadNext(ctx)
}

// loadNext re-fetches the run and derives the next challenge, proof, or
// finished state. Any staged proof is always discarded when moving on.
func (c *Controller) loadNext(ctx context.Context) error {
	c.releaseStaged()
	run, err := c.svc.GetRun(ctx, c.runID)
	if err != nil {
		return fmt.Errorf("reload run: %w", err)
	}
	return c.adopt(ctx, run)
}

// releaseStaged drops the staging copy, if any.
func (c *Controller) releaseStaged() {
	if c.staged != nil {
		c.staged.Release()
		c.staged = nil
	}
}

// Close releases held resources. Safe on a nil or unbooted controller.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.releaseStaged()
}

// Accessors. The TUI reads these between transitions.

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// UserID returns the anonymous identity.
func (c *Controller) UserID() string { return c.userID }

// RunID returns the active run id.
func (c *Controller) RunID() string { return c.runID }

// Run returns the cached run view.
func (c *Controller) Run() *models.Run { return c.run }

// Challenge returns the level currently being attempted, nil if none.
func (c *Controller) Challenge() *models.Level { return c.challenge }

// Levels returns the catalog.
func (c *Controller) Levels() []models.Level { return c.levels }

// Timed reports whether the active challenge has a countdown.
func (c *Controller) Timed() bool { return c.phase == PhaseActive && c.timed }

// TimeLeft returns the seconds remaining, 0 when untimed or inactive.
func (c *Controller) TimeLeft() int {
	if !c.Timed() {
		return 0
	}
	return c.remaining()
}

// TimeLimit returns the countdown budget for the active challenge.
func (c *Controller) TimeLimit() int {
	if !c.Timed() {
		return 0
	}
	return c.pendingLimit
}

// SkipsUsed returns the run's consumed skip count.
func (c *Controller) SkipsUsed() int {
	if c.run == nil {
		return 0
	}
	return c.run.SkipsUsed
}

// SkipBudget returns the per-run skip allowance.
func (c *Controller) SkipBudget() int { return c.budget }

// CanSkip reports whether a whole-challenge skip is still available.
func (c *Controller) CanSkip() bool {
	return c.run != nil && c.run.SkipsUsed < c.budget
}

// Staged returns the proof file staged for upload, nil if none.
func (c *Controller) Staged() *media.Staged { return c.staged }

// SummaryOnly reports whether Bootstrap resolved straight to a
// finished-but-unposted run (no active run exists).
func (c *Controller) SummaryOnly() bool { return c.summaryOnly }
