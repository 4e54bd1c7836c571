package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dareloop/dareloop/internal/api"
	"github.com/dareloop/dareloop/internal/config"
	"github.com/dareloop/dareloop/internal/db"
	"github.com/dareloop/dareloop/internal/feed"
	"github.com/dareloop/dareloop/internal/models"
	"github.com/dareloop/dareloop/internal/runctrl"
	"github.com/dareloop/dareloop/internal/tui/components"
	"github.com/dareloop/dareloop/internal/tui/views"
)

// ViewType identifies the current view.
type ViewType int

const (
	ViewHome ViewType = iota
	ViewRun
	ViewSummary
	ViewFeed
)

// autoplayInterval is how often the playing carousel advances.
const autoplayInterval = 3 * time.Second

// springFrameInterval paces spring-back animation frames.
const springFrameInterval = time.Second / 60

// Model is the main Bubble Tea model for the TUI.
//
// It serializes run transitions: while busy is set no new transition
// starts and the countdown does not tick, so the run controller is only
// ever touched by one goroutine at a time.
type Model struct {
	db     *db.DB
	cfg    *config.Config
	client *api.Client
	ctrl   *runctrl.Controller
	feed   *feed.Controller

	keymap Keymap
	styles Styles

	// Views
	currentView  ViewType
	homeView     *views.HomeView
	runView      *views.RunView
	summaryView  *views.SummaryView
	feedView     *views.FeedView
	commentsView *views.CommentsView
	showComments bool

	// State
	width    int
	height   int
	ready    bool
	busy     bool
	ticking  bool
	quitting bool
	err      error
}

// Message types for Bubble Tea
type (
	bootstrapMsg struct {
		err error
	}
	// transitionMsg follows every run transition (done, skips, submit,
	// timeout, give up).
	transitionMsg struct {
		err error
	}
	countdownTickMsg struct{}
	autoplayTickMsg  struct{}
	springFrameMsg   struct{}

	stepsMsg struct {
		steps []models.Step
		err   error
	}
	postMsg struct {
		err error
	}
	deleteMsg struct {
		err error
	}
	coverMsg struct {
		previous int64
		err      error
	}
	shareMsg struct {
		err error
	}
	feedSharedMsg struct {
		err error
	}

	feedPageMsg struct {
		err error
	}
	likeMsg struct {
		toggle feed.LikeToggle
		result *api.LikeResult
		err    error
	}
	commentsMsg struct {
		runID    string
		comments []models.Comment
		err      error
	}
	commentPostedMsg struct {
		comment *models.Comment
		err     error
	}
	muteHideMsg struct {
		runID string
	}
)

// NewModel creates the main TUI model.
func NewModel(database *db.DB, cfg *config.Config, client *api.Client, ctrl *runctrl.Controller) *Model {
	return &Model{
		db:           database,
		cfg:          cfg,
		client:       client,
		ctrl:         ctrl,
		keymap:       DefaultKeymap(),
		styles:       DefaultStyles(),
		currentView:  ViewHome,
		homeView:     views.NewHomeView(),
		runView:      views.NewRunView(),
		summaryView:  views.NewSummaryView(),
		feedView:     views.NewFeedView(),
		commentsView: views.NewCommentsView(),
		busy:         true,
	}
}

// Init starts the bootstrap.
func (m *Model) Init() tea.Cmd {
	return m.bootstrapCmd()
}

func (m *Model) bootstrapCmd() tea.Cmd {
	return func() tea.Msg {
		return bootstrapMsg{err: m.ctrl.Bootstrap(context.Background())}
	}
}

func (m *Model) transitionCmd(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return transitionMsg{err: fn(context.Background())}
	}
}

func countdownTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return countdownTickMsg{} })
}

// scheduleCountdown starts the once-per-second tick chain, but never a
// second one: each scheduled tick is consumed by handleCountdownTick
// before the chain may continue or restart.
func (m *Model) scheduleCountdown() tea.Cmd {
	if m.ticking || m.ctrl == nil || !m.ctrl.Timed() {
		return nil
	}
	m.ticking = true
	return countdownTick()
}

func autoplayTick() tea.Cmd {
	return tea.Tick(autoplayInterval, func(time.Time) tea.Msg { return autoplayTickMsg{} })
}

func springFrame() tea.Cmd {
	return tea.Tick(springFrameInterval, func(time.Time) tea.Msg { return springFrameMsg{} })
}

// Update handles all messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		inner := msg.Height - 4
		m.homeView.SetSize(msg.Width-4, inner)
		m.runView.SetSize(msg.Width-4, inner)
		m.summaryView.SetSize(msg.Width-4, inner)
		m.feedView.SetSize(msg.Width-4, inner)
		m.commentsView.SetSize(msg.Width-8, inner)
		m.refreshRun()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case bootstrapMsg:
		return m.handleBootstrap(msg)

	case transitionMsg:
		return m.handleTransition(msg)

	case countdownTickMsg:
		return m.handleCountdownTick()

	case autoplayTickMsg:
		if m.currentView == ViewFeed && !m.showComments {
			m.feedView.AdvanceAutoplay()
			cmds := []tea.Cmd{autoplayTick()}
			if m.feedView.Animating() {
				cmds = append(cmds, springFrame())
			}
			return m, tea.Batch(cmds...)
		}
		return m, nil

	case springFrameMsg:
		more := false
		if m.showComments && m.commentsView.UpdateFrame() {
			more = true
		}
		if m.currentView == ViewFeed && m.feedView.UpdateFrames() {
			more = true
		}
		if m.currentView == ViewSummary {
			if c := m.summaryView.Carousel(); c != nil && c.UpdateFrame() {
				more = true
			}
		}
		if more {
			return m, springFrame()
		}
		return m, nil

	case muteHideMsg:
		m.feedView.HideMuteIndicator(msg.runID)
		return m, nil

	case stepsMsg:
		if msg.err != nil {
			m.summaryView.SetError(fmt.Sprintf("could not load steps: %v", msg.err))
			m.summaryView.SetSteps(nil)
			return m, nil
		}
		m.summaryView.SetSteps(msg.steps)
		return m, nil

	case postMsg:
		if msg.err != nil {
			m.summaryView.SetError(fmt.Sprintf("post failed: %v", msg.err))
			return m, nil
		}
		m.summaryView.SetPublic(true)
		return m, nil

	case deleteMsg:
		if msg.err != nil {
			m.summaryView.SetError(fmt.Sprintf("delete failed: %v", msg.err))
			return m, nil
		}
		return m.startFresh()

	case coverMsg:
		if msg.err != nil {
			m.summaryView.SetCoverLocal(msg.previous)
			m.summaryView.SetError(fmt.Sprintf("could not set cover: %v", msg.err))
		}
		return m, nil

	case shareMsg:
		if msg.err != nil {
			m.summaryView.SetError(fmt.Sprintf("copy failed: %v", msg.err))
			return m, nil
		}
		m.summaryView.SetCopied()
		return m, nil

	case feedSharedMsg:
		if msg.err != nil {
			m.feedView.SetError("copy failed")
		} else {
			m.feedView.SetNotice("link copied")
		}
		return m, nil

	case feedPageMsg:
		if msg.err != nil {
			m.refreshFeed()
			m.feedView.SetError("feed unavailable — scroll to retry")
			return m, nil
		}
		m.refreshFeed()
		return m, nil

	case likeMsg:
		if msg.err != nil {
			m.feed.RevertLike(msg.toggle)
		} else {
			m.feed.ReconcileLike(msg.toggle.RunID, msg.result)
		}
		m.refreshFeed()
		return m, nil

	case commentsMsg:
		if m.showComments && m.commentsView.RunID() == msg.runID {
			if msg.err != nil {
				m.commentsView.SetError("could not load comments")
			} else {
				m.commentsView.SetComments(msg.comments)
			}
		}
		return m, nil

	case commentPostedMsg:
		if msg.err != nil {
			m.commentsView.SetError("could not post comment")
			return m, nil
		}
		m.commentsView.AddComment(*msg.comment)
		m.refreshFeed()
		return m, nil
	}

	return m, nil
}

// handleBootstrap finishes initialization once the run controller is up.
func (m *Model) handleBootstrap(msg bootstrapMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.err = msg.err
		return m, tea.Quit
	}

	m.feed = feed.New(feed.Options{
		Service:         m.client,
		ViewerID:        m.ctrl.UserID(),
		InitialBatch:    m.cfg.Feed.InitialBatch,
		IncrementBatch:  m.cfg.Feed.IncrementBatch,
		CommentPageSize: m.cfg.Feed.CommentPageSize,
	})

	// A finished unposted run goes straight to its summary.
	if m.ctrl.Phase() == runctrl.PhaseFinished {
		return m.enterSummary()
	}

	inProgress := false
	if run := m.ctrl.Run(); run != nil {
		inProgress = run.ProofPending || run.SkipsUsed > 0 || len(run.Steps) > 0
	}
	m.homeView.SetInfo(m.ctrl.UserID(), len(m.ctrl.Levels()), inProgress)
	m.currentView = ViewHome
	m.refreshRun()
	// The countdown is wall-clock, so it keeps running while the player
	// sits on the landing screen.
	return m, m.scheduleCountdown()
}

// handleTransition refreshes state after a run transition completes.
func (m *Model) handleTransition(msg transitionMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.runView.SetError(fmt.Sprintf("that didn't go through: %v", msg.err))
		m.refreshRun()
		return m, m.scheduleCountdown()
	}

	if m.ctrl.Phase() == runctrl.PhaseFinished {
		return m.enterSummary()
	}

	m.refreshRun()
	return m, m.scheduleCountdown()
}

// handleCountdownTick refreshes the countdown and fires the timeout
// transition when it hits zero. Ticks are suppressed while a transition
// is in flight.
func (m *Model) handleCountdownTick() (tea.Model, tea.Cmd) {
	m.ticking = false
	if m.busy || m.ctrl.Phase() != runctrl.PhaseActive {
		return m, nil
	}
	if m.ctrl.Tick() {
		m.busy = true
		m.refreshRun()
		return m, m.transitionCmd(m.ctrl.Timeout)
	}
	m.refreshRun()
	return m, m.scheduleCountdown()
}

// handleKey routes key input to the current view.
func (m *Model) handleKey(key string) (tea.Model, tea.Cmd) {
	if key == "ctrl+c" || (key == "q" && !m.typing()) {
		m.quitting = true
		m.ctrl.Close()
		return m, tea.Quit
	}

	if m.showComments {
		return m.handleCommentsKey(key)
	}

	if key == "tab" {
		return m.toggleFeed()
	}

	switch m.currentView {
	case ViewHome:
		return m.handleHomeKey(key)
	case ViewRun:
		return m.handleRunKey(key)
	case ViewSummary:
		return m.handleSummaryKey(key)
	case ViewFeed:
		return m.handleFeedKey(key)
	}
	return m, nil
}

func (m *Model) handleHomeKey(key string) (tea.Model, tea.Cmd) {
	switch m.homeView.Update(key) {
	case views.HomeActionContinue:
		if m.busy {
			return m, nil
		}
		m.currentView = ViewRun
		m.refreshRun()
		return m, nil

	case views.HomeActionOpenFeed:
		return m.toggleFeed()
	}
	return m, nil
}

// typing reports whether a text input currently owns the keyboard.
func (m *Model) typing() bool {
	if m.showComments {
		return true
	}
	if m.currentView == ViewRun && m.ctrl != nil && m.ctrl.Phase() == runctrl.PhaseProof {
		return true
	}
	if m.currentView == ViewSummary && m.summaryView.Editing() {
		return true
	}
	return false
}

func (m *Model) handleRunKey(key string) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch m.runView.Update(key) {
	case views.RunActionDone:
		m.busy = true
		m.refreshRun()
		return m, m.transitionCmd(m.ctrl.Done)

	case views.RunActionSkipChallenge:
		if !m.ctrl.CanSkip() {
			m.runView.SetError("no skips left")
			return m, nil
		}
		m.busy = true
		m.refreshRun()
		return m, m.transitionCmd(m.ctrl.SkipChallenge)

	case views.RunActionGiveUp:
		m.busy = true
		m.refreshRun()
		return m, m.transitionCmd(m.ctrl.GiveUp)

	case views.RunActionStageProof:
		// Local file copy, fast enough to do inline.
		if err := m.ctrl.StageProof(m.runView.PathValue()); err != nil {
			m.runView.SetError(fmt.Sprintf("could not read file: %v", err))
			return m, nil
		}
		m.runView.ClearPath()
		m.refreshRun()
		return m, nil

	case views.RunActionSubmitProof:
		m.busy = true
		m.refreshRun()
		return m, m.transitionCmd(m.ctrl.SubmitProof)

	case views.RunActionSkipProof:
		m.busy = true
		m.refreshRun()
		return m, m.transitionCmd(m.ctrl.SkipProof)
	}
	return m, nil
}

func (m *Model) handleSummaryKey(key string) (tea.Model, tea.Cmd) {
	switch m.summaryView.Update(key) {
	case views.SummaryActionPost:
		runID := m.ctrl.RunID()
		caption := m.summaryView.Caption()
		return m, func() tea.Msg {
			public := true
			req := api.PatchRunRequest{Public: &public}
			if caption != "" {
				req.Caption = &caption
			}
			if err := m.client.PatchRun(context.Background(), runID, req); err != nil {
				return postMsg{err: err}
			}
			// Posted runs leave the summary-resume path.
			return postMsg{err: m.db.ClearRunPointers()}
		}

	case views.SummaryActionSetCover:
		step := m.summaryView.SelectedStep()
		if step == nil {
			return m, nil
		}
		stepID := step.ID
		previous := m.summaryView.SetCoverLocal(stepID)
		runID := m.ctrl.RunID()
		return m, func() tea.Msg {
			return coverMsg{
				previous: previous,
				err:      m.client.SetCoverStep(context.Background(), runID, stepID),
			}
		}

	case views.SummaryActionShare:
		link := fmt.Sprintf("%s/runs/%s", m.cfg.API.BaseURL, m.ctrl.RunID())
		return m, func() tea.Msg {
			return shareMsg{err: clipboard.WriteAll(link)}
		}

	case views.SummaryActionDelete:
		runID := m.ctrl.RunID()
		return m, func() tea.Msg {
			if err := m.client.DeleteRun(context.Background(), runID); err != nil {
				return deleteMsg{err: err}
			}
			return deleteMsg{err: m.db.ClearRunPointers()}
		}

	case views.SummaryActionNewRun:
		return m.startFresh()
	}

	if c := m.summaryView.Carousel(); c != nil && !c.Settled() {
		return m, springFrame()
	}
	return m, nil
}

func (m *Model) handleFeedKey(key string) (tea.Model, tea.Cmd) {
	switch m.feedView.Update(key) {
	case views.FeedActionScrolled:
		return m, m.prefetchCmd()

	case views.FeedActionLike:
		idx := m.feedView.VisibleIndex()
		toggle, ok := m.feed.ToggleLikeLocal(idx)
		if !ok {
			return m, nil
		}
		m.refreshFeed()
		return m, func() tea.Msg {
			result, err := m.feed.PushLike(context.Background(), toggle)
			return likeMsg{toggle: toggle, result: result, err: err}
		}

	case views.FeedActionOpenComments:
		item := m.feedView.VisibleItem()
		if item == nil {
			return m, nil
		}
		m.showComments = true
		m.commentsView.Open(item.RunID, item.Username)
		runID := item.RunID
		return m, func() tea.Msg {
			comments, err := m.feed.Comments(context.Background(), runID)
			return commentsMsg{runID: runID, comments: comments, err: err}
		}

	case views.FeedActionShare:
		item := m.feedView.VisibleItem()
		if item == nil {
			return m, nil
		}
		link := fmt.Sprintf("%s/runs/%s", m.cfg.API.BaseURL, item.RunID)
		return m, func() tea.Msg {
			return feedSharedMsg{err: clipboard.WriteAll(link)}
		}

	case views.FeedActionToggleMute:
		item := m.feedView.VisibleItem()
		if item == nil {
			return m, nil
		}
		runID := item.RunID
		return m, tea.Tick(components.MuteIndicatorDuration, func(time.Time) tea.Msg {
			return muteHideMsg{runID: runID}
		})
	}

	// Manual carousel paging starts a glide that needs frames.
	if m.feedView.Animating() {
		return m, springFrame()
	}
	return m, nil
}

func (m *Model) handleCommentsKey(key string) (tea.Model, tea.Cmd) {
	switch m.commentsView.Update(key) {
	case views.CommentsActionDismiss:
		m.showComments = false
		return m, nil

	case views.CommentsActionPost:
		runID := m.commentsView.RunID()
		content := m.commentsView.Content()
		return m, func() tea.Msg {
			comment, err := m.feed.PostComment(context.Background(), runID, content)
			return commentPostedMsg{comment: comment, err: err}
		}

	default:
		// A short pull springs the sheet back once released.
		if m.commentsView.Springing() {
			return m, springFrame()
		}
		return m, nil
	}
}

// toggleFeed switches between the feed and the run/summary screen.
func (m *Model) toggleFeed() (tea.Model, tea.Cmd) {
	if m.currentView == ViewFeed {
		m.feedView.StopPlayback()
		if m.ctrl.Phase() == runctrl.PhaseFinished {
			m.currentView = ViewSummary
			return m, nil
		}
		m.currentView = ViewRun
		m.refreshRun()
		if m.busy {
			return m, nil
		}
		return m, m.scheduleCountdown()
	}

	m.currentView = ViewFeed
	m.refreshFeed()
	cmds := []tea.Cmd{autoplayTick()}
	if m.feed.Len() == 0 && m.feed.HasMore() {
		cmds = append(cmds, m.initialFeedCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) initialFeedCmd() tea.Cmd {
	return func() tea.Msg {
		return feedPageMsg{err: m.feed.LoadInitial(context.Background())}
	}
}

// prefetchCmd tops the feed up per the prefetch policy after a scroll.
func (m *Model) prefetchCmd() tea.Cmd {
	idx := m.feedView.VisibleIndex()
	if idx < 0 {
		return nil
	}
	need := m.feed.Need(idx)
	if need == 0 {
		return nil
	}
	return func() tea.Msg {
		return feedPageMsg{err: m.feed.LoadMore(context.Background(), need)}
	}
}

// enterSummary switches to the summary screen and loads the run's steps.
func (m *Model) enterSummary() (tea.Model, tea.Cmd) {
	m.currentView = ViewSummary
	m.summaryView = views.NewSummaryView()
	m.summaryView.SetSize(m.width-4, m.height-4)
	if run := m.ctrl.Run(); run != nil {
		m.summaryView.SetPublic(run.Public)
	}
	runID := m.ctrl.RunID()
	return m, func() tea.Msg {
		steps, err := m.client.GetRunSteps(context.Background(), runID)
		return stepsMsg{steps: steps, err: err}
	}
}

// startFresh drops the finished run's pointers and bootstraps a new run.
func (m *Model) startFresh() (tea.Model, tea.Cmd) {
	if err := m.db.ClearRunPointers(); err != nil {
		m.summaryView.SetError(fmt.Sprintf("could not reset: %v", err))
		return m, nil
	}
	m.busy = true
	m.currentView = ViewRun
	m.runView = views.NewRunView()
	m.runView.SetSize(m.width-4, m.height-4)
	return m, m.bootstrapCmd()
}

// refreshRun pushes a fresh controller snapshot into the run view.
func (m *Model) refreshRun() {
	if m.ctrl == nil {
		return
	}
	snap := views.RunSnapshot{
		Phase:      m.ctrl.Phase(),
		Timed:      m.ctrl.Timed(),
		TimeLeft:   m.ctrl.TimeLeft(),
		TimeLimit:  m.ctrl.TimeLimit(),
		SkipsUsed:  m.ctrl.SkipsUsed(),
		SkipBudget: m.ctrl.SkipBudget(),
		Busy:       m.busy,
	}
	if challenge := m.ctrl.Challenge(); challenge != nil {
		snap.LevelNumber = challenge.LevelNumber
		snap.Title = challenge.Title
		snap.Description = RenderMarkdown(challenge.Description, m.width-8)
	}
	if staged := m.ctrl.Staged(); staged != nil {
		snap.StagedName = staged.SourcePath
	}
	m.runView.Refresh(snap)
}

// refreshFeed pushes the feed controller's state into the feed view.
func (m *Model) refreshFeed() {
	if m.feed == nil {
		return
	}
	m.feedView.SetItems(m.feed.Items(), m.feed.HasMore(), m.feed.Fetching())
}

// View renders the current view.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}
	if m.err != nil {
		return m.styles.StatusError.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
	}

	header := m.styles.HeaderTitle.Render("DARELOOP")
	var body, footer string

	if m.showComments {
		body = m.commentsView.View()
		footer = ""
	} else {
		switch m.currentView {
		case ViewHome:
			body = m.homeView.View()
			footer = ""
		case ViewRun:
			body = m.runView.View()
			footer = m.styles.Footer.Render(m.keymap.QuickHelpText())
		case ViewSummary:
			body = m.summaryView.View()
			footer = ""
		case ViewFeed:
			body = m.feedView.View()
			footer = m.styles.Footer.Render(m.keymap.FeedHelpText())
		}
	}

	out := header + "\n\n" + body
	if footer != "" {
		out += "\n\n" + footer
	}
	return m.styles.Container.Render(out)
}
