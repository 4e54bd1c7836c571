package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dareloop/dareloop/internal/api"
	"github.com/dareloop/dareloop/internal/config"
	"github.com/dareloop/dareloop/internal/db"
	"github.com/dareloop/dareloop/internal/media"
	"github.com/dareloop/dareloop/internal/models"
	"github.com/dareloop/dareloop/internal/runctrl"
)

// stubRunService serves a single timed level, just enough for the run
// controller to bootstrap an active run.
type stubRunService struct {
	run   *models.Run
	level models.Level
}

func newStubRunService() *stubRunService {
	limit := 60
	return &stubRunService{
		level: models.Level{ID: 1, Title: "Level 1", LevelNumber: 1, SecondsLimit: &limit},
	}
}

func (s *stubRunService) ListLevels(ctx context.Context) ([]models.Level, error) {
	return []models.Level{s.level}, nil
}

func (s *stubRunService) CreateRun(ctx context.Context, req api.CreateRunRequest) (string, error) {
	now := time.Now()
	id := s.level.ID
	embedded := s.level
	s.run = &models.Run{
		ID:               "run-1",
		UserID:           req.UserID,
		StartedAt:        now,
		PendingLevelID:   &id,
		PendingLevel:     &embedded,
		PendingStartedAt: &now,
		PendingTimeLimit: s.level.SecondsLimit,
	}
	return s.run.ID, nil
}

func (s *stubRunService) GetRun(ctx context.Context, id string) (*models.Run, error) {
	if s.run == nil || s.run.ID != id {
		return nil, api.ErrNotFound
	}
	snapshot := *s.run
	return &snapshot, nil
}

func (s *stubRunService) FinishRun(ctx context.Context, id string) error {
	now := time.Now()
	s.run.FinishedAt = &now
	return nil
}

func (s *stubRunService) SetProofState(ctx context.Context, id string, proofPending bool) error {
	s.run.ProofPending = proofPending
	return nil
}

func (s *stubRunService) SubmitStep(ctx context.Context, runID string, req api.SubmitStepRequest) (int64, error) {
	return 1, fmt.Errorf("not exercised")
}

func (s *stubRunService) Upload(ctx context.Context, filePath string) (*api.UploadResult, error) {
	return nil, fmt.Errorf("not exercised")
}

func newTestModel(t *testing.T) *Model {
	t.Helper()

	store, err := db.New(db.DefaultConfig(":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctrl := runctrl.New(runctrl.Options{
		Service:    newStubRunService(),
		Store:      store,
		Stager:     media.NewStager(t.TempDir()),
		SkipBudget: 1,
	})
	t.Cleanup(ctrl.Close)

	cfg := config.DefaultConfig()
	client := api.New(api.Config{BaseURL: cfg.API.BaseURL})

	m := NewModel(store, cfg, client, ctrl)
	m.width = 80
	m.height = 24
	return m
}

func TestCountdownSingleTickChain(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.handleBootstrap(bootstrapMsg{err: m.ctrl.Bootstrap(context.Background())})
	require.NotNil(t, cmd, "a timed level starts the countdown chain")
	require.True(t, m.ticking)

	// A live chain is never doubled.
	assert.Nil(t, m.scheduleCountdown())

	// Feed round-trips must not add chains either.
	_, _ = m.toggleFeed()
	_, cmd = m.toggleFeed()
	assert.Nil(t, cmd)

	// Consuming the pending tick lets the chain continue, once.
	_, cmd = m.handleCountdownTick()
	require.NotNil(t, cmd)
	assert.True(t, m.ticking)
	assert.Nil(t, m.scheduleCountdown())
}

func TestCountdownChainRestartsAfterTransition(t *testing.T) {
	m := newTestModel(t)
	_, _ = m.handleBootstrap(bootstrapMsg{err: m.ctrl.Bootstrap(context.Background())})

	// A busy transition consumes the tick without rescheduling...
	m.busy = true
	_, cmd := m.handleCountdownTick()
	assert.Nil(t, cmd)
	assert.False(t, m.ticking)

	// ...and the transition's completion restarts exactly one chain.
	m.busy = false
	_, cmd = m.handleTransition(transitionMsg{})
	require.NotNil(t, cmd)
	assert.True(t, m.ticking)
	assert.Nil(t, m.scheduleCountdown())
}
