// Package api is the HTTP client for the Dareloop backend. The backend
// is a stateless JSON-over-HTTP service and the system of record for
// levels, runs, steps, likes, and comments.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/dareloop/dareloop/internal/models"
)

// ErrNotFound is returned when the server reports an id the client
// held locally no longer exists. Callers clear the stale reference and
// fall back to a fresh-initialization path.
var ErrNotFound = errors.New("api: not found")

// StatusError carries a non-2xx response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: unexpected status %d: %s", e.Status, e.Body)
}

// Client talks to the Dareloop backend.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// Config holds client settings.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// New creates a backend client.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 10
	}
	if cfg.Burst == 0 {
		cfg.Burst = 5
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// do issues a JSON request and decodes the response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Status: resp.StatusCode, Body: string(snippet)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ListLevels fetches the full level catalog.
func (c *Client) ListLevels(ctx context.Context) ([]models.Level, error) {
	var levels []models.Level
	if err := c.do(ctx, http.MethodGet, "/levels", nil, &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

// CreateRunRequest is the payload for CreateRun.
type CreateRunRequest struct {
	UserID  string  `json:"userId"`
	Caption *string `json:"caption,omitempty"`
	Public  bool    `json:"public"`
}

// CreateRun creates a new run attributed to userID and returns its id.
func (c *Client) CreateRun(ctx context.Context, req CreateRunRequest) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/runs", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// GetRun fetches a run's state, with the pending level embedded when
// the server provides it.
func (c *Client) GetRun(ctx context.Context, id string) (*models.Run, error) {
	var run models.Run
	if err := c.do(ctx, http.MethodGet, "/runs/"+url.PathEscape(id), nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// PatchRunRequest carries the mutable run fields.
type PatchRunRequest struct {
	Public  *bool   `json:"public,omitempty"`
	Caption *string `json:"caption,omitempty"`
}

// PatchRun updates a run's caption and/or public flag.
func (c *Client) PatchRun(ctx context.Context, id string, req PatchRunRequest) error {
	return c.do(ctx, http.MethodPatch, "/runs/"+url.PathEscape(id), req, nil)
}

// DeleteRun removes a run.
func (c *Client) DeleteRun(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/runs/"+url.PathEscape(id), nil, nil)
}

// FinishRun marks a run finished. Idempotent: a no-op if the run is
// already finished.
func (c *Client) FinishRun(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/runs/"+url.PathEscape(id)+"/finish", nil, nil)
}

// SetProofState flips the run's proof-pending flag. Best-effort:
// callers treat failure as non-fatal.
func (c *Client) SetProofState(ctx context.Context, id string, proofPending bool) error {
	body := struct {
		ProofPending bool `json:"proofPending"`
	}{ProofPending: proofPending}
	return c.do(ctx, http.MethodPost, "/runs/"+url.PathEscape(id)+"/set-proof-state", body, nil)
}

// SubmitStepRequest records one level outcome.
type SubmitStepRequest struct {
	Completed    bool    `json:"completed"`
	SkippedWhole bool    `json:"skippedWhole"`
	ProofURL     *string `json:"proofUrl"`
}

// SubmitStep appends a step to the run and returns the created step id.
func (c *Client) SubmitStep(ctx context.Context, runID string, req SubmitStepRequest) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/runs/"+url.PathEscape(runID)+"/submit-step", req, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// GetRunSteps fetches the run's recorded steps in submission order.
func (c *Client) GetRunSteps(ctx context.Context, runID string) ([]models.Step, error) {
	var out struct {
		Steps []models.Step `json:"steps"`
	}
	if err := c.do(ctx, http.MethodGet, "/runs/"+url.PathEscape(runID)+"/steps", nil, &out); err != nil {
		return nil, err
	}
	return out.Steps, nil
}

// SetCoverStep marks stepID's media as the run's feed thumbnail.
func (c *Client) SetCoverStep(ctx context.Context, runID string, stepID int64) error {
	body := struct {
		StepID int64 `json:"stepId"`
	}{StepID: stepID}
	return c.do(ctx, http.MethodPost, "/runs/"+url.PathEscape(runID)+"/cover-step", body, nil)
}

// UploadResult is the durable location of uploaded proof media.
type UploadResult struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Upload sends a proof media file as multipart form data.
func (c *Client) Upload(ctx context.Context, filePath string) (*UploadResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open proof file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read proof file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Status: resp.StatusCode, Body: string(snippet)}
	}

	var out UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &out, nil
}

// FeedPage is one page of the public feed.
type FeedPage struct {
	Items      []models.FeedItem `json:"items"`
	HasMore    bool              `json:"hasMore"`
	NextOffset *int              `json:"nextOffset,omitempty"`
}

// PublicRuns fetches a feed page. viewerID resolves per-viewer like state.
func (c *Client) PublicRuns(ctx context.Context, limit, offset int, viewerID string) (*FeedPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("viewerId", viewerID)

	var page FeedPage
	if err := c.do(ctx, http.MethodGet, "/public-runs?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// RunSummary is one entry of a user's run history.
type RunSummary struct {
	ID             string     `json:"id"`
	Caption        *string    `json:"caption"`
	Public         bool       `json:"public"`
	CreatedAt      *time.Time `json:"createdAt"`
	StepsCompleted int        `json:"stepsCompleted"`
}

// RunsByUser fetches userID's run history, newest first.
func (c *Client) RunsByUser(ctx context.Context, userID string) ([]RunSummary, error) {
	var runs []RunSummary
	if err := c.do(ctx, http.MethodGet, "/runs/by-user/"+userID, nil, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// LikeResult is the server's authoritative like state after a toggle.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

// Like records userID's like on a run.
func (c *Client) Like(ctx context.Context, runID, userID string) (*LikeResult, error) {
	body := struct {
		UserID string `json:"userId"`
	}{UserID: userID}
	var out LikeResult
	if err := c.do(ctx, http.MethodPost, "/runs/"+url.PathEscape(runID)+"/like", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unlike removes userID's like from a run.
func (c *Client) Unlike(ctx context.Context, runID, userID string) (*LikeResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(struct {
		UserID string `json:"userId"`
	}{UserID: userID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/runs/"+url.PathEscape(runID)+"/like", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Status: resp.StatusCode, Body: string(snippet)}
	}

	var out LikeResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// ListComments fetches up to limit comments for a run.
func (c *Client) ListComments(ctx context.Context, runID string, limit int) ([]models.Comment, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var out struct {
		Items []models.Comment `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/runs/"+url.PathEscape(runID)+"/comments?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// PostComment appends a comment to a run and returns the created comment.
func (c *Client) PostComment(ctx context.Context, runID, userID, content string) (*models.Comment, error) {
	body := struct {
		UserID  string `json:"userId"`
		Content string `json:"content"`
	}{UserID: userID, Content: content}

	var out models.Comment
	if err := c.do(ctx, http.MethodPost, "/runs/"+url.PathEscape(runID)+"/comments", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchUser updates the viewer's display name. Best-effort.
func (c *Client) PatchUser(ctx context.Context, userID, username string) error {
	body := struct {
		Username string `json:"username"`
	}{Username: username}
	return c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(userID), body, nil)
}
