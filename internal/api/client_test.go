package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{BaseURL: server.URL, RequestsPerSecond: 1000, Burst: 100})
}

func TestListLevels(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/levels", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":1,"title":"Drink a glass of water","levelNumber":1,"secondsLimit":30},
			{"id":2,"title":"Wave at a neighbor","levelNumber":2}
		]`))
	}))

	levels, err := client.ListLevels(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.True(t, levels[0].Timed())
	assert.False(t, levels[1].Timed())
}

func TestCreateRunPayload(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/runs", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user-1", body["userId"])
		assert.Equal(t, false, body["public"])
		_, hasCaption := body["caption"]
		assert.False(t, hasCaption, "nil caption must be omitted")

		_, _ = w.Write([]byte(`{"id":"run-1"}`))
	}))

	id, err := client.CreateRun(context.Background(), CreateRunRequest{UserID: "user-1", Public: false})
	require.NoError(t, err)
	assert.Equal(t, "run-1", id)
}

func TestGetRunNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.GetRun(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitStepShape(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runs/run-1/submit-step", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, false, body["completed"])
		assert.Equal(t, true, body["skippedWhole"])
		assert.Nil(t, body["proofUrl"])

		_, _ = w.Write([]byte(`{"id":7}`))
	}))

	id, err := client.SubmitStep(context.Background(), "run-1", SubmitStepRequest{
		Completed:    false,
		SkippedWhole: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestUploadMultipart(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "proof.jpg", header.Filename)

		_, _ = w.Write([]byte(`{"path":"2026/08/abc.jpg","url":"https://cdn.example/abc.jpg"}`))
	}))

	dir := t.TempDir()
	path := filepath.Join(dir, "proof.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0644))

	result, err := client.Upload(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/abc.jpg", result.URL)
	assert.Equal(t, "2026/08/abc.jpg", result.Path)
}

func TestUploadRejectedStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Max 5MB", http.StatusRequestEntityTooLarge)
	}))

	dir := t.TempDir()
	path := filepath.Join(dir, "proof.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := client.Upload(context.Background(), path)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusErr.Status)
}

func TestPublicRunsQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public-runs", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.Equal(t, "6", r.URL.Query().Get("offset"))
		assert.Equal(t, "viewer-1", r.URL.Query().Get("viewerId"))
		_, _ = w.Write([]byte(`{"items":[{"runId":"r1","likeCount":2,"likedByViewer":true}],"hasMore":true,"nextOffset":9}`))
	}))

	page, err := client.PublicRuns(context.Background(), 3, 6, "viewer-1")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].LikedByViewer)
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextOffset)
	assert.Equal(t, 9, *page.NextOffset)
}

func TestRunsByUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/runs/by-user/user-1", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":"r2","caption":"night round","public":true,"createdAt":"2026-08-20T19:04:05Z","stepsCompleted":4},
			{"id":"r1","public":false,"stepsCompleted":0}
		]`))
	}))

	runs, err := client.RunsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r2", runs[0].ID)
	require.NotNil(t, runs[0].Caption)
	assert.Equal(t, "night round", *runs[0].Caption)
	assert.True(t, runs[0].Public)
	require.NotNil(t, runs[0].CreatedAt)
	assert.Equal(t, 4, runs[0].StepsCompleted)
	assert.Nil(t, runs[1].Caption)
	assert.Nil(t, runs[1].CreatedAt)
}

func TestLikeAndUnlike(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runs/r1/like", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "viewer-1", body["userId"])

		switch r.Method {
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"liked":true,"likeCount":3}`))
		case http.MethodDelete:
			_, _ = w.Write([]byte(`{"liked":false,"likeCount":2}`))
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))

	liked, err := client.Like(context.Background(), "r1", "viewer-1")
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, 3, liked.LikeCount)

	unliked, err := client.Unlike(context.Background(), "r1", "viewer-1")
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, 2, unliked.LikeCount)
}

func TestPostComment(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runs/r1/comments", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"id":11,"runId":"r1","userId":"u1","username":"anon","content":"nice run"}`))
	}))

	comment, err := client.PostComment(context.Background(), "r1", "u1", "nice run")
	require.NoError(t, err)
	assert.Equal(t, int64(11), comment.ID)
	assert.Equal(t, "nice run", comment.Content)
}
