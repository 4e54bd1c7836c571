// Package feed manages the public feed: cumulative pagination, the
// prefetch policy, per-card visibility, and like/comment engagement.
// Like runctrl, it holds no rendering concerns and is not
// goroutine-safe; the TUI layer serializes access.
package feed

import (
	"context"
	"fmt"

	"github.com/dareloop/dareloop/internal/api"
	"github.com/dareloop/dareloop/internal/models"
)

// Service is the slice of the backend client the feed needs.
type Service interface {
	PublicRuns(ctx context.Context, limit, offset int, viewerID string) (*api.FeedPage, error)
	Like(ctx context.Context, runID, userID string) (*api.LikeResult, error)
	Unlike(ctx context.Context, runID, userID string) (*api.LikeResult, error)
	ListComments(ctx context.Context, runID string, limit int) ([]models.Comment, error)
	PostComment(ctx context.Context, runID, userID, content string) (*models.Comment, error)
}

// Controller accumulates feed pages and tracks pagination state.
type Controller struct {
	svc      Service
	viewerID string

	initialBatch    int
	incrementBatch  int
	commentPageSize int

	items   []models.FeedItem
	seen    map[string]bool
	offset  int
	hasMore bool

	// fetching guards against overlapping page requests. At most one
	// fetch may be in flight.
	fetching bool
}

// Options configures a feed controller.
type Options struct {
	Service  Service
	ViewerID string
	// InitialBatch is the page size for the first load, and the base of
	// the prefetch target. Defaults to 3.
	InitialBatch int
	// IncrementBatch is the page size for subsequent loads. Defaults to 3.
	IncrementBatch int
	// CommentPageSize bounds a comment fetch. Defaults to 200.
	CommentPageSize int
}

// New creates a feed controller. The feed starts empty with more
// assumed available until the server says otherwise.
func New(opts Options) *Controller {
	if opts.InitialBatch <= 0 {
		opts.InitialBatch = 3
	}
	if opts.IncrementBatch <= 0 {
		opts.IncrementBatch = 3
	}
	if opts.CommentPageSize <= 0 {
		opts.CommentPageSize = 200
	}
	return &Controller{
		svc:             opts.Service,
		viewerID:        opts.ViewerID,
		initialBatch:    opts.InitialBatch,
		incrementBatch:  opts.IncrementBatch,
		commentPageSize: opts.CommentPageSize,
		seen:            map[string]bool{},
		hasMore:         true,
	}
}

// Items returns the accumulated feed, oldest-loaded first.
func (c *Controller) Items() []models.FeedItem { return c.items }

// Len returns the number of loaded items.
func (c *Controller) Len() int { return len(c.items) }

// HasMore reports whether the server may have more items. It only turns
// false on an explicit server signal or an empty page; a transient
// failure leaves it (and everything else) untouched, so the next
// attempt retries the same page.
func (c *Controller) HasMore() bool { return c.hasMore }

// Fetching reports whether a page request is in flight.
func (c *Controller) Fetching() bool { return c.fetching }

// Need returns how many items to request to satisfy the prefetch
// policy for the given visible card: the target is the initial batch
// plus the visible index, topped up in increments. Zero means no fetch
// is warranted right now.
func (c *Controller) Need(visibleIndex int) int {
	if !c.hasMore || c.fetching {
		return 0
	}
	target := c.initialBatch + visibleIndex
	if len(c.items) >= target {
		return 0
	}
	need := target - len(c.items)
	if need < c.incrementBatch {
		need = c.incrementBatch
	}
	return need
}

// LoadInitial fetches the first page if the feed is empty.
func (c *Controller) LoadInitial(ctx context.Context) error {
	if len(c.items) > 0 {
		return nil
	}
	return c.LoadMore(ctx, c.initialBatch)
}

// LoadMore fetches up to count more items and appends them, deduplicated
// by run id. The offset advances by the server's nextOffset when given,
// else by the raw count received (before dedupe), so a server that
// filters rows mid-page cannot stall the cursor. On failure no state
// changes.
func (c *Controller) LoadMore(ctx context.Context, count int) error {
	if !c.hasMore || c.fetching {
		return nil
	}
	if count <= 0 {
		count = c.incrementBatch
	}

	c.fetching = true
	defer func() { c.fetching = false }()

	page, err := c.svc.PublicRuns(ctx, count, c.offset, c.viewerID)
	if err != nil {
		return fmt.Errorf("fetch feed page: %w", err)
	}

	for _, item := range page.Items {
		if c.seen[item.RunID] {
			continue
		}
		c.seen[item.RunID] = true
		c.items = append(c.items, item)
	}

	if page.NextOffset != nil {
		c.offset = *page.NextOffset
	} else {
		c.offset += len(page.Items)
	}
	if !page.HasMore || len(page.Items) == 0 {
		c.hasMore = false
	}
	return nil
}

// Item returns a pointer to the item at index, nil when out of range.
func (c *Controller) Item(index int) *models.FeedItem {
	if index < 0 || index >= len(c.items) {
		return nil
	}
	return &c.items[index]
}

// byRunID locates a loaded item by run id.
func (c *Controller) byRunID(runID string) *models.FeedItem {
	for i := range c.items {
		if c.items[i].RunID == runID {
			return &c.items[i]
		}
	}
	return nil
}
