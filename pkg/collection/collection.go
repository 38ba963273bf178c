// Package collection owns the paginated list state behind a
// withdrawal screen: current items, pagination cursor, loading and
// error flags. One controller serves every call site — the scope
// decides which list endpoint backs it — so the user list and the
// moderator lists share a single implementation.
package collection

import (
	"context"
	"log/slog"
	"sync"

	"github.com/snaplink/snaplink-go/pkg/client"
	"github.com/snaplink/snaplink-go/pkg/withdrawal"
)

// ListFunc fetches one page for the controller's scope.
type ListFunc func(ctx context.Context, page, pageSize int) (*withdrawal.RequestPage, error)

// UserScope lists the authenticated user's own requests.
func UserScope(c *client.Client) ListFunc {
	return c.ListMine
}

// AdminScope lists every user's requests, optionally filtered by
// status. Requires a moderator or admin token.
func AdminScope(c *client.Client, status *withdrawal.RequestStatus) ListFunc {
	return func(ctx context.Context, page, pageSize int) (*withdrawal.RequestPage, error) {
		return c.ListAll(ctx, page, pageSize, status)
	}
}

// StatusScope lists requests in a single status via the dedicated
// by-status endpoint. Requires a moderator or admin token.
func StatusScope(c *client.Client, status withdrawal.RequestStatus) ListFunc {
	return func(ctx context.Context, page, pageSize int) (*withdrawal.RequestPage, error) {
		return c.ListByStatus(ctx, status, page, pageSize)
	}
}

// Pagination is the cursor state of a controller.
type Pagination struct {
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
}

// HasMore reports whether pages remain after the current one.
func (p Pagination) HasMore() bool { return p.Page < p.TotalPages }

// Controller holds the in-memory list state for one screen. All
// methods are safe for concurrent use; at most one page fetch is in
// flight at a time and a second trigger while loading is ignored.
type Controller struct {
	list     ListFunc
	pageSize int
	logger   *slog.Logger

	mu         sync.Mutex
	items      []withdrawal.WithdrawalRequest
	pagination Pagination
	loading    bool
	refreshing bool
	err        error
}

// New creates a controller over the given scope.
func New(list ListFunc, pageSize int, logger *slog.Logger) *Controller {
	return &Controller{list: list, pageSize: pageSize, logger: logger}
}

// Items returns a copy of the current list, in server order.
func (c *Controller) Items() []withdrawal.WithdrawalRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]withdrawal.WithdrawalRequest, len(c.items))
	copy(out, c.items)
	return out
}

// Pagination returns the current cursor state.
func (c *Controller) Pagination() Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

// Loading reports whether a page fetch is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Refreshing reports whether the in-flight fetch is a pull-to-refresh.
func (c *Controller) Refreshing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshing
}

// Err returns the error from the last failed fetch, cleared when a
// new fetch starts.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// HasMore reports whether LoadMore would fetch anything.
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination.HasMore()
}

// begin marks a fetch as started. It reports false when another fetch
// is already in flight, in which case the caller must back off.
func (c *Controller) begin(refreshing bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return false
	}
	c.loading = true
	c.refreshing = refreshing
	c.err = nil
	return true
}

// beginNext atomically claims the next page for a load-more fetch.
// The page is computed under the same lock that flips the loading
// flag, so two rapid triggers can never claim the same page.
func (c *Controller) beginNext() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading || !c.pagination.HasMore() {
		return 0, false
	}
	c.loading = true
	c.err = nil
	return c.pagination.Page + 1, true
}

func (c *Controller) fetchPage(ctx context.Context, page int) error {
	res, err := c.list(ctx, page, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.refreshing = false

	if err != nil {
		// Stale-but-visible: the prior items stay on screen.
		c.err = err
		c.logger.Warn("withdrawal list fetch failed", "page", page, "error", err)
		return err
	}

	if page <= 1 {
		c.items = res.Items
	} else {
		c.items = append(c.items, res.Items...)
	}
	c.pagination = Pagination{
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalCount: res.TotalCount,
		TotalPages: res.TotalPages,
	}
	return nil
}

// Fetch loads page 1, replacing the current items. A fetch already in
// flight makes this a no-op.
func (c *Controller) Fetch(ctx context.Context) error {
	if !c.begin(false) {
		return nil
	}
	return c.fetchPage(ctx, 1)
}

// Refresh reloads page 1 with the refreshing flag set, for
// pull-to-refresh UIs.
func (c *Controller) Refresh(ctx context.Context) error {
	if !c.begin(true) {
		return nil
	}
	return c.fetchPage(ctx, 1)
}

// LoadMore appends the next page. It is a no-op when no pages remain
// or a fetch is already in flight; a rapid double trigger produces
// exactly one network call.
func (c *Controller) LoadMore(ctx context.Context) error {
	next, ok := c.beginNext()
	if !ok {
		return nil
	}
	return c.fetchPage(ctx, next)
}

// Patch replaces the item with the same ID, if present. Used after a
// mutating call succeeds: the server's response is authoritative and
// overwrites whatever the list held.
func (c *Controller) Patch(updated withdrawal.WithdrawalRequest) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == updated.ID {
			c.items[i] = updated
			return true
		}
	}
	return false
}

// Remove drops the item with the given ID, if present.
func (c *Controller) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}
