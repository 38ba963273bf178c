package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/snaplink/snaplink-go/pkg/withdrawal"
)

const withdrawalBase = "/api/WithdrawalRequest"

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return q
}

// Create opens a new withdrawal request. The payload is checked
// against the server contract before dispatch; a request the backend
// would reject on shape never leaves the client.
func (c *Client) Create(ctx context.Context, req withdrawal.CreateRequest) (*withdrawal.WithdrawalRequest, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid create payload: %w", err)
	}
	var out withdrawal.WithdrawalRequest
	if err := c.do(ctx, call{method: "POST", path: withdrawalBase, body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update changes the bank fields of a pending request. The server
// rejects updates on any other status.
func (c *Client) Update(ctx context.Context, id int64, req withdrawal.UpdateRequest) (*withdrawal.WithdrawalRequest, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid update payload: %w", err)
	}
	var out withdrawal.WithdrawalRequest
	if err := c.do(ctx, call{method: "PUT", path: fmt.Sprintf("%s/%d", withdrawalBase, id), body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel withdraws a pending request. The server rejects cancellation
// on any other status.
func (c *Client) Cancel(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := c.do(ctx, call{method: "DELETE", path: fmt.Sprintf("%s/%d", withdrawalBase, id)}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// ListMine returns one page of the authenticated user's requests.
func (c *Client) ListMine(ctx context.Context, page, pageSize int) (*withdrawal.RequestPage, error) {
	var out withdrawal.RequestPage
	if err := c.do(ctx, call{method: "GET", path: withdrawalBase + "/user", query: pageQuery(page, pageSize)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Limits fetches the current withdrawal policy values.
func (c *Client) Limits(ctx context.Context) (withdrawal.WithdrawalLimits, error) {
	var out withdrawal.WithdrawalLimits
	if err := c.do(ctx, call{method: "GET", path: withdrawalBase + "/limits"}, &out); err != nil {
		return withdrawal.WithdrawalLimits{}, err
	}
	return out, nil
}

// Get returns a single request by id.
func (c *Client) Get(ctx context.Context, id int64) (*withdrawal.WithdrawalRequest, error) {
	var out withdrawal.WithdrawalRequest
	if err := c.do(ctx, call{method: "GET", path: fmt.Sprintf("%s/%d", withdrawalBase, id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDetail returns a single request including moderator info.
func (c *Client) GetDetail(ctx context.Context, id int64) (*withdrawal.WithdrawalRequest, error) {
	var out withdrawal.WithdrawalRequest
	if err := c.do(ctx, call{method: "GET", path: fmt.Sprintf("%s/%d/detail", withdrawalBase, id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAll returns one page of every user's requests, optionally
// filtered by status. Requires a moderator or admin token; the server
// enforces the role.
func (c *Client) ListAll(ctx context.Context, page, pageSize int, status *withdrawal.RequestStatus) (*withdrawal.RequestPage, error) {
	q := pageQuery(page, pageSize)
	if status != nil {
		q.Set("status", string(*status))
	}
	var out withdrawal.RequestPage
	if err := c.do(ctx, call{method: "GET", path: withdrawalBase, query: q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByStatus returns one page of requests in the given status.
// Requires a moderator or admin token.
func (c *Client) ListByStatus(ctx context.Context, status withdrawal.RequestStatus, page, pageSize int) (*withdrawal.RequestPage, error) {
	var out withdrawal.RequestPage
	path := fmt.Sprintf("%s/status/%s", withdrawalBase, url.PathEscape(string(status)))
	if err := c.do(ctx, call{method: "GET", path: path, query: pageQuery(page, pageSize)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) transition(ctx context.Context, id int64, action string, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error) {
	var out withdrawal.WithdrawalRequest
	path := fmt.Sprintf("%s/%d/%s", withdrawalBase, id, action)
	if err := c.do(ctx, call{method: "POST", path: path, body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Process moves a request into Processing. Moderator action; the
// server validates the predecessor status.
func (c *Client) Process(ctx context.Context, id int64, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error) {
	return c.transition(ctx, id, "process", req)
}

// Approve moves a pending request into Approved. Moderator action.
func (c *Client) Approve(ctx context.Context, id int64, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error) {
	return c.transition(ctx, id, "approve", req)
}

// Reject moves a request into Rejected with a reason. Moderator action.
func (c *Client) Reject(ctx context.Context, id int64, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error) {
	return c.transition(ctx, id, "reject", req)
}

// Complete moves a request into Completed with a confirmation
// reference. Moderator action.
func (c *Client) Complete(ctx context.Context, id int64, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error) {
	return c.transition(ctx, id, "complete", req)
}
