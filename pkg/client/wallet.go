package client

import (
	"context"
	"fmt"

	"github.com/snaplink/snaplink-go/pkg/withdrawal"
)

// WalletBalance returns the wallet snapshot used to cap withdrawal
// amounts. Refetched after a request is created.
func (c *Client) WalletBalance(ctx context.Context, userID int64) (*withdrawal.WalletBalance, error) {
	var out withdrawal.WalletBalance
	if err := c.do(ctx, call{method: "GET", path: fmt.Sprintf("/api/Wallet/balance/%d", userID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
