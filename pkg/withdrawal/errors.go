package withdrawal

import "errors"

var (
	// ErrNotPending is returned when an edit or cancel is attempted on a
	// request that has already left the Pending state.
	ErrNotPending = errors.New("withdrawal request is no longer pending")

	// ErrRequestNotFound is returned when a request id does not resolve
	// to a known withdrawal request.
	ErrRequestNotFound = errors.New("withdrawal request not found")

	// ErrInsufficientBalance is returned when the requested amount
	// exceeds the wallet's available balance.
	ErrInsufficientBalance = errors.New("amount exceeds available balance")
)
