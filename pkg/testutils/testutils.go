// Package testutils holds shared helpers for package tests: a silent
// logger and generated withdrawal fixtures.
package testutils

import (
	"io"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit"

	"github.com/snaplink/snaplink-go/pkg/withdrawal"
)

// Logger returns a logger that discards everything, for wiring into
// code under test.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FakeRequest builds a plausible withdrawal request with the given id
// and status.
func FakeRequest(id int64, status withdrawal.RequestStatus) withdrawal.WithdrawalRequest {
	return withdrawal.WithdrawalRequest{
		ID:                id,
		WalletID:          int64(gofakeit.Number(1, 500)),
		UserID:            int64(gofakeit.Number(1, 500)),
		Amount:            int64(gofakeit.Number(10_000, 50_000_000)),
		BankAccountNumber: gofakeit.Numerify("##########"),
		BankAccountName:   gofakeit.Name(),
		BankName:          gofakeit.Company(),
		RequestStatus:     status,
		RequestedAt:       time.Now().UTC().Add(-time.Duration(id) * time.Hour),
	}
}

// FakeRequests builds n pending requests with descending ids, newest
// first the way the backend lists them.
func FakeRequests(n int) []withdrawal.WithdrawalRequest {
	out := make([]withdrawal.WithdrawalRequest, 0, n)
	for i := n; i > 0; i-- {
		out = append(out, FakeRequest(int64(i), withdrawal.StatusPending))
	}
	return out
}
