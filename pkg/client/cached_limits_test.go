package client_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snaplink/snaplink-go/infra/cache"
	"github.com/snaplink/snaplink-go/pkg/client"
	"github.com/snaplink/snaplink-go/pkg/testutils"
	"github.com/snaplink/snaplink-go/pkg/withdrawal"
)

type fakeLimits struct {
	calls  int
	limits withdrawal.WithdrawalLimits
	err    error
}

func (f *fakeLimits) Limits(context.Context) (withdrawal.WithdrawalLimits, error) {
	f.calls++
	return f.limits, f.err
}

func TestCachedLimits_FetchesOnceWithinTTL(t *testing.T) {
	next := &fakeLimits{limits: withdrawal.WithdrawalLimits{MinAmount: 20_000, MaxAmount: 10_000_000}}
	cached := client.NewCachedLimits(next, cache.NewMemory(), time.Minute, testutils.Logger())

	ctx := context.Background()
	for range 5 {
		l, err := cached.Limits(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 20_000, l.MinAmount)
	}
	assert.Equal(t, 1, next.calls)
}

func TestCachedLimits_ExpiryRefetches(t *testing.T) {
	next := &fakeLimits{limits: withdrawal.DefaultLimits()}
	cached := client.NewCachedLimits(next, cache.NewMemory(), time.Nanosecond, testutils.Logger())

	ctx := context.Background()
	_, err := cached.Limits(ctx)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = cached.Limits(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedLimits_FallsBackToDefaults(t *testing.T) {
	next := &fakeLimits{err: errors.New("backend down")}
	cached := client.NewCachedLimits(next, cache.NewMemory(), time.Minute, testutils.Logger())

	l, err := cached.Limits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, withdrawal.DefaultLimits(), l)

	// The failure is not cached; the next call retries the backend.
	_, err = cached.Limits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}
