package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLimitsPerScope(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, _, err := m.FixedWindowAllow(ctx, "login:ip:a", 3, time.Minute)
		require.NoError(t, err)
		require.True(t, ok, "request %d should pass", i+1)
	}
	ok, count, err := m.FixedWindowAllow(ctx, "login:ip:a", 3, time.Minute)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, int64(4), count)

	ok, _, err = m.FixedWindowAllow(ctx, "login:ip:b", 3, time.Minute)
	require.NoError(t, err)
	require.True(t, ok, "other scopes are independent")

	clock = clock.Add(time.Minute)
	ok, _, err = m.FixedWindowAllow(ctx, "login:ip:a", 3, time.Minute)
	require.NoError(t, err)
	require.True(t, ok, "tokens refill over the window")
}

func TestMemoryDisabledLimit(t *testing.T) {
	m := NewMemory()
	ok, _, err := m.FixedWindowAllow(context.Background(), "x", 0, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0, m.Len())
}

func TestMemorySweep(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return clock }

	_, _, _ = m.FixedWindowAllow(context.Background(), "old", 5, time.Minute)
	clock = clock.Add(idleTTL + time.Second)
	_, _, _ = m.FixedWindowAllow(context.Background(), "fresh", 5, time.Minute)

	m.Sweep()
	require.Equal(t, 1, m.Len())
}
