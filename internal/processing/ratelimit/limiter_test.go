package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore mirrors the upsert semantics of the Postgres store.
type memoryStore struct {
	mu      sync.Mutex
	windows map[string]time.Time
	counts  map[string]int64
	err     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{windows: map[string]time.Time{}, counts: map[string]int64{}}
}

func (s *memoryStore) Increment(_ context.Context, id string, windowStart time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	if !s.windows[id].Equal(windowStart) {
		s.windows[id] = windowStart
		s.counts[id] = 0
	}
	s.counts[id]++
	return s.counts[id], nil
}

func newTestLimiter(store Store, now *time.Time) *Limiter {
	l := NewLimiter(store, time.Minute, 10)
	l.now = func() time.Time { return *now }
	return l
}

func TestCheck_CountsDownThenDenies(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 5, 0, time.UTC)
	l := newTestLimiter(newMemoryStore(), &now)
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		d, err := l.Check(ctx, IPIdentifier("203.0.113.9"))
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d", i)
		assert.Equal(t, int64(10-i), d.Remaining, "request %d", i)
		assert.Equal(t, int64(i), d.Count)
	}

	d, err := l.Check(ctx, IPIdentifier("203.0.113.9"))
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, int64(0), d.Remaining)
	assert.Equal(t, int64(11), d.Count)
	assert.Equal(t, time.Date(2025, 1, 15, 12, 1, 0, 0, time.UTC), d.ResetAt)
}

func TestCheck_NewWindowResets(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 59, 0, time.UTC)
	l := newTestLimiter(newMemoryStore(), &now)
	ctx := context.Background()

	for i := 0; i < 11; i++ {
		_, err := l.Check(ctx, KeyIdentifier("k1"))
		require.NoError(t, err)
	}

	now = now.Add(time.Second)
	d, err := l.Check(ctx, KeyIdentifier("k1"))
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(1), d.Count)
	assert.Equal(t, int64(9), d.Remaining)
}

func TestCheck_IdentifiersAreIndependent(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(newMemoryStore(), &now)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := l.Check(ctx, IPIdentifier("198.51.100.1"))
		require.NoError(t, err)
	}

	d, err := l.Check(ctx, IPIdentifier("198.51.100.2"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), d.Remaining)
}

func TestCheck_StoreError(t *testing.T) {
	now := time.Now()
	store := newMemoryStore()
	store.err = errors.New("db down")
	l := newTestLimiter(store, &now)

	_, err := l.Check(context.Background(), "ip:x")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.err)
}

func TestWindowStart(t *testing.T) {
	l := NewLimiter(nil, time.Minute, 10)
	got := l.WindowStart(time.Date(2025, 1, 15, 12, 34, 56, 789, time.UTC))
	assert.Equal(t, time.Date(2025, 1, 15, 12, 34, 0, 0, time.UTC), got)

	inZone := time.Date(2025, 1, 15, 12, 34, 56, 0, time.FixedZone("X", 5*3600+1800))
	assert.Equal(t, 0, l.WindowStart(inZone).Second())
}

func TestCheckAll(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(newMemoryStore(), &now)
	ctx := context.Background()
	ip := IPIdentifier("203.0.113.7")
	key := KeyIdentifier("k1")

	for i := 0; i < 4; i++ {
		_, err := l.Check(ctx, key)
		require.NoError(t, err)
	}

	c, err := l.CheckAll(ctx, ip, key)
	require.NoError(t, err)
	assert.True(t, c.Allowed)
	assert.Equal(t, int64(5), c.Remaining, "key scope has the fewest remaining")

	for i := 0; i < 5; i++ {
		_, err := l.CheckAll(ctx, ip, key)
		require.NoError(t, err)
	}

	c, err = l.CheckAll(ctx, ip, key)
	require.NoError(t, err)
	assert.False(t, c.Allowed)
	assert.Equal(t, int64(0), c.Remaining)
	require.Len(t, c.Denied, 1)
	assert.Equal(t, key, c.Denied[0].Identifier)
	assert.Equal(t, now.Add(time.Minute), c.ResetAt)

	// The allowed scope is still counted while the other denies.
	d, err := l.Check(ctx, ip)
	require.NoError(t, err)
	assert.Equal(t, int64(8), d.Count)
}

func TestCheckAll_Error(t *testing.T) {
	now := time.Now()
	store := newMemoryStore()
	store.err = errors.New("timeout")
	l := newTestLimiter(store, &now)

	_, err := l.CheckAll(context.Background(), "ip:a", "key:b")
	assert.Error(t, err)
}

func TestCombine_LatestDeniedReset(t *testing.T) {
	early := time.Date(2025, 1, 1, 0, 1, 0, 0, time.UTC)
	late := early.Add(time.Minute)

	c := combine([]Decision{
		{Allowed: true, Remaining: 3, ResetAt: early},
		{Allowed: false, Remaining: 0, ResetAt: early},
		{Allowed: false, Remaining: 0, ResetAt: late},
	})
	assert.False(t, c.Allowed)
	assert.Equal(t, late, c.ResetAt)
	assert.Len(t, c.Denied, 2)

	c = combine([]Decision{
		{Allowed: true, Remaining: 7, ResetAt: late},
		{Allowed: true, Remaining: 2, ResetAt: early},
	})
	assert.True(t, c.Allowed)
	assert.Equal(t, int64(2), c.Remaining)
	assert.Equal(t, early, c.ResetAt)
}
