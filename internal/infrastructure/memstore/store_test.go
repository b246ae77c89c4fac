package memstore

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newClocked() (*Store, *fakeClock) {
	clk := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New().WithClock(clk.Now), clk
}

func TestSetGet_Overwrite(t *testing.T) {
	ctx := context.Background()
	s, _ := newClocked()

	require.NoError(t, s.Set(ctx, "k", "v1", time.Minute))
	require.NoError(t, s.Set(ctx, "k", "v2", time.Minute))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestGet_Missing(t *testing.T) {
	_, ok, err := New().Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	s, clk := newClocked()
	require.NoError(t, s.Set(ctx, "k", "v", 300*time.Second))

	clk.Advance(299 * time.Second)
	_, ok, _ := s.Get(ctx, "k")
	assert.True(t, ok)

	clk.Advance(time.Second)
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)
	_, ok, _ = s.Take(ctx, "k")
	assert.False(t, ok)
}

func TestDelete_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Delete(ctx, "absent"))
	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, _ := s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestTake_OnlyOneWinner(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Set(ctx, "tok", "a@x.com", time.Minute))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := s.Take(ctx, "tok"); ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}

func TestSweep_RemovesExpired(t *testing.T) {
	ctx := context.Background()
	s, clk := newClocked()
	require.NoError(t, s.Set(ctx, "short", "v", time.Second))
	require.NoError(t, s.Set(ctx, "long", "v", time.Hour))

	clk.Advance(time.Minute)
	assert.Equal(t, 1, s.sweep())
	assert.Equal(t, 1, s.Len())
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestCompareAndDelete(t *testing.T) {
	ctx := context.Background()
	s, clk := newClocked()
	require.NoError(t, s.Set(ctx, "otp:register:a@x.com", "111111", time.Minute))

	removed, err := s.CompareAndDelete(ctx, "otp:register:a@x.com", "222222")
	require.NoError(t, err)
	assert.False(t, removed)
	_, ok, _ := s.Get(ctx, "otp:register:a@x.com")
	assert.True(t, ok, "mismatched value leaves the entry")

	removed, err = s.CompareAndDelete(ctx, "otp:register:a@x.com", "111111")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.Set(ctx, "k", "v", time.Second))
	clk.Advance(time.Second)
	removed, err = s.CompareAndDelete(ctx, "k", "v")
	require.NoError(t, err)
	assert.False(t, removed, "expired entries never match")
}
