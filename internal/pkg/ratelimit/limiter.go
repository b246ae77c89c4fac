package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Keyed is a set of token-bucket limiters, one per key, with idle-entry eviction.
type Keyed struct {
	mu       sync.Mutex
	limiters map[string]*entry
	r        rate.Limit
	burst    int
	idle     time.Duration
}

// New returns a limiter allowing r events per second per key with the given burst.
func New(r rate.Limit, burst int) *Keyed {
	return &Keyed{
		limiters: make(map[string]*entry),
		r:        r,
		burst:    burst,
		idle:     10 * time.Minute,
	}
}

// Every is a convenience for one event per interval.
func Every(interval time.Duration, burst int) *Keyed {
	return New(rate.Every(interval), burst)
}

func (k *Keyed) get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()
	if e, ok := k.limiters[key]; ok {
		e.lastSeen = time.Now()
		return e.limiter
	}
	l := rate.NewLimiter(k.r, k.burst)
	k.limiters[key] = &entry{limiter: l, lastSeen: time.Now()}
	return l
}

// Allow reports whether an event for key may happen now.
func (k *Keyed) Allow(key string) bool {
	return k.get(key).Allow()
}

// Run evicts idle keys every interval until ctx is done.
func (k *Keyed) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			k.evict(time.Now())
		}
	}
}

func (k *Keyed) evict(now time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for key, e := range k.limiters {
		if now.Sub(e.lastSeen) > k.idle {
			delete(k.limiters, key)
		}
	}
}

func (k *Keyed) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}
