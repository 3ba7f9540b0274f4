package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryLimiter is the in-process fallback used when Redis is unavailable.
// Counts are per instance.
type MemoryLimiter struct {
	mu     sync.Mutex
	cache  *cache.Cache
	policy Policy
}

type window struct {
	count   int64
	resetAt time.Time
}

func NewMemoryLimiter(policy Policy) *MemoryLimiter {
	return &MemoryLimiter{
		cache:  cache.New(policy.Window, 2*policy.Window),
		policy: policy,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	k := l.policy.key(key)
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.cachedWindow(k, now)
	if !ok {
		w = &window{resetAt: now.Add(l.policy.Window)}
		l.cache.Set(k, w, l.policy.Window)
	}
	w.count++

	return l.policy.result(w.count, w.resetAt.Sub(now)), nil
}

func (l *MemoryLimiter) cachedWindow(k string, now time.Time) (*window, bool) {
	x, found := l.cache.Get(k)
	if !found {
		return nil, false
	}
	w := x.(*window)
	if !now.Before(w.resetAt) {
		return nil, false
	}
	return w, true
}
