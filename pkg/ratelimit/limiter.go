package ratelimit

import (
	"context"
	"time"
)

// Result of a single admission check
type Result struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// Limiter admits at most Limit requests per key per fixed window.
// An error means the decision could not be made; callers treat it as a denial.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Policy describes one fixed window
type Policy struct {
	Prefix string
	Limit  int
	Window time.Duration
}

func (p Policy) key(k string) string {
	return p.Prefix + ":" + k
}

func (p Policy) result(count int64, ttl time.Duration) Result {
	remaining := p.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= int64(p.Limit),
		Remaining: remaining,
		ResetIn:   ttl,
	}
}
