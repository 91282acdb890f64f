// Package ratelimit provides the process-local limiter used when redis is not configured.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long an unused key is retained before Sweep drops it.
const idleTTL = 30 * time.Minute

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Memory spreads limit requests evenly over window per scope, allowing a burst
// of limit. Its FixedWindowAllow signature matches the redis client so either
// can back the auth rate limiter.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// FixedWindowAllow reports whether one more request in scope is allowed. The
// returned count is the number of tokens consumed in the current burst.
func (m *Memory) FixedWindowAllow(_ context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	if limit <= 0 || window <= 0 {
		return true, 0, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[scope]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Every(window/time.Duration(limit)), int(limit))}
		m.entries[scope] = e
	}
	e.lastSeen = now

	allowed := e.limiter.AllowN(now, 1)
	used := limit - int64(e.limiter.TokensAt(now))
	if !allowed {
		used = limit + 1
	}
	return allowed, used, nil
}

// Sweep drops scopes idle for longer than idleTTL.
func (m *Memory) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-idleTTL)
	for scope, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			delete(m.entries, scope)
		}
	}
}

// Len reports the number of tracked scopes.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
