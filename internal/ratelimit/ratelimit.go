package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Pacer enforces a minimum delay between consecutive calls sharing a scope
// key. The pipeline uses one scope per pacing point ("batch" between comment
// batches, "source" between hiring sources) so the first call in each scope
// proceeds immediately and later calls wait out the remainder.
type Pacer struct {
	mu       sync.Mutex
	lastCall map[string]time.Time
	minDelay time.Duration
}

// NewPacer creates a pacer that enforces minDelay between consecutive calls
// within the same scope.
func NewPacer(minDelay time.Duration) *Pacer {
	return &Pacer{
		lastCall: make(map[string]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until enough time has passed since the previous call for scope.
// Returns an error if the context is cancelled while waiting.
func (p *Pacer) Wait(ctx context.Context, scope string) error {
	p.mu.Lock()
	last, ok := p.lastCall[scope]
	now := time.Now()

	if !ok {
		// First call for this scope, no wait needed.
		p.lastCall[scope] = now
		p.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed >= p.minDelay {
		p.lastCall[scope] = now
		p.mu.Unlock()
		return nil
	}

	remaining := p.minDelay - elapsed
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("pacer wait for %s: %w", scope, ctx.Err())
	case <-time.After(remaining):
	}

	p.mu.Lock()
	p.lastCall[scope] = time.Now()
	p.mu.Unlock()

	return nil
}

// Reset forgets the scope's last call, so the next Wait proceeds immediately.
func (p *Pacer) Reset(scope string) {
	p.mu.Lock()
	delete(p.lastCall, scope)
	p.mu.Unlock()
}
