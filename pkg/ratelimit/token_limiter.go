package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter limits consumption of a token budget per minute. It is used to
// stay under provider-side token-per-minute quotas where a request-per-minute
// limiter alone is not enough.
type TokenLimiter struct {
	mu        sync.Mutex
	maxTokens int
	remaining int
	window    time.Time
}

// NewTokenLimiter creates a limiter with the given tokens-per-minute budget.
func NewTokenLimiter(maxTokensPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		maxTokens: maxTokensPerMinute,
		remaining: maxTokensPerMinute,
		window:    time.Now(),
	}
}

// GetRemaining returns the tokens left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refill()
	return l.remaining
}

// Wait blocks until the given number of tokens can be consumed, or the context
// is canceled. Requests larger than the whole budget are allowed through once
// the window is fresh, rather than blocking forever.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	for {
		l.mu.Lock()
		l.refill()
		if l.remaining >= tokens || l.remaining == l.maxTokens {
			l.remaining -= tokens
			if l.remaining < 0 {
				l.remaining = 0
			}
			l.mu.Unlock()
			return nil
		}
		wait := time.Until(l.window.Add(time.Minute))
		l.mu.Unlock()

		if wait <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// refill resets the budget when the current window has elapsed. Caller must
// hold the mutex.
func (l *TokenLimiter) refill() {
	if time.Since(l.window) >= time.Minute {
		l.remaining = l.maxTokens
		l.window = time.Now()
	}
}
