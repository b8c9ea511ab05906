package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter bounds the number of tokens consumed within a rolling one-minute
// window. It is used for providers that meter usage by tokens rather than by
// request count.
type TokenLimiter struct {
	mu                sync.Mutex
	maxTokenPerMinute int
	used              int
	windowStart       time.Time
}

// NewTokenLimiter creates a limiter allowing maxTokenPerMinute tokens per minute.
func NewTokenLimiter(maxTokenPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		maxTokenPerMinute: maxTokenPerMinute,
		windowStart:       time.Now(),
	}
}

// Wait blocks until tokens can be consumed without exceeding the per-minute
// budget, or until the context is cancelled. A request larger than the whole
// budget is admitted alone on a fresh window.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	for {
		l.mu.Lock()
		l.rollWindow()
		if l.used == 0 || l.used+tokens <= l.maxTokenPerMinute {
			l.used += tokens
			l.mu.Unlock()
			return nil
		}
		wait := time.Minute - time.Since(l.windowStart)
		l.mu.Unlock()

		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// GetRemaining returns the tokens still available in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollWindow()
	remaining := l.maxTokenPerMinute - l.used
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (l *TokenLimiter) rollWindow() {
	if time.Since(l.windowStart) >= time.Minute {
		l.windowStart = time.Now()
		l.used = 0
	}
}
